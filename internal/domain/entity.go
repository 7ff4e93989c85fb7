package domain

// --- КОМПОНЕНТЫ ---

// RenderComponent - Визуализация (для клиента; сервер не рисует)
type RenderComponent struct {
	Symbol string `json:"symbol"`
	Color  string `json:"color"`
}

// StatsComponent - Характеристики. Боевку сервер не считает,
// HP здесь нужен боевой подсистеме снаружи.
type StatsComponent struct {
	HP     int  `json:"hp"`
	MaxHP  int  `json:"maxHp"`
	IsDead bool `json:"isDead"`
}

// --- СУЩНОСТЬ ---

type Entity struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	Depth int    `json:"depth"`

	// Pos - верхний левый угол хитбокса, в единицах клеток.
	Pos  Vec2 `json:"pos"`
	Size Vec2 `json:"size"`

	// Speed - клеток в секунду на полном ходу.
	Speed float64 `json:"speed"`

	// BlocksMovement = true, если через сущность нельзя пройти.
	BlocksMovement bool `json:"blocksMovement"`

	// Компоненты (nil - свойство отсутствует)
	Render     *RenderComponent `json:"render,omitempty"`
	Stats      *StatsComponent  `json:"stats,omitempty"`
	Perception *PerceptionState `json:"perception,omitempty"`

	// PerceptionTuning - видовые переопределения восприятия
	// поверх общего конфига (nil - без переопределений).
	PerceptionTuning *PerceptionConfig `json:"perceptionTuning,omitempty"`
}

// Bounds возвращает хитбокс сущности.
func (e *Entity) Bounds() Rect {
	return Rect{X: e.Pos.X, Y: e.Pos.Y, W: e.Size.X, H: e.Size.Y}
}

// Center - центр хитбокса.
func (e *Entity) Center() Vec2 {
	return Vec2{X: e.Pos.X + e.Size.X/2, Y: e.Pos.Y + e.Size.Y/2}
}

// TilePos - клетка, в которой стоит центр сущности.
// Используется для LOS и видимости.
func (e *Entity) TilePos() Position {
	return e.Center().Tile()
}

// IsAlive - мертвые и "съеденные" боем сущности полностью
// пропускаются симуляцией.
func (e *Entity) IsAlive() bool {
	return e.Stats == nil || !e.Stats.IsDead
}

// EnsurePerception возвращает PerceptionState, лениво создавая его,
// если состояние потерялось (например, старый сейв).
// Безопасные дефолты: дом = текущая позиция, режим = Idle.
func (e *Entity) EnsurePerception() *PerceptionState {
	if e.Perception == nil || e.Perception.Mode == "" {
		e.Perception = NewPerceptionState(e.Center())
	}
	return e.Perception
}
