package domain

// PerceptionMode - режим поведения врага.
type PerceptionMode string

const (
	ModeIdle   PerceptionMode = "IDLE"
	ModeChase  PerceptionMode = "CHASE"
	ModeSearch PerceptionMode = "SEARCH"
)

// PerceptionState - мозги одного врага. Явная структура,
// создается при спавне (никаких полей, навешиваемых на лету).
type PerceptionState struct {
	Mode PerceptionMode `json:"mode"`

	// LastSeenPlayerPos - где игрока видели в последний раз.
	// nil в Idle.
	LastSeenPlayerPos *Vec2 `json:"lastSeenPlayerPos,omitempty"`

	// SearchTimer - сколько секунд еще искать после потери цели.
	SearchTimer float64 `json:"searchTimer"`

	// HomePos - точка спавна, центр патрулирования.
	HomePos Vec2 `json:"homePos"`

	// Патрулирование в Idle.
	PatrolTarget     *Vec2   `json:"patrolTarget,omitempty"`
	PatrolPauseTimer float64 `json:"patrolPauseTimer"`
}

// NewPerceptionState создает состояние для свежего спавна.
func NewPerceptionState(home Vec2) *PerceptionState {
	return &PerceptionState{
		Mode:    ModeIdle,
		HomePos: home,
	}
}

// AlertEvent - событие "враг заметил игрока".
// Радиус оповещения меряется от ПОЗИЦИИ ЗАМЕТИВШЕГО, не игрока:
// реагируют соседи наблюдателя. Это осознанное поведение, не баг.
type AlertEvent struct {
	SpotterID  string `json:"spotterId"`
	SpotterPos Vec2   `json:"spotterPos"`
	PlayerPos  Vec2   `json:"playerPos"`
}
