package domain

// Конфигурация приходит снаружи как read-only объект.
// Нулевые поля означают "возьми документированный дефолт" -
// Normalize() заполняет их и зажимает вырожденные значения.

// DepthScaleRow - строка таблицы масштаба карты по глубине.
type DepthScaleRow struct {
	MinDepth int     `json:"minDepth"` // со скольки этажей строка доступна
	Factor   float64 `json:"factor"`   // множитель площади
	Weight   int     `json:"weight"`   // вес при случайном выборе
}

// TagRule - правило вероятностной раздачи тематических тегов.
type TagRule struct {
	Tag      RoomTag `json:"tag"`
	MinDepth int     `json:"minDepth"`
	MaxCount int     `json:"maxCount"` // максимум комнат на этаж
	Chance   float64 `json:"chance"`   // независимая вероятность
}

// GenConfig - параметры генератора уровней.
type GenConfig struct {
	BaseWidth  int `json:"baseWidth"`
	BaseHeight int `json:"baseHeight"`

	DepthScales []DepthScaleRow `json:"depthScales"`
	MinScale    float64         `json:"minScale"`
	MaxScale    float64         `json:"maxScale"`

	BaseRoomCount int `json:"baseRoomCount"`
	MinRooms      int `json:"minRooms"`
	MaxRooms      int `json:"maxRooms"`

	RoomMinSize int `json:"roomMinSize"` // внутренность, в клетках
	RoomMaxSize int `json:"roomMaxSize"`

	// WallBorder - нетрогаемая кромка карты.
	WallBorder int `json:"wallBorder"`

	// PlaceAttempts - попыток на ОДНУ комнату, потом кандидат
	// пропускается (квота мягкая).
	PlaceAttempts int `json:"placeAttempts"`

	TagRules []TagRule `json:"tagRules"`
}

// DefaultDepthScales - масштаб растет с глубиной, глубокие этажи
// иногда выпадают заметно больше.
func DefaultDepthScales() []DepthScaleRow {
	return []DepthScaleRow{
		{MinDepth: 0, Factor: 1.0, Weight: 4},
		{MinDepth: 2, Factor: 1.3, Weight: 3},
		{MinDepth: 4, Factor: 1.6, Weight: 2},
		{MinDepth: 6, Factor: 2.0, Weight: 1},
	}
}

// DefaultTagRules - тематические комнаты: глубже = разнообразнее.
func DefaultTagRules() []TagRule {
	return []TagRule{
		{Tag: RoomEvent, MinDepth: 1, MaxCount: 2, Chance: 0.40},
		{Tag: RoomShop, MinDepth: 1, MaxCount: 1, Chance: 0.35},
		{Tag: RoomArmory, MinDepth: 2, MaxCount: 1, Chance: 0.30},
		{Tag: RoomGraveyard, MinDepth: 2, MaxCount: 1, Chance: 0.30},
		{Tag: RoomLibrary, MinDepth: 3, MaxCount: 1, Chance: 0.25},
		{Tag: RoomSanctum, MinDepth: 3, MaxCount: 1, Chance: 0.25},
		{Tag: RoomArena, MinDepth: 4, MaxCount: 1, Chance: 0.20},
	}
}

// Normalize заполняет отсутствующие поля дефолтами и зажимает
// вырожденные значения. Возвращает копию, вход не меняется.
func (c GenConfig) Normalize() GenConfig {
	if c.BaseWidth <= 0 {
		c.BaseWidth = 48
	}
	if c.BaseHeight <= 0 {
		c.BaseHeight = 32
	}
	if len(c.DepthScales) == 0 {
		c.DepthScales = DefaultDepthScales()
	}
	if c.MinScale <= 0 {
		c.MinScale = 1.0
	}
	if c.MaxScale < c.MinScale {
		c.MaxScale = 2.5
	}
	if c.BaseRoomCount <= 0 {
		c.BaseRoomCount = 10
	}
	if c.MinRooms <= 0 {
		c.MinRooms = 4
	}
	if c.MaxRooms < c.MinRooms {
		c.MaxRooms = 24
	}
	if c.RoomMinSize < 2 {
		c.RoomMinSize = 4
	}
	if c.RoomMaxSize < c.RoomMinSize {
		c.RoomMaxSize = 9
	}
	if c.WallBorder < 1 {
		c.WallBorder = 1
	}
	if c.PlaceAttempts <= 0 {
		c.PlaceAttempts = 12
	}
	if c.TagRules == nil {
		c.TagRules = DefaultTagRules()
	}
	return c
}

// PerceptionConfig - параметры восприятия и патрулирования.
// Радиусы в клетках, таймеры в секундах.
type PerceptionConfig struct {
	DetectionRadius float64 `json:"detectionRadius"`
	AlertRadius     float64 `json:"alertRadius"`

	SearchDuration float64 `json:"searchDuration"`
	// GiveUpRadius - подошли к последней известной точке ближе -
	// значит искать больше нечего.
	GiveUpRadius float64 `json:"giveUpRadius"`

	PatrolRadius      float64 `json:"patrolRadius"`
	PatrolSpeedFactor float64 `json:"patrolSpeedFactor"`
	PatrolPauseMin    float64 `json:"patrolPauseMin"`
	PatrolPauseMax    float64 `json:"patrolPauseMax"`
	PatrolSampleTries int     `json:"patrolSampleTries"`
	// ArriveRadius - допуск прибытия к точке патруля.
	ArriveRadius float64 `json:"arriveRadius"`
}

// Overlay возвращает копию c, в которой ненулевые поля o
// заменяют базовые. Используется для настроек отдельных видов врагов.
func (c PerceptionConfig) Overlay(o PerceptionConfig) PerceptionConfig {
	if o.DetectionRadius > 0 {
		c.DetectionRadius = o.DetectionRadius
	}
	if o.AlertRadius > 0 {
		c.AlertRadius = o.AlertRadius
	}
	if o.SearchDuration > 0 {
		c.SearchDuration = o.SearchDuration
	}
	if o.GiveUpRadius > 0 {
		c.GiveUpRadius = o.GiveUpRadius
	}
	if o.PatrolRadius > 0 {
		c.PatrolRadius = o.PatrolRadius
	}
	if o.PatrolSpeedFactor > 0 {
		c.PatrolSpeedFactor = o.PatrolSpeedFactor
	}
	if o.PatrolPauseMin > 0 {
		c.PatrolPauseMin = o.PatrolPauseMin
	}
	if o.PatrolPauseMax > 0 {
		c.PatrolPauseMax = o.PatrolPauseMax
	}
	if o.PatrolSampleTries > 0 {
		c.PatrolSampleTries = o.PatrolSampleTries
	}
	if o.ArriveRadius > 0 {
		c.ArriveRadius = o.ArriveRadius
	}
	return c
}

// Normalize - дефолты восприятия.
func (c PerceptionConfig) Normalize() PerceptionConfig {
	if c.DetectionRadius <= 0 {
		c.DetectionRadius = 9
	}
	if c.AlertRadius <= 0 {
		c.AlertRadius = 7
	}
	if c.SearchDuration <= 0 {
		c.SearchDuration = 6
	}
	if c.GiveUpRadius <= 0 {
		c.GiveUpRadius = 0.8
	}
	if c.PatrolRadius <= 0 {
		c.PatrolRadius = 5
	}
	if c.PatrolSpeedFactor <= 0 || c.PatrolSpeedFactor > 1 {
		c.PatrolSpeedFactor = 0.5
	}
	if c.PatrolPauseMin <= 0 {
		c.PatrolPauseMin = 1.0
	}
	if c.PatrolPauseMax < c.PatrolPauseMin {
		c.PatrolPauseMax = 3.0
	}
	if c.PatrolSampleTries <= 0 {
		c.PatrolSampleTries = 8
	}
	if c.ArriveRadius <= 0 {
		c.ArriveRadius = 0.35
	}
	return c
}
