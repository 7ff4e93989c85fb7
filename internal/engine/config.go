package engine

import (
	"time"

	"deepfall-server/internal/domain"
)

// Config хранит параметры запуска симуляции.
type Config struct {
	// Seed - мастер-зерно. Сид этажа N = Seed + N, поэтому один
	// мастер-сид детерминирует все подземелье целиком.
	Seed int64

	// TickInterval - период игрового цикла.
	TickInterval time.Duration

	// VisionRadius - радиус поля зрения игрока, в клетках.
	VisionRadius int

	// EncounterGrace - пауза после начала боя (и после смены этажа),
	// в течение которой новые столкновения не засчитываются.
	EncounterGrace float64

	// Gen и Perception - конфиги подсистем. Нулевые значения
	// нормализуются самими подсистемами.
	Gen        domain.GenConfig
	Perception domain.PerceptionConfig
}

// NewConfig создает конфиг по умолчанию (случайный сид).
func NewConfig() Config {
	return Config{
		Seed:           time.Now().UnixNano(),
		TickInterval:   100 * time.Millisecond,
		VisionRadius:   8,
		EncounterGrace: 1.5,
	}
}
