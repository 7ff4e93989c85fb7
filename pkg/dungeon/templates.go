package dungeon

import (
	"fmt"
	"math/rand"

	"deepfall-server/internal/domain"
)

// EnemyTemplate - заготовка врага. Статы масштабируются по глубине
// при спавне, шаблон не меняется.
type EnemyTemplate struct {
	Name   string
	Symbol string
	Color  string

	HP    int
	Speed float64 // клеток в секунду

	// Perception - переопределения восприятия поверх дефолтов.
	// Нулевые поля берутся из общего конфига.
	Perception domain.PerceptionConfig
}

// EnemyTemplates - реестр врагов по ключу.
var EnemyTemplates = map[string]EnemyTemplate{
	"ghoul": {
		Name:   "Гуль",
		Symbol: "g",
		Color:  "#6FBF4A",
		HP:     12,
		Speed:  2.2,
	},
	"sentinel": {
		Name:   "Страж",
		Symbol: "S",
		Color:  "#C0C0C0",
		HP:     24,
		Speed:  1.6,
		Perception: domain.PerceptionConfig{
			// Стражи почти не отходят от поста.
			PatrolRadius:      2.5,
			PatrolSpeedFactor: 0.35,
		},
	},
	"stalker": {
		Name:   "Ловчий",
		Symbol: "s",
		Color:  "#B04ABF",
		HP:     16,
		Speed:  2.8,
		Perception: domain.PerceptionConfig{
			DetectionRadius: 11,
			SearchDuration:  9,
		},
	},
}

// Spawn создает сущность из шаблона. index нужен только для
// читаемого ID внутри этажа.
func (t EnemyTemplate) Spawn(pos domain.Vec2, depth, index int) *domain.Entity {
	hp := t.HP + depth*2

	var tuning *domain.PerceptionConfig
	if t.Perception != (domain.PerceptionConfig{}) {
		p := t.Perception
		tuning = &p
	}

	return &domain.Entity{
		ID:             fmt.Sprintf("e_%d_%d", depth, index),
		Type:           domain.EntityTypeEnemy,
		Name:           t.Name,
		Depth:          depth,
		Pos:            pos,
		Size:           domain.Vec2{X: 0.8, Y: 0.8},
		Speed:          t.Speed,
		BlocksMovement: true,
		Render:         &domain.RenderComponent{Symbol: t.Symbol, Color: t.Color},
		Stats:          &domain.StatsComponent{HP: hp, MaxHP: hp},
		Perception: domain.NewPerceptionState(domain.Vec2{
			X: pos.X + 0.4,
			Y: pos.Y + 0.4,
		}),
		PerceptionTuning: tuning,
	}
}

// PickTemplate выбирает шаблон для комнаты с учетом глубины.
func PickTemplate(tag domain.RoomTag, depth int, rng *rand.Rand) EnemyTemplate {
	switch {
	case tag == domain.RoomTreasure || tag == domain.RoomArmory:
		return EnemyTemplates["sentinel"]
	case depth >= 3 && rng.Float64() < 0.4:
		return EnemyTemplates["stalker"]
	default:
		return EnemyTemplates["ghoul"]
	}
}
