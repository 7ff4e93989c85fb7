package systems

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"deepfall-server/internal/domain"
	"deepfall-server/pkg/logger"
)

// MoveIntent - желаемое смещение врага на этот тик.
type MoveIntent struct {
	Dx, Dy float64

	// SuppressEncounter = true для патрульного шага: случайное
	// столкновение с игроком на прогулке боя не начинает.
	SuppressEncounter bool
}

// PerceptionUpdate - решение одного врага за один тик.
type PerceptionUpdate struct {
	Intent MoveIntent

	// Alert не nil, если враг ТОЛЬКО ЧТО заметил игрока
	// (переход Idle/Search -> Chase). Рассылку делает движок.
	Alert *domain.AlertEvent
}

// UpdatePerception прокручивает автомат восприятия одного врага.
// Переходы - чистая функция от (режим, расстояние, LOS, таймеры);
// единственный рандом - выбор точки патруля.
// Мертвые сущности не обновляются вовсе.
func UpdatePerception(npc, player *domain.Entity, layout *domain.LevelLayout, dt float64, rng *rand.Rand, cfg domain.PerceptionConfig) PerceptionUpdate {
	if npc == nil || !npc.IsAlive() || player == nil {
		return PerceptionUpdate{}
	}

	cfg = cfg.Normalize()
	if npc.PerceptionTuning != nil {
		cfg = cfg.Overlay(*npc.PerceptionTuning)
	}

	// Потерянное состояние лениво чинится безопасными дефолтами.
	p := npc.EnsurePerception()

	selfPos := npc.Center()
	playerPos := player.Center()

	distSq := selfPos.DistanceSquaredTo(playerPos)
	inRange := distSq <= cfg.DetectionRadius*cfg.DetectionRadius
	hasLOS := HasLineOfSight(layout, npc.TilePos(), player.TilePos())

	switch p.Mode {
	case domain.ModeChase:
		if !hasLOS {
			// Цель скрылась - переходим в поиск НЕМЕДЛЕННО,
			// даже если игрок все еще в радиусе обнаружения.
			// LastSeenPlayerPos остается с последнего видимого тика.
			p.Mode = domain.ModeSearch
			if p.LastSeenPlayerPos == nil {
				return PerceptionUpdate{}
			}
			return PerceptionUpdate{Intent: chaseStep(npc, selfPos, *p.LastSeenPlayerPos, dt)}
		}

		pp := playerPos
		p.LastSeenPlayerPos = &pp
		return PerceptionUpdate{Intent: chaseStep(npc, selfPos, playerPos, dt)}

	case domain.ModeSearch:
		// Условие обнаружения перепроверяется каждый тик.
		if inRange && hasLOS {
			return spot(p, npc, selfPos, playerPos, dt, cfg)
		}

		p.SearchTimer -= dt
		gaveUp := p.SearchTimer <= 0
		if !gaveUp && p.LastSeenPlayerPos != nil {
			gaveUp = selfPos.DistanceSquaredTo(*p.LastSeenPlayerPos) <= cfg.GiveUpRadius*cfg.GiveUpRadius
		}
		if gaveUp || p.LastSeenPlayerPos == nil {
			p.Mode = domain.ModeIdle
			p.LastSeenPlayerPos = nil
			return PerceptionUpdate{}
		}

		return PerceptionUpdate{Intent: chaseStep(npc, selfPos, *p.LastSeenPlayerPos, dt)}

	default: // Idle
		if inRange && hasLOS {
			return spot(p, npc, selfPos, playerPos, dt, cfg)
		}
		return PerceptionUpdate{Intent: patrolTick(p, npc, layout, selfPos, dt, rng, cfg)}
	}
}

// spot - переход Idle/Search -> Chase: запоминаем игрока, взводим
// таймер поиска и возвращаем событие для рассылки тревоги.
func spot(p *domain.PerceptionState, npc *domain.Entity, selfPos, playerPos domain.Vec2, dt float64, cfg domain.PerceptionConfig) PerceptionUpdate {
	p.Mode = domain.ModeChase
	pp := playerPos
	p.LastSeenPlayerPos = &pp
	p.SearchTimer = cfg.SearchDuration

	logger.Log.WithFields(logrus.Fields{
		"component": "perception",
		"enemy_id":  npc.ID,
	}).Debug("Player spotted, entering chase")

	return PerceptionUpdate{
		Intent: chaseStep(npc, selfPos, playerPos, dt),
		Alert: &domain.AlertEvent{
			SpotterID:  npc.ID,
			SpotterPos: selfPos,
			PlayerPos:  playerPos,
		},
	}
}

// chaseStep - шаг на полной скорости к цели (живой игрок в Chase,
// последняя известная точка в Search).
func chaseStep(npc *domain.Entity, from, target domain.Vec2, dt float64) MoveIntent {
	step := from.StepToward(target, npc.Speed*dt)
	return MoveIntent{Dx: step.X, Dy: step.Y}
}

// patrolTick - поведение в Idle: пауза, выбор точки в радиусе от
// дома, неторопливый шаг к ней.
func patrolTick(p *domain.PerceptionState, npc *domain.Entity, layout *domain.LevelLayout, selfPos domain.Vec2, dt float64, rng *rand.Rand, cfg domain.PerceptionConfig) MoveIntent {
	if p.PatrolPauseTimer > 0 {
		p.PatrolPauseTimer -= dt
		return MoveIntent{}
	}

	if p.PatrolTarget == nil {
		// Ограниченное число проб: не нашли проходимую точку -
		// этот тик проживем без цели.
		for i := 0; i < cfg.PatrolSampleTries; i++ {
			angle := rng.Float64() * 2 * math.Pi
			dist := rng.Float64() * cfg.PatrolRadius
			cand := domain.Vec2{
				X: p.HomePos.X + math.Cos(angle)*dist,
				Y: p.HomePos.Y + math.Sin(angle)*dist,
			}
			tile := cand.Tile()
			if layout.IsWalkable(tile.X, tile.Y) {
				p.PatrolTarget = &cand
				break
			}
		}
		if p.PatrolTarget == nil {
			return MoveIntent{}
		}
	}

	// Прибыли: цель снимается, начинается случайная передышка.
	if selfPos.DistanceSquaredTo(*p.PatrolTarget) <= cfg.ArriveRadius*cfg.ArriveRadius {
		p.PatrolTarget = nil
		p.PatrolPauseTimer = cfg.PatrolPauseMin + rng.Float64()*(cfg.PatrolPauseMax-cfg.PatrolPauseMin)
		return MoveIntent{}
	}

	step := selfPos.StepToward(*p.PatrolTarget, npc.Speed*cfg.PatrolSpeedFactor*dt)
	return MoveIntent{Dx: step.X, Dy: step.Y, SuppressEncounter: true}
}

// PropagateAlert рассылает тревогу по живым врагам в Idle/Search.
// Радиус меряется от ПОЗИЦИИ ЗАМЕТИВШЕГО (не игрока) - это
// осознанная асимметрия: реагирует окружение наблюдателя.
// Собственный LOS у получателей не требуется.
// Возвращает число поднятых по тревоге.
func PropagateAlert(entities []*domain.Entity, event domain.AlertEvent, cfg domain.PerceptionConfig) int {
	cfg = cfg.Normalize()
	alertSq := cfg.AlertRadius * cfg.AlertRadius

	raised := 0
	for _, other := range entities {
		if other == nil || other.ID == event.SpotterID {
			continue
		}
		if other.Type != domain.EntityTypeEnemy || !other.IsAlive() {
			continue
		}

		p := other.EnsurePerception()
		if p.Mode == domain.ModeChase {
			continue // уже в погоне, тревога ничего не добавит
		}
		if other.Center().DistanceSquaredTo(event.SpotterPos) > alertSq {
			continue
		}

		p.Mode = domain.ModeSearch
		pp := event.PlayerPos
		p.LastSeenPlayerPos = &pp
		p.SearchTimer = cfg.SearchDuration
		raised++
	}

	if raised > 0 {
		logger.Log.WithFields(logrus.Fields{
			"component":  "perception",
			"spotter_id": event.SpotterID,
			"raised":     raised,
		}).Debug("Alert propagated")
	}
	return raised
}
