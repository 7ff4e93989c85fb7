package engine

import (
	"math/rand"

	"deepfall-server/internal/domain"
	"deepfall-server/pkg/dungeon"
)

// Floor - один закэшированный этаж: раскладка, его враги и личный
// rng. Живет, пока игрок может на него вернуться.
type Floor struct {
	Depth   int
	Seed    int64
	Layout  *domain.LevelLayout
	Enemies []*domain.Entity

	// Rng этажа: патрули и спавны не трогают генераторы
	// соседних этажей.
	Rng *rand.Rand
}

// buildFloor генерирует этаж и заселяет его. Детерминирован по
// (masterSeed, depth): повторный заход на тот же этаж после сброса
// дает ту же карту и тех же врагов.
func buildFloor(depth int, masterSeed int64, gen domain.GenConfig) *Floor {
	seed := masterSeed + int64(depth)
	rng := rand.New(rand.NewSource(seed))

	layout := dungeon.Generate(depth, gen, rng)

	return &Floor{
		Depth:   depth,
		Seed:    seed,
		Layout:  layout,
		Enemies: spawnEnemies(layout, depth, rng),
		Rng:     rng,
	}
}

// spawnEnemies - план заселения по тегам комнат. Генератор знает
// только геометрию; кто и где стоит, решается здесь.
func spawnEnemies(layout *domain.LevelLayout, depth int, rng *rand.Rand) []*domain.Entity {
	var out []*domain.Entity
	idx := 0

	for i := range layout.Rooms {
		room := &layout.Rooms[i]
		count := enemyBudget(room.Tag, depth, rng)

		for n := 0; n < count; n++ {
			pos, ok := randomFloorIn(room, layout, rng)
			if !ok {
				continue
			}
			tpl := dungeon.PickTemplate(room.Tag, depth, rng)
			out = append(out, tpl.Spawn(pos, depth, idx))
			idx++
		}
	}
	return out
}

// enemyBudget - сколько врагов получает комната.
// Стартовая комната всегда пуста: игрок приходит туда без оружия.
func enemyBudget(tag domain.RoomTag, depth int, rng *rand.Rand) int {
	switch tag {
	case domain.RoomStart:
		return 0
	case domain.RoomLair:
		n := 2 + depth/2
		if n > 5 {
			n = 5
		}
		return n
	case domain.RoomArena:
		return 4
	case domain.RoomGraveyard:
		return 2
	case domain.RoomTreasure, domain.RoomArmory:
		return 1 // страж
	default:
		if rng.Float64() < 0.35 {
			return 1
		}
		return 0
	}
}

// randomFloorIn выбирает проходимую клетку внутри комнаты.
// Ограниченное число проб: коридоры могли не тронуть комнату,
// но лестница поверх клетки проходимости не ломает.
func randomFloorIn(room *domain.Room, layout *domain.LevelLayout, rng *rand.Rand) (domain.Vec2, bool) {
	for try := 0; try < 10; try++ {
		x := room.X1 + rng.Intn(room.W())
		y := room.Y1 + rng.Intn(room.H())
		if !layout.IsWalkable(x, y) {
			continue
		}
		// Хитбокс 0.8x0.8 центрируется в клетке.
		return domain.Vec2{X: float64(x) + 0.1, Y: float64(y) + 0.1}, true
	}
	return domain.Vec2{}, false
}
