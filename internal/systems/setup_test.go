package systems

import (
	"os"
	"testing"

	"deepfall-server/internal/domain"
	"deepfall-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

// createTestLayout builds an open floor of the given size with a
// one-tile rock border around it.
func createTestLayout(w, h int) *domain.LevelLayout {
	grid := domain.NewTileGrid(w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			grid.Set(x, y, domain.TileFloor)
		}
	}
	return &domain.LevelLayout{
		Grid:       grid,
		Visibility: domain.NewVisibilityState(),
	}
}

// setRock places a sight-blocking, non-walkable tile.
func setRock(l *domain.LevelLayout, x, y int) {
	l.Grid.Set(x, y, domain.TileRock)
}

// testEnemy spawns a minimal live enemy at tile (x, y).
func testEnemy(id string, x, y float64) *domain.Entity {
	e := &domain.Entity{
		ID:             id,
		Type:           domain.EntityTypeEnemy,
		Name:           "Test Enemy",
		Pos:            domain.Vec2{X: x, Y: y},
		Size:           domain.Vec2{X: 0.8, Y: 0.8},
		Speed:          2.0,
		BlocksMovement: true,
		Stats:          &domain.StatsComponent{HP: 10, MaxHP: 10},
	}
	e.Perception = domain.NewPerceptionState(e.Center())
	return e
}

// testPlayer spawns the player at tile (x, y).
func testPlayer(x, y float64) *domain.Entity {
	return &domain.Entity{
		ID:             "player",
		Type:           domain.EntityTypePlayer,
		Name:           "Player",
		Pos:            domain.Vec2{X: x, Y: y},
		Size:           domain.Vec2{X: 0.8, Y: 0.8},
		Speed:          3.0,
		BlocksMovement: true,
		Stats:          &domain.StatsComponent{HP: 100, MaxHP: 100},
	}
}
