package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepfall-server/internal/domain"
)

func TestBuildFloor_Deterministic(t *testing.T) {
	cfg := domain.GenConfig{}

	a := buildFloor(3, 12345, cfg)
	b := buildFloor(3, 12345, cfg)

	assert.Equal(t, a.Layout.Grid, b.Layout.Grid, "grids must match for the same seed")
	assert.Equal(t, a.Layout.Rooms, b.Layout.Rooms)

	require.Equal(t, len(a.Enemies), len(b.Enemies), "enemy rosters must match")
	for i := range a.Enemies {
		assert.Equal(t, a.Enemies[i].ID, b.Enemies[i].ID)
		assert.Equal(t, a.Enemies[i].Pos, b.Enemies[i].Pos)
		assert.Equal(t, a.Enemies[i].Name, b.Enemies[i].Name)
	}
}

func TestBuildFloor_SeedPerDepth(t *testing.T) {
	cfg := domain.GenConfig{}

	a := buildFloor(1, 777, cfg)
	b := buildFloor(2, 777, cfg)

	assert.Equal(t, int64(778), a.Seed)
	assert.Equal(t, int64(779), b.Seed)
}

func TestSpawnEnemies_StartRoomStaysEmpty(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		f := buildFloor(4, seed, domain.GenConfig{})

		for _, e := range f.Enemies {
			room := f.Layout.RoomAt(e.TilePos())
			require.NotNil(t, room, "enemy %s spawned outside any room", e.ID)
			assert.NotEqual(t, domain.RoomStart, room.Tag,
				"seed %d: enemy %s spawned in the start room", seed, e.ID)
		}
	}
}

func TestSpawnEnemies_WalkableTiles(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		f := buildFloor(5, seed, domain.GenConfig{})

		for _, e := range f.Enemies {
			tp := e.TilePos()
			assert.True(t, f.Layout.IsWalkable(tp.X, tp.Y),
				"seed %d: enemy %s stands on a solid tile", seed, e.ID)
		}
	}
}
