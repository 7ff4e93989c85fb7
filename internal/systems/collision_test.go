package systems

import (
	"testing"

	"deepfall-server/internal/domain"
)

func TestCanOccupy(t *testing.T) {
	l := createTestLayout(12, 12)

	t.Run("Open Floor", func(t *testing.T) {
		r := domain.Rect{X: 3.1, Y: 3.1, W: 0.8, H: 0.8}
		if !CanOccupy(l, r, nil) {
			t.Error("rect on open floor must be allowed")
		}
	})

	t.Run("Corner On Wall", func(t *testing.T) {
		setRock(l, 5, 5)
		// Правый нижний угол заезжает на (5,5).
		r := domain.Rect{X: 4.5, Y: 4.5, W: 0.8, H: 0.8}
		if CanOccupy(l, r, nil) {
			t.Error("rect with a corner on rock must be rejected")
		}
	})

	t.Run("Out Of Bounds", func(t *testing.T) {
		r := domain.Rect{X: -0.5, Y: 2, W: 0.8, H: 0.8}
		if CanOccupy(l, r, nil) {
			t.Error("rect outside the map must be rejected")
		}
	})

	t.Run("Blocking Entity", func(t *testing.T) {
		open := createTestLayout(12, 12)
		blocker := testEnemy("blocker", 3, 3)

		r := domain.Rect{X: 3.2, Y: 3.2, W: 0.8, H: 0.8}
		if CanOccupy(open, r, []*domain.Entity{blocker}) {
			t.Error("overlap with a living blocker must be rejected")
		}

		// Мертвые тела проходимы.
		blocker.Stats.IsDead = true
		if !CanOccupy(open, r, []*domain.Entity{blocker}) {
			t.Error("dead blocker must not block")
		}
	})

	t.Run("Exact Tile Fit", func(t *testing.T) {
		// Прямоугольник ровно 1x1 на целой координате занимает
		// ОДНУ клетку, соседнюю не цепляет.
		single := createTestLayout(12, 12)
		setRock(single, 4, 3)
		r := domain.Rect{X: 3, Y: 3, W: 1, H: 1}
		if !CanOccupy(single, r, nil) {
			t.Error("unit rect at integer coords must fit a single tile")
		}
	})
}

func TestTryMove_AxisSliding(t *testing.T) {
	l := createTestLayout(12, 12)
	// Стена к востоку от (3..4, *): x=5 непроходим.
	for y := 1; y < 11; y++ {
		setRock(l, 5, y)
	}

	e := testEnemy("slider", 4.1, 4.0)

	// Диагональ вправо-вниз: X заблокирован стеной, Y свободен.
	res := TryMove(l, e, 0.5, 0.5, nil)

	if !res.Moved {
		t.Fatal("mover should slide along the wall, not stop")
	}
	if res.Dx != 0 {
		t.Errorf("X displacement should be blocked, got %f", res.Dx)
	}
	if res.Dy != 0.5 {
		t.Errorf("Y displacement should slide through, got %f", res.Dy)
	}
	if e.Pos.Y != 4.5 {
		t.Errorf("position not updated, y=%f", e.Pos.Y)
	}
}

func TestTryMove_FullDiagonalFirst(t *testing.T) {
	l := createTestLayout(12, 12)
	e := testEnemy("walker", 3, 3)

	res := TryMove(l, e, 0.4, 0.3, nil)

	if !res.Moved || res.Dx != 0.4 || res.Dy != 0.3 {
		t.Errorf("open floor must allow the full displacement, got %+v", res)
	}
}

func TestTryMove_FullyBlocked(t *testing.T) {
	l := createTestLayout(12, 12)
	// Карман: проход только сзади.
	setRock(l, 4, 2)
	setRock(l, 4, 3)
	setRock(l, 4, 4)
	setRock(l, 3, 4)
	setRock(l, 2, 4)

	e := testEnemy("stuck", 3.1, 3.1)
	before := e.Pos

	res := TryMove(l, e, 0.8, 0.8, nil)

	if res.Moved {
		t.Errorf("fully blocked mover must stay put, got %+v", res)
	}
	if e.Pos != before {
		t.Error("position must be untouched when movement fails")
	}
}

func TestTryMove_ZeroDisplacement(t *testing.T) {
	l := createTestLayout(12, 12)
	e := testEnemy("idle", 3, 3)

	if res := TryMove(l, e, 0, 0, nil); res.Moved {
		t.Error("zero displacement must not count as movement")
	}
}
