package systems

import (
	"math/rand"
	"testing"

	"deepfall-server/internal/domain"
)

func TestHasLineOfSight(t *testing.T) {
	l := createTestLayout(12, 12)

	t.Run("Identical Points", func(t *testing.T) {
		p := domain.Position{X: 3, Y: 3}
		if !HasLineOfSight(l, p, p) {
			t.Error("a point must always see itself")
		}
	})

	t.Run("Open Corridor", func(t *testing.T) {
		if !HasLineOfSight(l, domain.Position{X: 2, Y: 5}, domain.Position{X: 9, Y: 5}) {
			t.Error("open corridor must not block sight")
		}
	})

	t.Run("Wall Blocks", func(t *testing.T) {
		// Вертикальная стена между точками.
		for y := 1; y < 11; y++ {
			setRock(l, 5, y)
		}
		if HasLineOfSight(l, domain.Position{X: 2, Y: 5}, domain.Position{X: 9, Y: 5}) {
			t.Error("wall must block sight")
		}
	})

	t.Run("Endpoints Do Not Block Themselves", func(t *testing.T) {
		open := createTestLayout(12, 12)
		setRock(open, 8, 5)
		// Цель стоит В непрозрачной клетке: промежуточных преград нет.
		if !HasLineOfSight(open, domain.Position{X: 2, Y: 5}, domain.Position{X: 8, Y: 5}) {
			t.Error("destination tile itself must not block the check")
		}
	})

	t.Run("Out Of Bounds Blocks", func(t *testing.T) {
		if HasLineOfSight(l, domain.Position{X: 2, Y: 2}, domain.Position{X: -5, Y: 2}) {
			t.Error("line through map bounds must be blocked")
		}
	})
}

// Свойство: LOS симметричен на любой местности.
func TestHasLineOfSight_Symmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(321))

	for trial := 0; trial < 50; trial++ {
		l := createTestLayout(16, 16)
		// Случайная россыпь стен.
		for i := 0; i < 30; i++ {
			setRock(l, 1+rng.Intn(14), 1+rng.Intn(14))
		}

		for pair := 0; pair < 40; pair++ {
			a := domain.Position{X: rng.Intn(16), Y: rng.Intn(16)}
			b := domain.Position{X: rng.Intn(16), Y: rng.Intn(16)}

			ab := HasLineOfSight(l, a, b)
			ba := HasLineOfSight(l, b, a)
			if ab != ba {
				t.Fatalf("trial %d: LOS(%v,%v)=%t but LOS(%v,%v)=%t",
					trial, a, b, ab, b, a, ba)
			}
		}
	}
}
