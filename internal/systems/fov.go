package systems

import (
	"math"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"deepfall-server/internal/domain"
	"deepfall-server/pkg/logger"
)

// VisibilityPolicy управляет режимом пересчета поля зрения.
type VisibilityPolicy int

const (
	// PolicyNormal - обычный raycast вокруг наблюдателя.
	PolicyNormal VisibilityPolicy = iota
	// PolicyRevealAll - отладочный режим: принудительно заполнить
	// visible и explored всеми клетками карты. Явный флаг,
	// а не скрытый глобальный тумблер.
	PolicyRevealAll
)

// minRays - нижняя граница числа лучей; дальше растет как 8 на
// единицу радиуса, чтобы на периметре не оставалось дыр.
const minRays = 32

// ComputeVisibility пересчитывает туман войны вокруг origin.
// Visible сбрасывается и строится заново, Explored только растет.
// Возвращает текущее множество видимых клеток и индексы клеток,
// исследованных впервые за этот вызов.
//
// Вызывается при движении наблюдателя, а не каждый кадр рендера.
func ComputeVisibility(layout *domain.LevelLayout, vis *domain.VisibilityState, origin domain.Position, radius int, policy VisibilityPolicy) (mapset.Set[int], []int) {
	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component":    "fov_system",
		"observer_pos": origin,
	})

	// Вырожденный радиус зажимаем, а не отклоняем.
	if radius < 1 {
		radius = 1
	}

	var delta []int

	if policy == PolicyRevealAll {
		// Карта целиком, оба множества.
		for idx := range layout.Grid.Cells {
			if vis.Mark(idx) {
				delta = append(delta, idx)
			}
		}
		vis.Revealed = true
		fovLogger.Debug("Visibility force-filled (reveal all)")
		return vis.Visible, delta
	}

	vis.ResetVisible()

	// Центр виден безусловно.
	if layout.Grid.InBounds(origin.X, origin.Y) {
		if vis.Mark(layout.Grid.Index(origin.X, origin.Y)) {
			delta = append(delta, layout.Grid.Index(origin.X, origin.Y))
		}
	}

	radiusSq := radius * radius
	rays := 8 * radius
	if rays < minRays {
		rays = minRays
	}

	for i := 0; i < rays; i++ {
		angle := 2 * math.Pi * float64(i) / float64(rays)
		tx := origin.X + int(math.Round(math.Cos(angle)*float64(radius)))
		ty := origin.Y + int(math.Round(math.Sin(angle)*float64(radius)))

		walkLine(origin.X, origin.Y, tx, ty, func(x, y int) bool {
			// Луч умирает за границей карты и за радиусом.
			if !layout.Grid.InBounds(x, y) {
				return false
			}
			dx := x - origin.X
			dy := y - origin.Y
			if dx*dx+dy*dy > radiusSq {
				return false
			}

			if vis.Mark(layout.Grid.Index(x, y)) {
				delta = append(delta, layout.Grid.Index(x, y))
			}

			// Непрозрачная клетка сама видна, но луч дальше не идет.
			return !layout.BlocksSight(x, y)
		})
	}

	fovLogger.WithFields(logrus.Fields{
		"radius":         radius,
		"visible_tiles":  vis.Visible.Size(),
		"explored_delta": len(delta),
	}).Debug("FOV calculation complete")

	return vis.Visible, delta
}
