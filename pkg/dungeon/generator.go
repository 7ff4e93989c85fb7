package dungeon

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"deepfall-server/internal/domain"
	"deepfall-server/pkg/logger"
)

// minMapSide - нижняя граница стороны карты. Запрос нулевого
// размера зажимается, а не отклоняется.
const minMapSide = 16

// Generate создает раскладку этажа. Детерминирован: один rng-сид
// дает идентичную сетку, список комнат и лестницы.
func Generate(depth int, cfg domain.GenConfig, rng *rand.Rand) *domain.LevelLayout {
	layout := NewLevel(depth, cfg, rng).
		WithScaledSize().
		WithRooms().
		WithTags().
		Build()

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon",
		"depth":     depth,
		"size":      []int{layout.Grid.W, layout.Grid.H},
		"rooms":     len(layout.Rooms),
	}).Debug("Floor generated")

	return layout
}
