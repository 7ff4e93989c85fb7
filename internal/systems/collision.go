package systems

import (
	"math"

	"deepfall-server/internal/domain"
)

// cornerInset отодвигает правый/нижний края хитбокса от границы
// клетки, иначе прямоугольник шириной ровно 1.0, стоящий на целой
// координате, "цеплял" бы соседнюю колонку.
const cornerInset = 1e-6

// CanOccupy проверяет, может ли прямоугольник занять позицию:
// все четыре угла должны проецироваться на проходимые клетки,
// и нельзя пересекаться ни с одним живым блокирующим телом.
func CanOccupy(layout *domain.LevelLayout, r domain.Rect, blockers []*domain.Entity) bool {
	corners := [4][2]float64{
		{r.X, r.Y},
		{r.X + r.W - cornerInset, r.Y},
		{r.X, r.Y + r.H - cornerInset},
		{r.X + r.W - cornerInset, r.Y + r.H - cornerInset},
	}
	for _, c := range corners {
		if !layout.IsWalkable(int(math.Floor(c[0])), int(math.Floor(c[1]))) {
			return false
		}
	}

	for _, other := range blockers {
		if other == nil || !other.BlocksMovement || !other.IsAlive() {
			continue
		}
		if r.Intersects(other.Bounds()) {
			return false
		}
	}

	return true
}

// MoveResult - результат попытки движения.
type MoveResult struct {
	Moved  bool
	Dx, Dy float64 // примененное смещение
}

// TryMove пытается сместить сущность: сначала полная диагональ,
// при неудаче - только X, потом только Y. Скольжение вдоль осей
// не дает застревать на прямых углах. Единый код для игрока и AI.
//
// blockers не должен содержать саму сущность - фильтрует вызывающий.
func TryMove(layout *domain.LevelLayout, e *domain.Entity, dx, dy float64, blockers []*domain.Entity) MoveResult {
	if dx == 0 && dy == 0 {
		return MoveResult{}
	}

	bounds := e.Bounds()

	apply := func(ax, ay float64) bool {
		if !CanOccupy(layout, bounds.Shift(ax, ay), blockers) {
			return false
		}
		e.Pos.X += ax
		e.Pos.Y += ay
		return true
	}

	if apply(dx, dy) {
		return MoveResult{Moved: true, Dx: dx, Dy: dy}
	}
	if dx != 0 && apply(dx, 0) {
		return MoveResult{Moved: true, Dx: dx}
	}
	if dy != 0 && apply(0, dy) {
		return MoveResult{Moved: true, Dy: dy}
	}

	return MoveResult{}
}
