package systems

import (
	"deepfall-server/internal/domain"
)

// HasLineOfSight проверяет прямую видимость между двумя клетками.
// Препятствия проверяются на ПРОМЕЖУТОЧНЫХ клетках: стартовая и
// конечная не блокируют сами себя.
//
// Направление обхода канонизировано (от меньшей клетки к большей),
// поэтому предикат симметричен: LOS(A,B) == LOS(B,A) всегда, даже
// когда Брезенхэм округляет спорные клетки по-разному.
func HasLineOfSight(layout *domain.LevelLayout, p1, p2 domain.Position) bool {
	if p1 == p2 {
		return true
	}

	if p2.Y < p1.Y || (p2.Y == p1.Y && p2.X < p1.X) {
		p1, p2 = p2, p1
	}

	clear := true
	walkLine(p1.X, p1.Y, p2.X, p2.Y, func(x, y int) bool {
		if x == p2.X && y == p2.Y {
			return false // дошли до цели
		}
		// Выход за границы и стены - непрозрачны (тотальный запрос).
		if layout.BlocksSight(x, y) {
			clear = false
			return false
		}
		return true
	})

	return clear
}
