package systems

// Общий целочисленный шагатель для LOS и поля зрения.

// visitFunc получает очередную клетку луча.
// Возврат false обрывает луч.
type visitFunc func(x, y int) bool

// walkLine шагает по клеткам от (x0,y0) к (x1,y1) алгоритмом
// Брезенхэма (только целочисленная арифметика). Стартовая клетка
// НЕ посещается, конечная - посещается.
func walkLine(x0, y0, x1, y1 int, visit visitFunc) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	sx := sign(x1 - x0)
	sy := sign(y1 - y0)

	err := dx - dy
	x, y := x0, y0

	for x != x1 || y != y1 {
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
		if !visit(x, y) {
			return
		}
	}
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
