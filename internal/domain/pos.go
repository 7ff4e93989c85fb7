package domain

import "math"

// Position - целочисленная координата клетки.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistanceSquaredTo возвращает квадрат расстояния (int) для сравнения без корней
func (p Position) DistanceSquaredTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Shift возвращает новую позицию со смещением, не меняя текущую.
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Vec2 - непрерывная координата в единицах клеток.
// Движущиеся сущности живут в Vec2, карта - в Position.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tile возвращает клетку, в которой находится точка.
func (v Vec2) Tile() Position {
	return Position{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// DistanceSquaredTo - квадрат расстояния между точками.
func (v Vec2) DistanceSquaredTo(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// StepToward возвращает смещение к цели длиной не больше maxStep.
// Если цель ближе maxStep - смещение ровно до цели (без перелета).
func (v Vec2) StepToward(target Vec2, maxStep float64) Vec2 {
	d := target.Sub(v)
	dist := d.Len()
	if dist <= maxStep || dist == 0 {
		return d
	}
	k := maxStep / dist
	return Vec2{X: d.X * k, Y: d.Y * k}
}

// Rect - прямоугольник сущности (верхний левый угол + размер),
// в единицах клеток.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

// Shift возвращает прямоугольник, сдвинутый на (dx, dy).
func (r Rect) Shift(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}
