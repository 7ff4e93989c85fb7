package domain

// Типы сущностей
const (
	EntityTypePlayer = "PLAYER"
	EntityTypeEnemy  = "ENEMY"
)

// Tile - минимальная клетка карты. Значение, не указатель:
// клетки разделяемые (интернированные), менять их поля после
// генерации нельзя.
type Tile struct {
	Walkable    bool   `json:"walkable"`
	BlocksSight bool   `json:"blocksSight"`
	Kind        string `json:"kind"` // rock, floor, stairs
}

// Прототипы клеток. Сетка хранит их копии.
var (
	TileRock   = Tile{Walkable: false, BlocksSight: true, Kind: "rock"}
	TileFloor  = Tile{Walkable: true, BlocksSight: false, Kind: "floor"}
	TileStairs = Tile{Walkable: true, BlocksSight: false, Kind: "stairs"}
)

// TileGrid - карта уровня, row-major.
type TileGrid struct {
	W     int    `json:"w"`
	H     int    `json:"h"`
	Cells []Tile `json:"cells"`
}

// NewTileGrid создает сетку, целиком заполненную скалой.
func NewTileGrid(w, h int) TileGrid {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	cells := make([]Tile, w*h)
	for i := range cells {
		cells[i] = TileRock
	}
	return TileGrid{W: w, H: h, Cells: cells}
}

func (g *TileGrid) Index(x, y int) int {
	return y*g.W + x
}

func (g *TileGrid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// At - тотальный доступ к клетке. Выход за границы = скала.
// Вызывающим не нужна своя проверка границ.
func (g *TileGrid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileRock
	}
	return g.Cells[g.Index(x, y)]
}

// Set записывает клетку. Запись мимо карты молча игнорируется.
func (g *TileGrid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.Cells[g.Index(x, y)] = t
}
