package domain

// LevelLayout - результат генерации одного этажа.
// Создается один раз, кэшируется движком на все время жизни этажа
// и пересоздается только при явном сбросе этажа.
type LevelLayout struct {
	Depth      int      `json:"depth"`
	Grid       TileGrid `json:"grid"`
	Rooms      []Room   `json:"rooms"`
	UpStairs   Position `json:"upStairs"`
	DownStairs Position `json:"downStairs"`

	// Visibility принадлежит раскладке, а не наблюдателю:
	// explored живет столько же, сколько сам этаж.
	Visibility *VisibilityState `json:"-"`
}

// IsWalkable - тотальный запрос проходимости (за границами - нет).
func (l *LevelLayout) IsWalkable(x, y int) bool {
	return l.Grid.At(x, y).Walkable
}

// BlocksSight - тотальный запрос непрозрачности (за границами - да).
func (l *LevelLayout) BlocksSight(x, y int) bool {
	return l.Grid.At(x, y).BlocksSight
}

// RoomAt возвращает комнату, содержащую клетку, или nil.
func (l *LevelLayout) RoomAt(p Position) *Room {
	for i := range l.Rooms {
		if l.Rooms[i].Contains(p) {
			return &l.Rooms[i]
		}
	}
	return nil
}

// StartRoom возвращает стартовую комнату (nil только для
// вырожденной раскладки без комнат).
func (l *LevelLayout) StartRoom() *Room {
	for i := range l.Rooms {
		if l.Rooms[i].Tag == RoomStart {
			return &l.Rooms[i]
		}
	}
	return nil
}
