package domain

// RoomTag - назначение комнаты. Присваивается генератором одним
// проходом, после Build() список комнат больше не меняется.
type RoomTag string

const (
	RoomStart     RoomTag = "start"
	RoomLair      RoomTag = "lair"
	RoomTreasure  RoomTag = "treasure"
	RoomEvent     RoomTag = "event"
	RoomShop      RoomTag = "shop"
	RoomGraveyard RoomTag = "graveyard"
	RoomSanctum   RoomTag = "sanctum"
	RoomArmory    RoomTag = "armory"
	RoomLibrary   RoomTag = "library"
	RoomArena     RoomTag = "arena"
	RoomGeneric   RoomTag = "generic"
)

// Room - прямоугольная комната. X1..X2, Y1..Y2 - ВНУТРЕННОСТЬ
// (включительно), все эти клетки проходимы. Стены лежат снаружи.
type Room struct {
	X1  int     `json:"x1"`
	Y1  int     `json:"y1"`
	X2  int     `json:"x2"`
	Y2  int     `json:"y2"`
	Tag RoomTag `json:"tag"`
}

// Center возвращает центр комнаты (клетка).
func (r Room) Center() Position {
	return Position{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Intersects проверяет пересечение с учетом стены:
// комнаты, у которых внутренности соприкасаются или делят стену,
// тоже считаются пересекающимися (кандидат отбрасывается).
func (r Room) Intersects(other Room) bool {
	return r.X1-1 <= other.X2 && r.X2+1 >= other.X1 &&
		r.Y1-1 <= other.Y2 && r.Y2+1 >= other.Y1
}

// Contains проверяет, лежит ли клетка внутри комнаты.
func (r Room) Contains(p Position) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// W и H - размеры внутренности.
func (r Room) W() int { return r.X2 - r.X1 + 1 }
func (r Room) H() int { return r.Y2 - r.Y1 + 1 }
