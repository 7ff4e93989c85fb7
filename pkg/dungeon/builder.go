package dungeon

import (
	"math"
	"math/rand"

	"deepfall-server/internal/domain"
)

// LevelBuilder предоставляет fluent API для создания этажей.
// Весь рандом идет через инжектированный rng: один сид - одна карта.
type LevelBuilder struct {
	depth int
	cfg   domain.GenConfig
	rng   *rand.Rand

	width  int
	height int
	grid   domain.TileGrid
	rooms  []domain.Room
}

// NewLevel создает новый builder для этажа.
func NewLevel(depth int, cfg domain.GenConfig, rng *rand.Rand) *LevelBuilder {
	if depth < 0 {
		depth = 0
	}
	cfg = cfg.Normalize()
	return &LevelBuilder{
		depth:  depth,
		cfg:    cfg,
		rng:    rng,
		width:  cfg.BaseWidth,
		height: cfg.BaseHeight,
	}
}

// WithSize устанавливает размер карты явно (минимум зажимается).
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	if width < minMapSide {
		width = minMapSide
	}
	if height < minMapSide {
		height = minMapSide
	}
	b.width = width
	b.height = height
	return b
}

// WithScaledSize выбирает масштаб карты из взвешенной таблицы по
// глубине и умножает базовую площадь на него.
func (b *LevelBuilder) WithScaledSize() *LevelBuilder {
	factor := b.pickScale()

	// Масштабируем ПЛОЩАДЬ, поэтому стороны растут как sqrt.
	side := math.Sqrt(factor)
	return b.WithSize(
		int(math.Round(float64(b.cfg.BaseWidth)*side)),
		int(math.Round(float64(b.cfg.BaseHeight)*side)),
	)
}

// pickScale - взвешенный выбор строки таблицы, доступной на этой
// глубине, с зажимом в [MinScale, MaxScale].
func (b *LevelBuilder) pickScale() float64 {
	total := 0
	for _, row := range b.cfg.DepthScales {
		if row.MinDepth <= b.depth {
			total += row.Weight
		}
	}
	factor := b.cfg.MinScale
	if total > 0 {
		roll := b.rng.Intn(total)
		for _, row := range b.cfg.DepthScales {
			if row.MinDepth > b.depth {
				continue
			}
			roll -= row.Weight
			if roll < 0 {
				factor = row.Factor
				break
			}
		}
	}

	if factor < b.cfg.MinScale {
		factor = b.cfg.MinScale
	}
	if factor > b.cfg.MaxScale {
		factor = b.cfg.MaxScale
	}
	return factor
}

// WithRooms генерирует комнаты и коридоры.
func (b *LevelBuilder) WithRooms() *LevelBuilder {
	// Карта целиком из скалы, комнаты вырезаем.
	b.grid = domain.NewTileGrid(b.width, b.height)

	target := b.roomTarget()
	b.rooms = make([]domain.Room, 0, target)

	for i := 0; i < target; i++ {
		room, ok := b.placeOne()
		if !ok {
			// Квота мягкая: не влезло за PlaceAttempts попыток - пропускаем.
			continue
		}

		b.carveRoom(room)

		// Соединяем с предыдущей комнатой L-образным коридором.
		if len(b.rooms) > 0 {
			prev := b.rooms[len(b.rooms)-1].Center()
			curr := room.Center()

			if b.rng.Intn(2) == 0 {
				b.carveHCorridor(prev.X, curr.X, prev.Y)
				b.carveVCorridor(prev.Y, curr.Y, curr.X)
			} else {
				b.carveVCorridor(prev.Y, curr.Y, prev.X)
				b.carveHCorridor(prev.X, curr.X, curr.Y)
			}
		}
		b.rooms = append(b.rooms, room)
	}

	return b
}

// roomTarget - целевое число комнат: базовое количество, умноженное
// на sqrt(площадь/базовая площадь), с зажимом в конфиге.
func (b *LevelBuilder) roomTarget() int {
	baseArea := float64(b.cfg.BaseWidth * b.cfg.BaseHeight)
	area := float64(b.width * b.height)

	target := int(math.Round(float64(b.cfg.BaseRoomCount) * math.Sqrt(area/baseArea)))
	if target < b.cfg.MinRooms {
		target = b.cfg.MinRooms
	}
	if target > b.cfg.MaxRooms {
		target = b.cfg.MaxRooms
	}
	return target
}

// placeOne пытается подобрать непересекающуюся комнату.
func (b *LevelBuilder) placeOne() (domain.Room, bool) {
	border := b.cfg.WallBorder

	for attempt := 0; attempt < b.cfg.PlaceAttempts; attempt++ {
		w := b.randRange(b.cfg.RoomMinSize, b.cfg.RoomMaxSize)
		h := b.randRange(b.cfg.RoomMinSize, b.cfg.RoomMaxSize)

		// Внутренность не должна долезать до кромки карты.
		maxX := b.width - border - 1 - w
		maxY := b.height - border - 1 - h
		if maxX < border+1 || maxY < border+1 {
			continue // комната крупнее, чем позволяет карта
		}

		x := b.randRange(border+1, maxX)
		y := b.randRange(border+1, maxY)

		room := domain.Room{
			X1: x, Y1: y,
			X2: x + w - 1, Y2: y + h - 1,
			Tag: domain.RoomGeneric,
		}

		failed := false
		for _, other := range b.rooms {
			if room.Intersects(other) {
				failed = true
				break
			}
		}
		if !failed {
			return room, true
		}
	}

	return domain.Room{}, false
}

func (b *LevelBuilder) carveRoom(room domain.Room) {
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			b.grid.Set(x, y, domain.TileFloor)
		}
	}
}

func (b *LevelBuilder) carveHCorridor(x1, x2, y int) {
	start := min(x1, x2)
	end := max(x1, x2)
	for x := start; x <= end; x++ {
		b.grid.Set(x, y, domain.TileFloor)
	}
}

func (b *LevelBuilder) carveVCorridor(y1, y2, x int) {
	start := min(y1, y2)
	end := max(y1, y2)
	for y := start; y <= end; y++ {
		b.grid.Set(x, y, domain.TileFloor)
	}
}

// WithTags раздает назначения комнатам. Один проход после
// размещения; наружу список уходит уже полностью помеченным.
func (b *LevelBuilder) WithTags() *LevelBuilder {
	if len(b.rooms) == 0 {
		return b
	}

	// 1. Первая комната - всегда старт.
	b.rooms[0].Tag = domain.RoomStart

	// 2. Сокровищница - самая дальняя от старта (квадрат расстояния).
	if len(b.rooms) > 1 {
		start := b.rooms[0].Center()
		farthest := 1
		best := -1
		for i := 1; i < len(b.rooms); i++ {
			d := b.rooms[i].Center().DistanceSquaredTo(start)
			if d > best {
				best = d
				farthest = i
			}
		}
		b.rooms[farthest].Tag = domain.RoomTreasure
	}

	// 3. Логово - случайная из оставшихся generic.
	if free := b.genericIndices(); len(free) > 0 {
		b.rooms[free[b.rng.Intn(len(free))]].Tag = domain.RoomLair
	}

	// 4. Тематические теги по таблице правил.
	// Более специфичный тег никогда не перезаписываем.
	counts := make(map[domain.RoomTag]int)
	for _, i := range b.genericIndices() {
		for _, rule := range b.cfg.TagRules {
			if b.depth < rule.MinDepth {
				continue
			}
			if counts[rule.Tag] >= rule.MaxCount {
				continue
			}
			if b.rng.Float64() < rule.Chance {
				b.rooms[i].Tag = rule.Tag
				counts[rule.Tag]++
				break
			}
		}
	}

	return b
}

func (b *LevelBuilder) genericIndices() []int {
	var out []int
	for i := range b.rooms {
		if b.rooms[i].Tag == domain.RoomGeneric {
			out = append(out, i)
		}
	}
	return out
}

// Build собирает готовую раскладку: лестницы, туман войны, fallback.
func (b *LevelBuilder) Build() *domain.LevelLayout {
	if b.grid.Cells == nil {
		b.grid = domain.NewTileGrid(b.width, b.height)
	}

	layout := &domain.LevelLayout{
		Depth:      b.depth,
		Grid:       b.grid,
		Rooms:      b.rooms,
		Visibility: domain.NewVisibilityState(),
	}

	if len(b.rooms) == 0 {
		// Генерация выголодалась полностью: одна точка в центре
		// карты служит обеими лестницами. Не фатально.
		center := domain.Position{X: b.width / 2, Y: b.height / 2}
		layout.Grid.Set(center.X, center.Y, domain.TileStairs)
		layout.UpStairs = center
		layout.DownStairs = center
		return layout
	}

	layout.UpStairs = b.rooms[0].Center()
	layout.DownStairs = b.rooms[len(b.rooms)-1].Center()

	// Лестницы принудительно проходимы и прозрачны, что бы там
	// ни оказалось после коридоров.
	layout.Grid.Set(layout.UpStairs.X, layout.UpStairs.Y, domain.TileStairs)
	layout.Grid.Set(layout.DownStairs.X, layout.DownStairs.Y, domain.TileStairs)

	return layout
}

func (b *LevelBuilder) randRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return b.rng.Intn(hi-lo+1) + lo
}
