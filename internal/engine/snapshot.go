package engine

import (
	"deepfall-server/internal/domain"
	"deepfall-server/pkg/api"
)

// BuildState собирает персональный слепок этажа глазами игрока:
// только исследованные тайлы, только видимые сущности.
func (s *SimService) BuildState() *api.ServerResponse {
	floor := s.currentFloor()
	layout := floor.Layout
	vis := layout.Visibility

	// 1. Карта: неисследованные клетки не отправляются вовсе -
	// клиент не может подсмотреть планировку в devtools.
	var mapDTO []api.TileView
	for y := 0; y < layout.Grid.H; y++ {
		for x := 0; x < layout.Grid.W; x++ {
			idx := layout.Grid.Index(x, y)
			if !vis.IsExplored(idx) {
				continue
			}
			tile := layout.Grid.At(x, y)
			mapDTO = append(mapDTO, api.TileView{
				X: x, Y: y,
				Kind:       tile.Kind,
				IsWalkable: tile.Walkable,
				IsVisible:  vis.Revealed || vis.IsVisible(idx),
				IsExplored: true,
			})
		}
	}

	// 2. Сущности: себя видим всегда, врагов - по полю зрения.
	viewEntities := []api.EntityView{toEntityView(s.Player)}
	for _, e := range floor.Enemies {
		idx := layout.Grid.Index(e.TilePos().X, e.TilePos().Y)
		if vis.Revealed || vis.IsVisible(idx) {
			viewEntities = append(viewEntities, toEntityView(e))
		}
	}

	// Копия логов, чтобы не было гонки с очисткой после рассылки
	logsCopy := make([]api.LogEntry, len(s.Logs))
	copy(logsCopy, s.Logs)

	return &api.ServerResponse{
		Type:       "UPDATE",
		Tick:       s.Tick,
		Depth:      s.Depth,
		MyEntityID: s.Player.ID,
		Grid:       &api.GridMeta{Width: layout.Grid.W, Height: layout.Grid.H},
		Map:        mapDTO,
		Entities:   viewEntities,
		Logs:       logsCopy,
	}
}

// toEntityView конвертирует доменную сущность в DTO.
func toEntityView(e *domain.Entity) api.EntityView {
	view := api.EntityView{
		ID:   e.ID,
		Type: e.Type,
		Name: e.Name,
	}
	view.Pos.X = e.Pos.X
	view.Pos.Y = e.Pos.Y

	if e.Render != nil {
		view.Render.Symbol = e.Render.Symbol
		view.Render.Color = e.Render.Color
	} else {
		view.Render.Symbol = "?"
		view.Render.Color = "#fff"
	}

	if e.Type == domain.EntityTypeEnemy && e.Perception != nil {
		view.Mode = string(e.Perception.Mode)
	}
	return view
}
