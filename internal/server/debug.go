package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"deepfall-server/internal/engine"
	"deepfall-server/pkg/api"
)

// DebugHandler предоставляет доступ к внутреннему состоянию симуляции.
// Чтение идет в обход цикла без синхронизации: для отладочных ручек
// устаревший на тик снимок приемлем.
type DebugHandler struct {
	Service *engine.SimService
}

func NewDebugHandler(s *engine.SimService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/floors", h.handleListFloors)
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/reveal", h.handleReveal)
}

// /debug/floors - список закэшированных этажей
func (h *DebugHandler) handleListFloors(w http.ResponseWriter, r *http.Request) {
	type FloorSummary struct {
		Depth      int            `json:"depth"`
		Seed       int64          `json:"seed"`
		Width      int            `json:"width"`
		Height     int            `json:"height"`
		Rooms      []api.RoomView `json:"rooms"`
		EnemyCount int            `json:"enemy_count"`
		IsCurrent  bool           `json:"is_current"`
	}

	var summary []FloorSummary
	for depth, floor := range h.Service.Floors {
		rooms := make([]api.RoomView, 0, len(floor.Layout.Rooms))
		for _, room := range floor.Layout.Rooms {
			rooms = append(rooms, api.RoomView{
				X1: room.X1, Y1: room.Y1,
				X2: room.X2, Y2: room.Y2,
				Tag: string(room.Tag),
			})
		}
		summary = append(summary, FloorSummary{
			Depth:      depth,
			Seed:       floor.Seed,
			Width:      floor.Layout.Grid.W,
			Height:     floor.Layout.Grid.H,
			Rooms:      rooms,
			EnemyCount: len(floor.Enemies),
			IsCurrent:  depth == h.Service.Depth,
		})
	}

	writeJSON(w, summary)
}

// /debug/entities?depth=1 - дамп всех сущностей этажа
// (включая скрытое состояние восприятия)
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	depthStr := r.URL.Query().Get("depth")
	depth := h.Service.Depth
	if depthStr != "" {
		fmt.Sscanf(depthStr, "%d", &depth)
	}

	floor, ok := h.Service.Floors[depth]
	if !ok {
		http.Error(w, "Floor not generated yet", http.StatusNotFound)
		return
	}

	// Полные domain.Entity: координаты, режимы, таймеры поиска
	writeJSON(w, floor.Enemies)
}

// /debug/reveal?on=1 - тумблер политики "показать весь этаж".
// Применяется на следующем тике симуляции.
func (h *DebugHandler) handleReveal(w http.ResponseWriter, r *http.Request) {
	on := r.URL.Query().Get("on") == "1"
	h.Service.SetRevealAll(on)

	writeJSON(w, map[string]bool{"reveal_all": on})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug_client.html)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Пустой список отдаем как [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
