package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту:
// полный "снимок" этажа глазами игрока. Отправляется после каждого тика,
// на котором что-то изменилось.
type ServerResponse struct {
	// Type тип сообщения. На данный момент всегда "UPDATE".
	Type string `json:"type"`

	// Tick номер тика симуляции.
	Tick int `json:"tick"`

	// Depth текущий этаж.
	Depth int `json:"depth"`

	// MyEntityID ID сущности, которой управляет данный клиент.
	MyEntityID string `json:"myEntityId,omitempty"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез исследованных тайлов (туман войны уже применен).
	Map []TileView `json:"map,omitempty"`

	// Entities срез видимых сущностей.
	Entities []EntityView `json:"entities,omitempty"`

	// Logs срез новых сообщений с прошлого снапшота.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит размеры карты, чтобы клиент знал,
// какую сетку для рендеринга готовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO одного тайла. Отправляются только исследованные
// тайлы; IsVisible различает "вижу сейчас" и "видел раньше".
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Kind - визуальный ключ тайла (rock, floor, stairs).
	Kind string `json:"kind"`

	// IsWalkable true для проходимых тайлов.
	IsWalkable bool `json:"isWalkable"`

	// IsVisible true, если тайл в текущем поле зрения. Рендерится ярко.
	IsVisible bool `json:"isVisible"`

	// IsExplored всегда true у отправленных тайлов (остальные не шлем).
	IsExplored bool `json:"isExplored"`
}

// EntityView это DTO игровой сущности.
type EntityView struct {
	ID   string `json:"id"`
	Type string `json:"type"` // PLAYER, ENEMY
	Name string `json:"name"`

	Pos struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"pos"`

	Render struct {
		Symbol string `json:"symbol"`
		Color  string `json:"color"`
	} `json:"render"`

	// Mode режим восприятия врага (IDLE/CHASE/SEARCH).
	// Пустой для игрока.
	Mode string `json:"mode,omitempty"`
}

// RoomView - DTO комнаты для отладочных ручек и спавн-планировщика.
type RoomView struct {
	X1  int    `json:"x1"`
	Y1  int    `json:"y1"`
	X2  int    `json:"x2"`
	Y2  int    `json:"y2"`
	Tag string `json:"tag"`
}

// LogEntry - одна строка в журнале событий.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"` // INFO, ALERT, ENCOUNTER
	Timestamp int64  `json:"timestamp"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand - входящее сообщение от клиента.
type ClientCommand struct {
	Token   string          `json:"token,omitempty"` // ID сущности, которая шлет команду
	Action  string          `json:"action"`          // MOVE, WAIT, DESCEND...
	Payload json.RawMessage `json:"payload"`
}

// DirectionPayload: для WASD движения.
// Используется в: MOVE
type DirectionPayload struct {
	Dx int `json:"dx"`
	Dy int `json:"dy"`
}
