package engine

import (
	"encoding/json"
	"fmt"

	"deepfall-server/internal/domain"
	"deepfall-server/internal/systems"
	"deepfall-server/pkg/api"
	"deepfall-server/pkg/logger"
)

// handlerFunc - обработчик одной команды. Вызывается из горутины
// цикла, поэтому свободно трогает состояние сервиса.
type handlerFunc func(s *SimService, payload json.RawMessage)

func (s *SimService) registerHandlers() {
	s.handlers = map[domain.ActionType]handlerFunc{
		domain.ActionInit:       handleInit,
		domain.ActionMove:       handleMove,
		domain.ActionWait:       handleWait,
		domain.ActionDescend:    handleDescend,
		domain.ActionAscend:     handleAscend,
		domain.ActionResetFloor: handleResetFloor,
	}
}

// handleCommand диспетчеризует одну команду игрока.
func (s *SimService) handleCommand(cmd domain.InternalCommand) {
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return
	}
	handler(s, cmd.Payload)
}

// handleInit просто помечает тик грязным: клиенту уйдет полный снапшот.
func handleInit(s *SimService, _ json.RawMessage) {
	s.dirty = true
}

// handleMove - шаг игрока ровно на одну клетку (с доводкой по осям).
func handleMove(s *SimService, payload json.RawMessage) {
	var dir api.DirectionPayload
	if err := json.Unmarshal(payload, &dir); err != nil {
		logger.Log.WithError(err).Warn("Malformed MOVE payload")
		return
	}

	floor := s.currentFloor()
	res := systems.TryMove(floor.Layout, s.Player,
		float64(clampDir(dir.Dx)), float64(clampDir(dir.Dy)), floor.Enemies)
	if res.Moved {
		s.visionDirty = true
		s.dirty = true
	}
}

func handleWait(s *SimService, _ json.RawMessage) {
	s.dirty = true
}

func handleDescend(s *SimService, _ json.RawMessage) {
	s.useStairs(+1)
}

func handleAscend(s *SimService, _ json.RawMessage) {
	s.useStairs(-1)
}

func handleResetFloor(s *SimService, _ json.RawMessage) {
	s.resetFloor()
}

// useStairs - переход на соседний этаж. Требует стоять на
// соответствующей лестнице; с нулевого этажа подниматься некуда.
func (s *SimService) useStairs(delta int) {
	floor := s.currentFloor()
	tile := s.Player.TilePos()

	switch {
	case delta > 0 && tile == floor.Layout.DownStairs:
		s.switchFloor(s.Depth + 1)
		s.AddLog(fmt.Sprintf("Вы спускаетесь на этаж %d.", s.Depth), "INFO")
	case delta < 0 && s.Depth > 0 && tile == floor.Layout.UpStairs:
		s.switchFloor(s.Depth - 1)
		s.AddLog(fmt.Sprintf("Вы поднимаетесь на этаж %d.", s.Depth), "INFO")
	default:
		s.AddLog("Здесь нет подходящей лестницы.", "INFO")
		s.dirty = true
	}
}
