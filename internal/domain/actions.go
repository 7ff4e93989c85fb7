package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionWait
	ActionDescend
	ActionAscend
	ActionResetFloor
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":        ActionInit,
	"MOVE":        ActionMove,
	"WAIT":        ActionWait,
	"DESCEND":     ActionDescend,
	"ASCEND":      ActionAscend,
	"RESET_FLOOR": ActionResetFloor,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:       "INIT",
	ActionMove:       "MOVE",
	ActionWait:       "WAIT",
	ActionDescend:    "DESCEND",
	ActionAscend:     "ASCEND",
	ActionResetFloor: "RESET_FLOOR",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Нечувствительно к регистру для надежности
	if val, ok := actionStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
