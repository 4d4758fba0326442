package domain

import "strings"

// ActionKind - Внутренний числовой идентификатор действия
type ActionKind uint8

const (
	ActionUnknown ActionKind = iota
	ActionMove
	ActionWait
	ActionPickup
	// В будущем: ActionUseItem, ActionOpenDoor...
)

// Action - разрешенное действие, прикрепленное к актору на один ход.
// Движок потребляет его ровно один раз и отцепляет от актора.
type Action struct {
	Kind ActionKind `json:"kind"`
	Dir  Direction  `json:"dir,omitempty"` // Только для ActionMove
}

// MoveAction - конструктор для самого частого действия
func MoveAction(dir Direction) Action {
	return Action{Kind: ActionMove, Dir: dir}
}

// WaitAction - пропуск хода
func WaitAction() Action {
	return Action{Kind: ActionWait}
}

// Маппинг для конвертации JSON -> Domain
var actionStringToKind = map[string]ActionKind{
	"MOVE":   ActionMove,
	"WAIT":   ActionWait,
	"PICKUP": ActionPickup,
}

// Маппинг для логов Domain -> String
var actionKindToString = map[ActionKind]string{
	ActionMove:   "MOVE",
	ActionWait:   "WAIT",
	ActionPickup: "PICKUP",
}

// ParseActionKind конвертирует строку из JSON в ActionKind
func ParseActionKind(s string) ActionKind {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToKind[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionKind) String() string {
	if val, ok := actionKindToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
