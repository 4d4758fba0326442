package domain

// Role определяет, откуда актор получает действия.
// Player блокируется до внешнего ввода, NonPlayerActor получает
// решение от AI-коллаборатора.
type Role uint8

const (
	RolePlayer Role = iota
	RoleNonPlayerActor
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "PLAYER"
	case RoleNonPlayerActor:
		return "NPC"
	default:
		return "UNKNOWN"
	}
}
