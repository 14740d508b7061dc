package state

import (
	"errors"
	"fmt"
)

// Per-turn errors. All of them leave the game state untouched.
var (
	ErrInvalidActionCode = errors.New("invalid action code")
	ErrInvalidRoomIndex  = errors.New("invalid room index")
	ErrInvalidNPCIndex   = errors.New("invalid NPC index")
	ErrItemNotFound      = errors.New("item not found")
	ErrInput             = errors.New("invalid input")
)

// ErrorKind returns a stable short name for a per-turn error, or "" if err
// is not one of them.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidActionCode):
		return "invalid_action_code"
	case errors.Is(err, ErrInvalidRoomIndex):
		return "invalid_room_index"
	case errors.Is(err, ErrInvalidNPCIndex):
		return "invalid_npc_index"
	case errors.Is(err, ErrItemNotFound):
		return "item_not_found"
	case errors.Is(err, ErrInput):
		return "input_error"
	default:
		return ""
	}
}

// TurnError is a rejected action. Message is safe to show to the player.
type TurnError struct {
	Kind    error
	Message string
}

func (e *TurnError) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *TurnError) Unwrap() error {
	return e.Kind
}

func turnError(kind error, format string, args ...any) error {
	return &TurnError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// PlayerMessage returns the text to show for a rejected action.
func PlayerMessage(err error) string {
	var te *TurnError
	if errors.As(err, &te) {
		return te.Message
	}
	return "Invalid action. Please try again."
}
