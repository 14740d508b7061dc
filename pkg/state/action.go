package state

import (
	"strconv"
	"strings"
)

type ActionCode string

const (
	ActionMove      ActionCode = "1"
	ActionExamine   ActionCode = "2"
	ActionTake      ActionCode = "3"
	ActionInventory ActionCode = "4"
	ActionInteract  ActionCode = "5"
	ActionAccuse    ActionCode = "6"
	ActionQuit      ActionCode = "q"
)

// Action is a parsed player command. Index is 1-based and only set for
// move and interact; Name is only set for take and accuse.
type Action struct {
	Code  ActionCode `json:"code"`
	Index int        `json:"index,omitempty"`
	Name  string     `json:"name,omitempty"`
}

var knownActions = map[string]ActionCode{
	"1":         ActionMove,
	"move":      ActionMove,
	"m":         ActionMove,
	"2":         ActionExamine,
	"examine":   ActionExamine,
	"x":         ActionExamine,
	"3":         ActionTake,
	"take":      ActionTake,
	"t":         ActionTake,
	"4":         ActionInventory,
	"inventory": ActionInventory,
	"i":         ActionInventory,
	"5":         ActionInteract,
	"interact":  ActionInteract,
	"talk":      ActionInteract,
	"6":         ActionAccuse,
	"accuse":    ActionAccuse,
	"report":    ActionAccuse,
	"q":         ActionQuit,
	"quit":      ActionQuit,
}

// ParseAction turns an action code and its raw parameters into an Action.
// Unknown codes yield ErrInvalidActionCode; missing, empty or non-numeric
// parameters yield ErrInput.
func ParseAction(code string, params []string) (Action, error) {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	ac, ok := knownActions[trimmed]
	if !ok {
		return Action{}, turnError(ErrInvalidActionCode, "Invalid action. Please try again.")
	}

	act := Action{Code: ac}
	switch ac {
	case ActionMove, ActionInteract:
		n, err := numericParam(params)
		if err != nil {
			return Action{}, err
		}
		act.Index = n
	case ActionTake, ActionAccuse:
		name, err := textParam(params)
		if err != nil {
			return Action{}, err
		}
		act.Name = name
	}
	return act, nil
}

func numericParam(params []string) (int, error) {
	if len(params) == 0 || strings.TrimSpace(params[0]) == "" {
		return 0, turnError(ErrInput, "Invalid input. Please enter a number.")
	}
	n, err := strconv.Atoi(strings.TrimSpace(params[0]))
	if err != nil {
		return 0, turnError(ErrInput, "Invalid input. Please enter a number.")
	}
	return n, nil
}

func textParam(params []string) (string, error) {
	if len(params) == 0 || strings.TrimSpace(params[0]) == "" {
		return "", turnError(ErrInput, "Invalid input. Please enter a name.")
	}
	return strings.TrimSpace(params[0]), nil
}
