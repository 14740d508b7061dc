package runner

import (
	"fmt"
	"strings"
)

const unexplored = "Unexplored Room"

// Room is the parsed form of the current-room text the API returns.
type Room struct {
	Name       string
	CrimeScene bool
	NPCs       []string
	Items      []string
	Exits      []string
}

// ParseRoom reads the room block rendered by the API. Only the lines it
// recognizes matter; narration around the block is ignored.
func ParseRoom(text string) (Room, error) {
	var (
		room    Room
		section string
	)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "You are currently in the "):
			room.Name = strings.TrimPrefix(trimmed, "You are currently in the ")
			section = ""
		case trimmed == "This room is a CRIME SCENE.":
			room.CrimeScene = true
		case trimmed == "NPCs in the room:":
			section = "npcs"
		case trimmed == "Items in the room:":
			section = "items"
		case trimmed == "Rooms you can move to:":
			section = "exits"
		case section == "items" && strings.HasPrefix(trimmed, "- "):
			room.Items = append(room.Items, strings.TrimPrefix(trimmed, "- "))
		case section == "npcs" || section == "exits":
			_, label, ok := strings.Cut(trimmed, ". ")
			if !ok {
				section = ""
				continue
			}
			if section == "npcs" {
				room.NPCs = append(room.NPCs, label)
			} else {
				room.Exits = append(room.Exits, label)
			}
		default:
			section = ""
		}
	}
	if room.Name == "" {
		return Room{}, fmt.Errorf("no current room in %q", text)
	}
	if len(room.Exits) == 0 {
		return Room{}, fmt.Errorf("room %q lists no exits", room.Name)
	}
	return room, nil
}

// ExitTo returns the 1-based exit that leads to the named room.
func (r Room) ExitTo(name string) (int, bool) {
	for i, label := range r.Exits {
		if label == name {
			return i + 1, true
		}
	}
	return 0, false
}

// FirstUnexplored returns the 1-based index of the first exit not yet
// entered.
func (r Room) FirstUnexplored() (int, bool) {
	return r.ExitTo(unexplored)
}
