package state

import (
	"fmt"
	"strings"
)

const unexploredRoom = "Unexplored Room"

// ActionMenu is the numbered list of actions offered every turn.
const ActionMenu = `Available actions:
1. Move to another room
2. Examine items
3. Take an item
4. View inventory
5. Interact with an NPC
6. Report the crime
q. Quit`

// DescribeRoom renders the player's current room: where they are, whether it
// is the crime scene, who and what is present, and the exits.
func (gs *GameState) DescribeRoom() string {
	room := gs.Room()
	if room == nil {
		return "You are in an unknown location."
	}

	var b strings.Builder
	b.WriteString("You are currently in the " + room.Description + "\n")
	if room.IsCrimeScene {
		b.WriteString("This room is a CRIME SCENE.\n")
	}
	if len(room.NPCs) > 0 {
		b.WriteString("NPCs in the room:\n")
		for i, npc := range room.NPCs {
			fmt.Fprintf(&b, " %d. %s\n", i+1, npc)
		}
	}
	if len(room.Items) > 0 {
		b.WriteString("Items in the room:\n")
		for _, item := range room.Items {
			b.WriteString(" - " + item + "\n")
		}
	}
	b.WriteString(gs.DescribeExits())
	return b.String()
}

// DescribeExits lists the neighbors of the current room, 1-based. Rooms the
// player has not entered yet are shown as unexplored.
func (gs *GameState) DescribeExits() string {
	room := gs.Room()
	if room == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("Rooms you can move to:\n")
	for i, id := range room.Neighbors {
		label := unexploredRoom
		if gs.Visited[id] {
			label = gs.House.Rooms[id].Description
		}
		fmt.Fprintf(&b, " %d. %s\n", i+1, label)
	}
	return b.String()
}

func DescribeInventory(items []string) string {
	if len(items) == 0 {
		return "Your inventory is empty."
	}
	return "Inventory:\n - " + strings.Join(items, "\n - ")
}

// DescribeExamined is the plain examine text used when no narration is
// available.
func DescribeExamined(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "You examine the " + item + "."
	}
	return strings.Join(lines, "\n")
}
