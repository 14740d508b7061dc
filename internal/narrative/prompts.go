package narrative

import (
	"fmt"

	"github.com/jwebster45206/murder-house/pkg/chat"
	"github.com/jwebster45206/murder-house/pkg/narrative"
)

const narratorSystemPrompt = "You are a narrator in a murder mystery. Never mention that this is a game."

func namesPrompt(category narrative.Category, count int, theme string) []chat.ChatMessage {
	return []chat.ChatMessage{
		chat.System(fmt.Sprintf("Generate %d unique %s based on the theme '%s'. "+
			"Reply with one name per line and nothing else.", count, category, theme)),
		chat.User("Make room and item names different and distinct names to avoid confusion for the player."),
	}
}

func introPrompt(playerName, theme string) []chat.ChatMessage {
	return []chat.ChatMessage{
		chat.System(narratorSystemPrompt),
		chat.User(fmt.Sprintf("Introduce the player in the second person point of view as an investigator named %s "+
			"for a themed house that just had a murder of a John Doe. The theme is %s. "+
			"Explain that the house is shaped like an icosahedron with 12 rooms and 30 different paths. "+
			"Make it one to two sentences.", playerName, theme)),
	}
}

func itemPrompt(itemName, reportItem, murderer string) []chat.ChatMessage {
	return []chat.ChatMessage{
		chat.System(narratorSystemPrompt),
		chat.User(fmt.Sprintf("Describe the appearance of the item %s and any evidence on it that could point to the murderer. "+
			"Relate the description to the murder weapon %s and the murderer %s without revealing either. "+
			"If %s is not the murder weapon, do not name the murder weapon. "+
			"Make it at most one to two sentences.", itemName, reportItem, murderer, itemName)),
	}
}

func interactionPrompt(npcName, murderer, reportItem string) []chat.ChatMessage {
	return []chat.ChatMessage{
		chat.System("In the second person point of view as the player, describe an NPC interaction in a murder mystery."),
		chat.User(fmt.Sprintf("Describe the interaction with %s in one or two sentences so that it gives the player "+
			"a little more information about the murderer %s and the murder weapon %s. "+
			"Be very subtle, and never reveal the murderer or the murder weapon.", npcName, murderer, reportItem)),
	}
}
