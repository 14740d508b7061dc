package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/jwebster45206/murder-house/pkg/api"
	"github.com/jwebster45206/murder-house/pkg/state"
	"github.com/muesli/reflow/wordwrap"
)

const (
	AgentName       = "Narrator"
	PlaceHolderText = "Type an action, e.g. 1 3 or 3 Brass Key..."

	defaultTheme      = "haunted mansion"
	defaultPlayerName = "Detective"
	requestTimeout    = 90 * time.Second
)

type phase int

const (
	phaseTheme phase = iota
	phaseName
	phaseStarting
	phasePlaying
	phaseEnded
)

type entryKind int

const (
	entryNarrator entryKind = iota
	entryPlayer
	entryWarning
	entryError
	entryInfo
)

type logEntry struct {
	kind entryKind
	text string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	client       *api.Client
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	loading      bool

	phase      phase
	theme      string
	playerName string

	sessionID     uuid.UUID
	entries       []logEntry
	lastNarration string
	room          string
	inventory     []string
	visited       int
	won           bool

	showQuitModal bool
	progressTick  int
}

type sessionStartedMsg struct {
	resp *api.StartSessionResponse
	err  error
}

type actionResultMsg struct {
	resp *api.ActionResponse
	err  error
}

type viewMsg struct {
	view *api.ViewResponse
	err  error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	wonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("86")).
			Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(client *api.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = "Choose a theme (Enter for " + defaultTheme + ")"
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(2)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		client:       client,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
		phase:        phaseTheme,
		entries: []logEntry{
			{kind: entryInfo, text: "A body has been found. Which kind of house is this? Type a theme and press Enter."},
		},
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.writeChatContent()
		m.writeMetadata()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			return m.submit(input)
		}

	case sessionStartedMsg:
		m.loading = false
		if msg.err != nil {
			m.phase = phaseTheme
			m.textarea.Placeholder = "Choose a theme (Enter for " + defaultTheme + ")"
			m.addEntry(entryError, "Could not start the game: "+msg.err.Error())
			m.addEntry(entryInfo, "Type a theme to try again.")
			break
		}
		m.sessionID = msg.resp.SessionID
		m.phase = phasePlaying
		m.textarea.Placeholder = PlaceHolderText
		m.addEntry(entryNarrator, msg.resp.Intro)
		return m, m.refreshView()

	case actionResultMsg:
		m.loading = false
		if msg.err != nil {
			m.addEntry(entryError, "Error: "+msg.err.Error())
			break
		}
		kind := entryNarrator
		if msg.resp.ErrorKind != "" {
			kind = entryWarning
		}
		m.addEntry(kind, msg.resp.Outcome)
		m.room = msg.resp.CurrentRoom
		m.won = msg.resp.Won
		if msg.resp.Won && !msg.resp.Ended {
			m.addEntry(entryInfo, "Case closed. Keep exploring, or type q to leave.")
		}
		if msg.resp.Ended {
			m.phase = phaseEnded
			m.textarea.Placeholder = "Press Ctrl+C to exit"
			m.addEntry(entryInfo, "The session has ended. Press Ctrl+C to exit.")
			m.writeMetadata()
			break
		}
		m.writeMetadata()
		return m, m.refreshView()

	case viewMsg:
		if msg.err == nil && msg.view != nil {
			m.room = msg.view.CurrentRoom
			m.inventory = msg.view.Inventory
			m.visited = len(msg.view.Visited)
			m.won = msg.view.Won
			m.writeMetadata()
		}

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// submit handles one line of input for the current phase.
func (m ConsoleUI) submit(input string) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseTheme:
		m.theme = input
		if m.theme == "" {
			m.theme = defaultTheme
		}
		m.addEntry(entryPlayer, m.theme)
		m.addEntry(entryInfo, "And what is your name, investigator?")
		m.phase = phaseName
		m.textarea.Placeholder = "Your name (Enter for " + defaultPlayerName + ")"
		return m, nil

	case phaseName:
		m.playerName = input
		if m.playerName == "" {
			m.playerName = defaultPlayerName
		}
		m.addEntry(entryPlayer, m.playerName)
		m.phase = phaseStarting
		return m.startLoading(m.startSession())

	case phasePlaying:
		if input == "" {
			return m, nil
		}
		if strings.HasPrefix(input, "/") {
			return m.handleCommand(input)
		}
		m.addEntry(entryPlayer, input)
		code, params := parseInput(input)
		return m.startLoading(m.sendAction(code, params))
	}
	return m, nil
}

func (m ConsoleUI) startLoading(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.loading = true
	m.progressTick = 0
	m.writeChatContent()
	return m, tea.Batch(cmd, progressTick())
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "/help":
		m.addEntry(entryInfo, `Type an action code followed by its choice:
  1 <n>      move to the n-th listed room
  2          examine the items here
  3 <item>   take an item by name
  4          view inventory
  5 <n>      talk to the n-th NPC here
  6 <name>   report the murderer (you must hold the weapon)
  q          leave the house
Commands: /look, /copy, /help`)

	case "/look":
		if m.room != "" {
			m.addEntry(entryInfo, m.room)
		}
		return m, m.refreshView()

	case "/copy":
		if m.lastNarration == "" {
			m.addEntry(entryWarning, "Nothing to copy yet.")
			break
		}
		if err := clipboard.WriteAll(m.lastNarration); err != nil {
			m.addEntry(entryError, "Copy failed: "+err.Error())
			break
		}
		m.addEntry(entryInfo, "Copied the last narration to the clipboard.")

	default:
		m.addEntry(entryWarning, "Unknown command "+input+". Try /help.")
	}
	return m, nil
}

func (m *ConsoleUI) addEntry(kind entryKind, text string) {
	m.entries = append(m.entries, logEntry{kind: kind, text: text})
	if kind == entryNarrator {
		m.lastNarration = text
	}
	m.writeChatContent()
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.62) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 6
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

// writeChatContent rebuilds the log for the current viewport width
func (m *ConsoleUI) writeChatContent() {
	width := m.chatViewport.Width - 6
	if width < 20 {
		width = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("MURDER HOUSE") + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")

	for _, e := range m.entries {
		content.WriteString(formatEntry(e, width) + "\n\n")
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func formatEntry(e logEntry, width int) string {
	switch e.kind {
	case entryPlayer:
		return userStyle.Render("You: ") + wordwrap.String(e.text, width-5)
	case entryNarrator:
		return narratorStyle.Render(AgentName+": ") + wordwrap.String(e.text, width-len(AgentName)-2)
	case entryWarning:
		return warningStyle.Render(wordwrap.String(e.text, width))
	case entryError:
		return errorStyle.Render(wordwrap.String(e.text, width))
	default:
		return wordwrap.String(e.text, width)
	}
}

func (m *ConsoleUI) writeMetadata() {
	width := m.metaViewport.Width
	if width < 20 {
		width = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("CASE FILE") + "\n\n")

	if m.sessionID == uuid.Nil {
		content.WriteString("No case open yet.\n")
		m.metaViewport.SetContent(content.String())
		return
	}

	content.WriteString("Case:\n" + m.sessionID.String()[:8] + "...\n\n")
	content.WriteString("Investigator:\n" + m.playerName + "\n\n")
	content.WriteString("Theme:\n" + wordwrap.String(m.theme, width) + "\n\n")

	status := "Open"
	if m.won {
		status = wonStyle.Render(" SOLVED ")
	}
	content.WriteString("Status:\n" + status + "\n\n")
	content.WriteString(fmt.Sprintf("Rooms visited:\n%d of 12\n\n", m.visited))

	if m.room != "" {
		content.WriteString(wordwrap.String(m.room, width) + "\n")
	}

	content.WriteString(state.DescribeInventory(m.inventory) + "\n\n")
	content.WriteString(state.ActionMenu + "\n")

	m.metaViewport.SetContent(content.String())
}

func (m ConsoleUI) startSession() tea.Cmd {
	theme, name := m.theme, m.playerName
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		resp, err := m.client.StartSession(ctx, theme, name)
		return sessionStartedMsg{resp, err}
	}
}

func (m ConsoleUI) sendAction(code string, params []string) tea.Cmd {
	id := m.sessionID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		resp, err := m.client.SendAction(ctx, id, code, params)
		return actionResultMsg{resp, err}
	}
}

func (m ConsoleUI) refreshView() tea.Cmd {
	id := m.sessionID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		view, err := m.client.View(ctx, id)
		return viewMsg{view, err}
	}
}

// quit ends an open session before leaving; a failure is not worth reporting.
func (m ConsoleUI) quit() tea.Cmd {
	if m.phase != phasePlaying || m.sessionID == uuid.Nil {
		return tea.Quit
	}
	id := m.sessionID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = m.client.End(ctx, id)
		return tea.Quit()
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.quit()
		case tea.KeyEsc:
			m.showQuitModal = false
			m.textarea.Focus()
			return m, textarea.Blink
		default:
			switch msg.String() {
			case "y", "Y":
				return m, m.quit()
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave the House?"))
	content.WriteString("\n\n")
	if m.phase == phasePlaying {
		content.WriteString("Your case will be closed and cannot be resumed.")
	} else {
		content.WriteString("Are you sure you want to quit?")
	}
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.62) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}

	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓") // Blinking effect at the progress point
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
