// Package terminal is a bubbletea TUI frontend for the engine: a model
// that renders the field, current/hold/preview pieces and HUD text each
// frame, and turns raw key messages into a held-key bitset for the
// control package to translate. No example in the retrieval pack wires
// bubbletea/lipgloss directly (the teacher's own TUI/GUI surface is
// SDL-only), so this package follows the libraries' own idiomatic
// Init/Update/View model conventions, carried as a direct dependency from
// the teacher's go.mod.
package terminal

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"faststack/internal/control"
	"faststack/internal/engine"
	"faststack/internal/piece"
)

// supportsColor reports whether the attached terminal can render the
// lipgloss cell colors at all; a monochrome terminal falls back to plain
// block glyphs rather than ANSI-coded ones that would render as garbage.
func supportsColor() bool {
	return termenv.NewOutput(os.Stdout).Profile != termenv.Ascii
}

// keyHoldWindow mirrors the headless frontend's rationale: bubbletea
// delivers key-down messages only, so a key is considered held until this
// long after its last message.
const keyHoldWindow = 120 * time.Millisecond

var keyBindings = map[string]control.Key{
	"up":    control.KeyUp,
	"down":  control.KeyDown,
	"left":  control.KeyLeft,
	"right": control.KeyRight,
	"z":     control.KeyRotL,
	"x":     control.KeyRotR,
	"a":     control.KeyRotH,
	"c":     control.KeyHold,
	"enter": control.KeyStart,
}

var (
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	hudStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginLeft(2)
	cellStyles  = map[uint8]lipgloss.Style{
		piece.Color[piece.I]: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		piece.Color[piece.J]: lipgloss.NewStyle().Foreground(lipgloss.Color("27")),
		piece.Color[piece.L]: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		piece.Color[piece.O]: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		piece.Color[piece.S]: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		piece.Color[piece.T]: lipgloss.NewStyle().Foreground(lipgloss.Color("129")),
		piece.Color[piece.Z]: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

type tickMsg time.Time

// Model is the bubbletea model wrapping one engine.Game.
type Model struct {
	game     *engine.Game
	tickRate time.Duration
	lastSeen map[control.Key]time.Time
	quitting bool

	goalBar progress.Model

	onTick    func(tick uint64, keys control.Key)
	keySource func(tick uint64) control.Key
}

// WithKeySource returns a copy of m that reads each tick's keystate from
// fn instead of live key messages, for deterministic replay playback.
func (m Model) WithKeySource(fn func(tick uint64) control.Key) Model {
	m.keySource = fn
	return m
}

// NewModel constructs a Model driving game at tickRate.
func NewModel(game *engine.Game, tickRate time.Duration) Model {
	return Model{
		game:     game,
		tickRate: tickRate,
		lastSeen: make(map[control.Key]time.Time),
		goalBar:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(20)),
	}
}

// WithTickHook returns a copy of m that invokes fn with each tick's
// resolved keystate immediately before it reaches the engine.
func (m Model) WithTickHook(fn func(tick uint64, keys control.Key)) Model {
	m.onTick = fn
	return m
}

// Run starts a bubbletea program over m and blocks until the player quits
// or the game reaches GAMEOVER.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return scheduleTick(m.tickRate)
}

func scheduleTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.game.Quit()
			m.quitting = true
			return m, tea.Quit
		}
		if k, ok := keyBindings[msg.String()]; ok {
			m.lastSeen[k] = time.Now()
		}
		return m, nil

	case tickMsg:
		var keys control.Key
		if m.keySource != nil {
			keys = m.keySource(m.game.TotalTicks())
		} else {
			keys = m.currentKeys()
		}
		if m.onTick != nil {
			m.onTick(m.game.TotalTicks(), keys)
		}
		if _, err := m.game.Tick(keys); err != nil {
			m.quitting = true
			return m, tea.Quit
		}
		if m.game.State() == engine.StateGameOver || m.game.State() == engine.StateQuit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, scheduleTick(m.tickRate)
	}
	return m, nil
}

func (m Model) currentKeys() control.Key {
	now := time.Now()
	var keys control.Key
	for k, t := range m.lastSeen {
		if now.Sub(t) <= keyHoldWindow {
			keys |= k
		}
	}
	return keys
}

func (m Model) View() string {
	if m.quitting {
		return "faststack: session ended\n"
	}

	f := m.game.Field()
	grid := make([][]uint8, f.Height)
	for y := 0; y < f.Height; y++ {
		grid[y] = make([]uint8, f.Width)
		for x := 0; x < f.Width; x++ {
			grid[y][x] = f.Cell(x, y)
		}
	}

	p, _, _, _ := m.game.CurrentPiece()
	if p != piece.None {
		for _, blk := range m.game.CurrentBlocks() {
			bx, by := int(blk.X), int(blk.Y)
			if bx >= 0 && bx < f.Width && by >= 0 && by < f.Height {
				grid[by][bx] = piece.Color[p]
			}
		}
	}

	var rows []string
	for y := 0; y < f.Height; y++ {
		var b strings.Builder
		for x := 0; x < f.Width; x++ {
			b.WriteString(renderCell(grid[y][x]))
		}
		rows = append(rows, b.String())
	}
	board := borderStyle.Render(strings.Join(rows, "\n"))

	hold, holdSet := m.game.Hold()
	holdName := "-"
	if holdSet {
		holdName = hold.String()
	}
	next := m.game.NextQueue()
	var nextNames []string
	for _, k := range next {
		nextNames = append(nextNames, k.String())
	}
	lines, blocks, wd, wr := m.game.Stats()

	hudText := fmt.Sprintf(
		"state: %s\nhold: %s\nnext: %s\nlines: %d\nblocks: %d\nwasted dir/rot: %d/%d\nticks: %d",
		m.game.State(), holdName, strings.Join(nextNames, " "), lines, blocks, wd, wr, m.game.TotalTicks(),
	)
	if goal := m.game.Goal(); goal.Type != engine.GoalNone {
		var progressed, target int
		switch goal.Type {
		case engine.GoalLines:
			progressed, target = lines, goal.Target
		case engine.GoalTime:
			progressed, target = int(m.game.TotalTicks()), goal.Target
		}
		pct := 0.0
		if target > 0 {
			pct = float64(progressed) / float64(target)
		}
		hudText += "\ngoal: " + m.goalBar.ViewAs(clampPct(pct))
	}
	hud := hudStyle.Render(hudText)

	return lipgloss.JoinHorizontal(lipgloss.Top, board, hud) + "\n"
}

func clampPct(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

var colorCapable = supportsColor()

func renderCell(v uint8) string {
	if v == 0 {
		return "· "
	}
	if !colorCapable {
		return "██"
	}
	style, ok := cellStyles[v]
	if !ok {
		style = lipgloss.NewStyle()
	}
	return style.Render("██")
}
