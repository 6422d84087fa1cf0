package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/calc/internal/logging"
)

type resizeDirection string

const (
	resizeNorth     resizeDirection = "North"
	resizeSouth     resizeDirection = "South"
	resizeEast      resizeDirection = "East"
	resizeWest      resizeDirection = "West"
	resizeNorthEast resizeDirection = "NorthEast"
	resizeNorthWest resizeDirection = "NorthWest"
	resizeSouthEast resizeDirection = "SouthEast"
	resizeSouthWest resizeDirection = "SouthWest"
)

// resizeDeltas treats the keypad as anchored at its top-left corner: east and
// south grow it, west and north shrink it.
var resizeDeltas = map[resizeDirection][2]int{
	resizeNorth:     {0, -1},
	resizeSouth:     {0, 1},
	resizeEast:      {1, 0},
	resizeWest:      {-1, 0},
	resizeNorthEast: {1, -1},
	resizeNorthWest: {-1, -1},
	resizeSouthEast: {1, 1},
	resizeSouthWest: {-1, 1},
}

func (m *model) minimize() {
	m.compact = !m.compact
	logging.LogOperation(m.logger, "window minimize", slog.Bool("compact", m.compact))
}

func (m *model) toggleMaximize() tea.Cmd {
	m.altScreen = !m.altScreen
	logging.LogOperation(m.logger, "window maximize", slog.Bool("alt_screen", m.altScreen))
	if m.altScreen {
		return tea.Batch(tea.EnterAltScreen, tea.EnableMouseCellMotion)
	}
	m.menuOpen = false
	return tea.Batch(tea.ExitAltScreen, tea.DisableMouse)
}

func (m *model) close() tea.Cmd {
	logging.LogOperation(m.logger, "window close")
	return tea.Quit
}

// beginResize nudges the keypad size. Unknown directions and requests that
// would leave the bounds are logged and dropped.
func (m *model) beginResize(direction resizeDirection) {
	delta, ok := resizeDeltas[direction]
	if !ok {
		logging.LogError(m.logger, "window resize failed", fmt.Errorf("unknown direction %q", direction))
		return
	}
	width := m.buttonWidth + delta[0]
	height := m.buttonHeight + delta[1]
	if width < minButtonWidth || width > maxButtonWidth || height < minButtonHeight || height > maxButtonHeight {
		logging.LogError(m.logger, "window resize failed",
			fmt.Errorf("size %dx%d out of bounds", width, height),
			slog.String("direction", string(direction)))
		return
	}
	m.buttonWidth = width
	m.buttonHeight = height
	logging.LogOperation(m.logger, "window resize",
		slog.String("direction", string(direction)),
		slog.Int("button_width", width),
		slog.Int("button_height", height))
}
