package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/calc/internal/calc"
)

var contextMenuItems = []struct {
	label  string
	action calc.Action
}{
	{label: "Copy", action: calc.Simple(calc.ActionCopy)},
	{label: "Paste", action: calc.Simple(calc.ActionPaste)},
}

const contextMenuGap = "  "

// Mouse coordinates are only meaningful on the alternate screen, where the
// view is drawn from the top-left cell.
func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.altScreen || m.compact {
		return m, nil
	}
	switch msg.Type {
	case tea.MouseRight:
		m.menuOpen = true
		return m, nil
	case tea.MouseLeft:
		if m.menuOpen {
			m.menuOpen = false
			if action, ok := m.menuItemAt(msg.X, msg.Y); ok {
				return m, m.dispatch(action)
			}
			return m, nil
		}
		if b, ok := m.buttonAt(msg.X, msg.Y); ok {
			return m, m.dispatch(b.action)
		}
	}
	return m, nil
}

func (m *model) keypadTop() int {
	return lipgloss.Height(m.headerView()) + lipgloss.Height(m.displayView())
}

func (m *model) rowPitch() int {
	if m.buttonHeight > 1 {
		return m.buttonHeight + 1
	}
	return m.buttonHeight
}

func (m *model) keypadHeight() int {
	return len(keypadRows)*m.rowPitch() - (m.rowPitch() - m.buttonHeight)
}

// buttonAt finds the keypad button drawn at cell (x, y).
func (m *model) buttonAt(x, y int) (button, bool) {
	dy := y - m.keypadTop()
	if dy < 0 || x < 0 {
		return button{}, false
	}
	row := dy / m.rowPitch()
	if row >= len(keypadRows) || dy%m.rowPitch() >= m.buttonHeight {
		return button{}, false
	}
	left := 0
	for _, b := range keypadRows[row] {
		width := b.span*m.buttonWidth + (b.span-1)*buttonGap
		if x >= left && x < left+width {
			return b, true
		}
		left += width + buttonGap
	}
	return button{}, false
}

// menuItemAt resolves a click on the context menu line under the keypad.
func (m *model) menuItemAt(x, y int) (calc.Action, bool) {
	if y != m.keypadTop()+m.keypadHeight() {
		return calc.Action{}, false
	}
	left := 0
	for _, item := range contextMenuItems {
		width := lipgloss.Width(menuItemStyle.Render(item.label))
		if x >= left && x < left+width {
			return item.action, true
		}
		left += width + len(contextMenuGap)
	}
	return calc.Action{}, false
}

func (m *model) contextMenuView() string {
	if !m.menuOpen {
		return ""
	}
	items := make([]string, 0, len(contextMenuItems))
	for _, item := range contextMenuItems {
		items = append(items, menuItemStyle.Render(item.label))
	}
	return strings.Join(items, contextMenuGap)
}
