package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/calc/internal/expr"
)

const ellipsis = "…"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("147"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	displayBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	displayTextStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0def4"))
	displayErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#eb6f92"))
	helpBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(0, 1)

	buttonStyles = map[buttonRole]lipgloss.Style{
		roleDigit:    lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4")).Background(lipgloss.Color("#393552")),
		roleFunction: lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#9ccfd8")),
		roleOperator: lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")),
		roleEquals:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#f6c177")),
	}
	menuItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#4f4f4f")).Padding(0, 1)
	flashStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffffff"))
)

func (m *model) View() string {
	if m.compact {
		return m.displayView()
	}
	parts := []string{m.headerView(), m.displayView()}
	parts = append(parts, m.keypadView())
	if menu := m.contextMenuView(); menu != "" {
		parts = append(parts, menu)
	}
	if status := m.statusView(); status != "" {
		parts = append(parts, status)
	}
	if m.helpVisible {
		parts = append(parts, helpBoxStyle.Render(m.help.View(m.keys)))
	} else {
		parts = append(parts, helperStyle.Render(m.help.View(m.keys)))
	}
	return joinNonEmpty(parts)
}

func (m *model) headerView() string {
	title := titleStyle.Render(appTitle)
	if m.config.EvaluatorName == "" {
		return title
	}
	return title + " " + subtitleStyle.Render(m.config.EvaluatorName)
}

// displayView renders the expression line. Long expressions keep their
// tail and gain a leading ellipsis.
func (m *model) displayView() string {
	width := m.displayWidth()
	text := tailTruncate(m.state.Display, width)
	text = fmt.Sprintf("%*s", width, text)
	style := displayTextStyle
	if expr.IsMessage(m.state.Display) {
		style = displayErrorStyle
	}
	return displayBoxStyle.Render(style.Render(text))
}

func (m *model) keypadWidth() int {
	return keypadColumns*m.buttonWidth + (keypadColumns-1)*buttonGap
}

func (m *model) displayWidth() int {
	width := m.keypadWidth()
	// border plus padding on both sides
	if m.width > 0 && width+4 > m.width {
		width = m.width - 4
	}
	if width < 1 {
		width = 1
	}
	return width
}

func (m *model) keypadView() string {
	rows := make([]string, 0, len(keypadRows))
	gap := strings.Repeat(" ", buttonGap)
	for _, row := range keypadRows {
		cells := make([]string, 0, len(row))
		for _, b := range row {
			cells = append(cells, m.buttonView(b))
		}
		rows = append(rows, strings.Join(cells, gap))
	}
	vgap := ""
	if m.buttonHeight > 1 {
		vgap = "\n"
	}
	return strings.Join(rows, "\n"+vgap)
}

func (m *model) buttonView(b button) string {
	width := b.span*m.buttonWidth + (b.span-1)*buttonGap
	style, ok := buttonStyles[b.style]
	if !ok {
		style = buttonStyles[roleDigit]
	}
	if _, flashing := m.flash[b.label]; flashing {
		style = flashStyle
	}
	return style.
		Width(width).
		Height(m.buttonHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.label)
}

func (m *model) statusView() string {
	var parts []string
	if m.pending > 0 {
		parts = append(parts, helperStyle.Render(fmt.Sprintf("%s Calculating…", m.spinner.View())))
	}
	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render(m.errorMessage))
	}
	if m.infoMessage != "" {
		info := m.infoMessage
		if m.width > 0 {
			info = wordwrap.String(info, m.width)
		}
		parts = append(parts, helperStyle.Render(info))
	}
	return joinNonEmpty(parts)
}

// tailTruncate keeps the last width cells of s, marking the cut with an
// ellipsis.
func tailTruncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return ellipsis
	}
	reversed := reverseRunes(s)
	kept := truncate.String(reversed, uint(width-1))
	return ellipsis + reverseRunes(kept)
}

func reverseRunes(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n")
}
