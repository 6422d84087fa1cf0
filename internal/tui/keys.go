package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/calc/internal/calc"
	"github.com/csheth/calc/internal/expr"
)

type keyMap struct {
	Digits    key.Binding
	Operators key.Binding
	Decimal   key.Binding
	Percent   key.Binding
	Backspace key.Binding
	Calculate key.Binding
	Clear     key.Binding
	Copy      key.Binding
	Paste     key.Binding
	Minimize  key.Binding
	Maximize  key.Binding
	Resize    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Digits:    key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "digits")),
		Operators: key.NewBinding(key.WithKeys("+", "-", "*", "/", expr.Times, expr.Divide), key.WithHelp("+ - * /", "operators")),
		Decimal:   key.NewBinding(key.WithKeys("."), key.WithHelp(".", "decimal")),
		Percent:   key.NewBinding(key.WithKeys("%"), key.WithHelp("%", "percent")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
		Calculate: key.NewBinding(key.WithKeys("enter", "="), key.WithHelp("enter/=", "calculate")),
		Clear:     key.NewBinding(key.WithKeys("esc", "c", "C"), key.WithHelp("esc/c", "clear")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		Minimize:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "compact")),
		Maximize:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "full screen")),
		Resize: key.NewBinding(
			key.WithKeys("ctrl+left", "ctrl+right", "ctrl+up", "ctrl+down",
				"ctrl+shift+left", "ctrl+shift+right", "ctrl+shift+up", "ctrl+shift+down"),
			key.WithHelp("ctrl(+shift)+arrows", "resize keypad"),
		),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Calculate, k.Clear, k.Copy, k.Paste, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digits, k.Operators, k.Decimal, k.Percent},
		{k.Backspace, k.Calculate, k.Clear},
		{k.Copy, k.Paste},
		{k.Minimize, k.Maximize, k.Resize},
		{k.Help, k.Quit},
	}
}

var operatorKeys = map[string]string{
	"+":         expr.Plus,
	"-":         expr.Minus,
	"*":         expr.Times,
	"/":         expr.Divide,
	expr.Times:  expr.Times,
	expr.Divide: expr.Divide,
}

// actionForKey maps a key press onto a calculator action.
func actionForKey(msg tea.KeyMsg) (calc.Action, bool) {
	k := msg.String()
	if glyph, ok := operatorKeys[k]; ok {
		return calc.Operator(glyph), true
	}
	if len(k) == 1 && k[0] >= '0' && k[0] <= '9' {
		return calc.Number(k), true
	}
	switch k {
	case "ctrl+c":
		return calc.Simple(calc.ActionCopy), true
	case "ctrl+v":
		return calc.Simple(calc.ActionPaste), true
	case "enter", "=":
		return calc.Simple(calc.ActionCalculate), true
	case ".":
		return calc.Simple(calc.ActionDecimal), true
	case "%":
		return calc.Simple(calc.ActionPercent), true
	case "backspace":
		return calc.Simple(calc.ActionBackspace), true
	case "esc", "c", "C":
		return calc.Simple(calc.ActionClear), true
	}
	return calc.Action{}, false
}

// actionsForRunes maps a burst of runes delivered in one key message onto
// keypad actions. Spaces are skipped. It reports false as soon as a rune has
// no keypad meaning.
func actionsForRunes(runes []rune) ([]calc.Action, bool) {
	actions := make([]calc.Action, 0, len(runes))
	for _, r := range runes {
		if r == ' ' {
			continue
		}
		action, ok := actionForKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		if !ok {
			return nil, false
		}
		actions = append(actions, action)
	}
	return actions, len(actions) > 0
}

var resizeKeys = map[string]resizeDirection{
	"ctrl+up":    resizeNorth,
	"ctrl+down":  resizeSouth,
	"ctrl+right": resizeEast,
	"ctrl+left":  resizeWest,

	"ctrl+shift+right": resizeSouthEast,
	"ctrl+shift+left":  resizeNorthWest,
	"ctrl+shift+up":    resizeNorthEast,
	"ctrl+shift+down":  resizeSouthWest,
}
