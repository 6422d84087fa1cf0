package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/calc/internal/calc"
	"github.com/csheth/calc/internal/clipboard"
	"github.com/csheth/calc/internal/logging"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Evaluator     calc.Evaluator
	EvaluatorName string
	Clipboard     *clipboard.Service
	Logger        *slog.Logger
	AltScreen     bool
	EvalTimeout   time.Duration
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	logger := config.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &model{
		config:       config,
		logger:       logger,
		jobs:         newJobBus(logger, config.EvalTimeout),
		keys:         newKeyMap(),
		help:         help.New(),
		spinner:      spin,
		state:        calc.NewState(),
		flash:        map[string]int{},
		altScreen:    config.AltScreen,
		buttonWidth:  defaultButtonWidth,
		buttonHeight: defaultButtonHeight,
	}
}

type model struct {
	config Config
	logger *slog.Logger
	jobs   *jobBus
	keys   keyMap

	help    help.Model
	spinner spinner.Model

	state   calc.State
	pending int
	seq     uint64

	flash    map[string]int
	flashSeq int

	compact      bool
	altScreen    bool
	helpVisible  bool
	menuOpen     bool
	buttonWidth  int
	buttonHeight int
	width        int

	infoMessage  string
	errorMessage string
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.pending > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case jobSignalMsg:
		return m, nil
	case jobResultEnvelope:
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case calculationResultMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.state = m.state.ApplyOutcome(msg.outcome)
		logging.LogOperation(m.logger, "calculation applied",
			slog.Uint64("seq", msg.seq),
			slog.Uint64("latest_seq", m.seq),
			slog.Bool("error", msg.outcome.Error))
		if msg.outcome.Error {
			m.infoMessage = ""
		} else {
			m.infoMessage = fmt.Sprintf("%s = %s", msg.expression, msg.outcome.Value)
		}
		return m, nil
	case copyResultMsg:
		if msg.ok {
			m.errorMessage = ""
			m.infoMessage = fmt.Sprintf("Copied %s", msg.text)
		} else {
			m.errorMessage = "Nothing copied."
		}
		return m, nil
	case pasteResultMsg:
		if msg.ok {
			m.state = m.state.ApplyPaste(msg.value)
			m.errorMessage = ""
			m.infoMessage = fmt.Sprintf("Pasted %s", msg.value)
		} else {
			m.errorMessage = "Clipboard holds no number."
		}
		return m, nil
	case flashDoneMsg:
		if m.flash[msg.label] == msg.id {
			delete(m.flash, msg.label)
		}
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menuOpen && msg.Type == tea.KeyEsc {
		m.menuOpen = false
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.close()
	case key.Matches(msg, m.keys.Minimize):
		m.minimize()
		return m, nil
	case key.Matches(msg, m.keys.Maximize):
		return m, m.toggleMaximize()
	case key.Matches(msg, m.keys.Resize):
		m.beginResize(resizeKeys[msg.String()])
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
		return m, nil
	}

	// one terminal read arrives as a single multi-rune key: typed keypad
	// input is replayed key by key, anything else is treated as a paste
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		actions, ok := actionsForRunes(msg.Runes)
		if !ok {
			return m, m.pasteText(string(msg.Runes))
		}
		cmds := make([]tea.Cmd, 0, len(actions))
		for _, action := range actions {
			cmds = append(cmds, m.dispatch(action))
		}
		return m, tea.Batch(cmds...)
	}

	action, ok := actionForKey(msg)
	if !ok {
		return m, nil
	}
	return m, m.dispatch(action)
}

// dispatch applies one keypad action. Editing actions run synchronously;
// calculate, copy and paste go through the job bus.
func (m *model) dispatch(action calc.Action) tea.Cmd {
	var cmds []tea.Cmd
	if cmd := m.flashButton(action); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch action.Kind {
	case calc.ActionCalculate:
		cmds = append(cmds, m.startCalculation())
	case calc.ActionCopy:
		cmds = append(cmds, m.jobs.Start(jobKindCopy, copyJob(m.config.Clipboard, m.state.Display)))
	case calc.ActionPaste:
		cmds = append(cmds, m.jobs.Start(jobKindPaste, pasteJob(m.config.Clipboard)))
	default:
		m.state = calc.Reduce(m.state, action)
		m.errorMessage = ""
	}
	return tea.Batch(cmds...)
}

func (m *model) startCalculation() tea.Cmd {
	m.seq++
	m.pending++
	m.errorMessage = ""
	cmd := m.jobs.Start(jobKindCalculate, calculateJob(m.seq, m.config.Evaluator, m.state.Display))
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *model) pasteText(text string) tea.Cmd {
	value, ok := clipboard.Extract(text)
	if !ok {
		m.logger.Warn("pasted text not a valid number", slog.String("text", text))
		m.errorMessage = "Clipboard holds no number."
		return nil
	}
	return func() tea.Msg {
		return pasteResultMsg{value: value, ok: true}
	}
}

func (m *model) flashButton(action calc.Action) tea.Cmd {
	b, ok := buttonFor(action)
	if !ok {
		return nil
	}
	m.flashSeq++
	m.flash[b.label] = m.flashSeq
	return flashDoneCmd(b.label, m.flashSeq)
}
