package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/calc/internal/calc"
	"github.com/csheth/calc/internal/clipboard"
)

var errClipboard = errors.New("clipboard unavailable")

func calculateJob(seq uint64, ev calc.Evaluator, display string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		outcome := calc.Calculate(ctx, ev, display)
		msg := calculationResultMsg{seq: seq, expression: display, outcome: outcome}
		// refusals echo the display back and are not failures
		if outcome.Error && outcome.Value != display {
			return msg, errors.New(outcome.Value)
		}
		return msg, nil
	}
}

func copyJob(svc *clipboard.Service, text string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		if svc == nil || !svc.Copy(text) {
			return copyResultMsg{text: text}, errClipboard
		}
		return copyResultMsg{text: text, ok: true}, nil
	}
}

func pasteJob(svc *clipboard.Service) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		if svc == nil {
			return pasteResultMsg{}, errClipboard
		}
		value, ok := svc.Paste()
		if !ok {
			return pasteResultMsg{}, errClipboard
		}
		return pasteResultMsg{value: value, ok: true}, nil
	}
}

func flashDoneCmd(label string, id int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{label: label, id: id}
	})
}
