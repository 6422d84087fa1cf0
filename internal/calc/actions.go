package calc

import (
	"fmt"

	"github.com/csheth/calc/internal/expr"
)

// ActionKind enumerates every user action the keypad supports.
type ActionKind int

const (
	ActionNumber ActionKind = iota
	ActionOperator
	ActionDecimal
	ActionPercent
	ActionBackspace
	ActionClear
	ActionCalculate
	ActionCopy
	ActionPaste
)

func (k ActionKind) String() string {
	switch k {
	case ActionNumber:
		return "number"
	case ActionOperator:
		return "operator"
	case ActionDecimal:
		return "decimal"
	case ActionPercent:
		return "percent"
	case ActionBackspace:
		return "backspace"
	case ActionClear:
		return "clear"
	case ActionCalculate:
		return "calculate"
	case ActionCopy:
		return "copy"
	case ActionPaste:
		return "paste"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// Action is a single keypad or keyboard event. Value carries the digit for
// ActionNumber and the operator glyph for ActionOperator.
type Action struct {
	Kind  ActionKind
	Value string
}

func Number(digit string) Action { return Action{Kind: ActionNumber, Value: digit} }

func Operator(glyph string) Action { return Action{Kind: ActionOperator, Value: glyph} }

func Simple(kind ActionKind) Action { return Action{Kind: kind} }

// State is the display string plus whether it holds a fresh result.
type State struct {
	Display         string
	ResultDisplayed bool
}

func NewState() State {
	return State{Display: expr.Zero}
}

// Reduce applies an editing action. Calculate, copy and paste involve the
// outside world and leave the state untouched; callers feed their results
// back through ApplyOutcome and ApplyPaste.
func Reduce(state State, action Action) State {
	switch action.Kind {
	case ActionNumber:
		return State{Display: expr.AppendNumber(state.Display, action.Value, state.ResultDisplayed)}
	case ActionOperator:
		if !expr.IsOperator(action.Value) {
			return state
		}
		return State{Display: expr.AppendOperator(state.Display, action.Value)}
	case ActionDecimal:
		return State{Display: expr.AppendDecimal(state.Display, state.ResultDisplayed)}
	case ActionPercent:
		return State{Display: expr.AppendPercent(state.Display)}
	case ActionBackspace:
		return State{Display: expr.Backspace(state.Display)}
	case ActionClear:
		return NewState()
	default:
		return state
	}
}

// ApplyOutcome shows a calculation outcome. Only successful results start a
// fresh expression on the next digit.
func (s State) ApplyOutcome(outcome Outcome) State {
	display := outcome.Value
	if display == "" {
		display = expr.Zero
	}
	return State{Display: display, ResultDisplayed: !outcome.Error}
}

// ApplyPaste replaces the display with a pasted number.
func (s State) ApplyPaste(value string) State {
	if value == "" {
		return s
	}
	return State{Display: value}
}
