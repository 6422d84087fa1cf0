package tui

import (
	"time"

	"github.com/csheth/calc/internal/calc"
	"github.com/csheth/calc/internal/expr"
)

const appTitle = "Calc"

const (
	flashDuration      = 150 * time.Millisecond
	defaultEvalTimeout = 10 * time.Second
)

const (
	defaultButtonWidth  = 5
	minButtonWidth      = 3
	maxButtonWidth      = 11
	defaultButtonHeight = 1
	minButtonHeight     = 1
	maxButtonHeight     = 3
	buttonGap           = 1
	keypadColumns       = 4
)

type button struct {
	label  string
	action calc.Action
	span   int
	style  buttonRole
}

type buttonRole int

const (
	roleDigit buttonRole = iota
	roleFunction
	roleOperator
	roleEquals
)

var keypadRows = [][]button{
	{
		{label: "C", action: calc.Simple(calc.ActionClear), span: 1, style: roleFunction},
		{label: "⌫", action: calc.Simple(calc.ActionBackspace), span: 1, style: roleFunction},
		{label: "%", action: calc.Simple(calc.ActionPercent), span: 1, style: roleFunction},
		{label: expr.Divide, action: calc.Operator(expr.Divide), span: 1, style: roleOperator},
	},
	{
		digitButton("7"), digitButton("8"), digitButton("9"),
		{label: expr.Times, action: calc.Operator(expr.Times), span: 1, style: roleOperator},
	},
	{
		digitButton("4"), digitButton("5"), digitButton("6"),
		{label: "−", action: calc.Operator(expr.Minus), span: 1, style: roleOperator},
	},
	{
		digitButton("1"), digitButton("2"), digitButton("3"),
		{label: expr.Plus, action: calc.Operator(expr.Plus), span: 1, style: roleOperator},
	},
	{
		{label: "0", action: calc.Number("0"), span: 2, style: roleDigit},
		{label: ".", action: calc.Simple(calc.ActionDecimal), span: 1, style: roleDigit},
		{label: "=", action: calc.Simple(calc.ActionCalculate), span: 1, style: roleEquals},
	},
}

func digitButton(digit string) button {
	return button{label: digit, action: calc.Number(digit), span: 1, style: roleDigit}
}

// buttonFor finds the keypad button that triggers action.
func buttonFor(action calc.Action) (button, bool) {
	for _, row := range keypadRows {
		for _, b := range row {
			if b.action == action {
				return b, true
			}
		}
	}
	return button{}, false
}

type calculationResultMsg struct {
	seq        uint64
	expression string
	outcome    calc.Outcome
}

type copyResultMsg struct {
	text string
	ok   bool
}

type pasteResultMsg struct {
	value string
	ok    bool
}

type flashDoneMsg struct {
	label string
	id    int
}
