package expr

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	Zero                = "0"
	ErrorSentinel       = "Error"
	DivideByZeroMessage = "Cannot divide by zero"
)

const (
	Plus   = "+"
	Minus  = "-"
	Times  = "×"
	Divide = "÷"
)

const operatorGlyphs = Plus + Minus + Times + Divide

var (
	operatorSpaceSuffix = regexp.MustCompile(`[+\-×÷]\s$`)
	operatorSuffix      = regexp.MustCompile(`[+\-×÷]$`)
)

// AppendNumber appends a digit to the display, starting a fresh expression
// after a result or an error. A percent value becomes the left operand of an
// implicit multiplication.
func AppendNumber(current, digit string, resultDisplayed bool) string {
	if resultDisplayed {
		return digit
	}
	if current == Zero || IsMessage(current) {
		return digit
	}
	if EndsWithPercent(current) {
		return current + " " + Times + " " + digit
	}
	return current + digit
}

// AppendOperator appends op padded with single spaces. A trailing operator,
// with or without its trailing space, is replaced instead. A trailing percent
// is a value and is kept.
func AppendOperator(current, op string) string {
	if IsMessage(current) {
		return current
	}
	trimmed := strings.TrimRightFunc(current, unicode.IsSpace)
	if EndsWithPercent(trimmed) {
		return trimmed + " " + op + " "
	}
	if EndsWithOperator(current) {
		base := strings.TrimRightFunc(dropLastRune(trimmed), unicode.IsSpace)
		if base == "" {
			base = Zero
		}
		return base + " " + op + " "
	}
	if trimmed == "" {
		trimmed = Zero
	}
	return trimmed + " " + op + " "
}

// Backspace removes the last operator token with its padding, or the last
// rune of an operand. The display never collapses below "0", and a bare sign
// left over from a negative operand ("-4" to "-") collapses to "0" too.
func Backspace(current string) string {
	if IsMessage(current) {
		return Zero
	}
	tokens := Tokenize(current)
	if len(tokens) == 0 {
		return Zero
	}
	last := tokens[len(tokens)-1]
	if last.Kind == TokenOperator {
		base := strings.TrimRightFunc(current[:last.Pos], unicode.IsSpace)
		if base == "" {
			return Zero
		}
		return base
	}
	trimmed := strings.TrimRightFunc(current, unicode.IsSpace)
	if trimmed != current {
		return trimmed
	}
	if utf8.RuneCountInString(current) <= 1 {
		return Zero
	}
	rest := dropLastRune(current)
	if rest == Minus {
		return Zero
	}
	return rest
}

// AppendPercent marks the trailing operand as a percentage. It is a no-op on
// errors, after an operator and when the operand already carries a percent.
func AppendPercent(current string) string {
	if IsMessage(current) || EndsWithOperator(current) || EndsWithPercent(current) {
		return current
	}
	return current + "%"
}

// AppendDecimal adds a decimal point to the trailing operand. After an
// operator it anchors a new operand at "0."; a second point in the same
// operand is ignored. A percent is a finished operand, so "50%" becomes
// "50% × 0." rather than "50%.", matching AppendNumber.
func AppendDecimal(current string, resultDisplayed bool) string {
	if resultDisplayed || IsMessage(current) {
		return Zero + "."
	}
	if EndsWithOperator(current) {
		if strings.HasSuffix(current, " ") {
			return current + Zero + "."
		}
		return current + " " + Zero + "."
	}
	if EndsWithPercent(current) {
		return current + " " + Times + " " + Zero + "."
	}
	if strings.Contains(LastOperand(current), ".") {
		return current
	}
	return current + "."
}

// IsOperator reports whether s is one of the operator glyphs + - × ÷.
func IsOperator(s string) bool {
	switch s {
	case Plus, Minus, Times, Divide:
		return true
	default:
		return false
	}
}

// EndsWithOperator reports whether expr ends in an operator, either committed
// with its trailing space or still missing it.
func EndsWithOperator(expr string) bool {
	return operatorSpaceSuffix.MatchString(expr) || operatorSuffix.MatchString(strings.TrimSpace(expr))
}

func EndsWithPercent(expr string) bool {
	return strings.HasSuffix(expr, "%")
}

func IsEmpty(expr string) bool {
	return strings.TrimSpace(expr) == ""
}

// IsError reports whether expr is exactly the generic error sentinel.
func IsError(expr string) bool {
	return expr == ErrorSentinel
}

// IsMessage reports whether expr is an error sentinel or a message returned
// by the evaluator rather than an editable expression.
func IsMessage(expr string) bool {
	if IsError(expr) {
		return true
	}
	for _, token := range Tokenize(expr) {
		if token.Kind == TokenText {
			return true
		}
	}
	return false
}

func dropLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
