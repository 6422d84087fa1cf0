package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendNumber(t *testing.T) {
	cases := []struct {
		name            string
		current         string
		digit           string
		resultDisplayed bool
		want            string
	}{
		{name: "replaces initial zero", current: "0", digit: "5", want: "5"},
		{name: "replaces error", current: "Error", digit: "5", want: "5"},
		{name: "replaces evaluator message", current: DivideByZeroMessage, digit: "7", want: "7"},
		{name: "percent becomes multiplication", current: "50%", digit: "2", want: "50% × 2"},
		{name: "appends to operand", current: "12", digit: "3", want: "123"},
		{name: "appends after operator", current: "12 + ", digit: "3", want: "12 + 3"},
		{name: "fresh after result", current: "42", digit: "1", resultDisplayed: true, want: "1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AppendNumber(tc.current, tc.digit, tc.resultDisplayed))
		})
	}
}

func TestAppendOperator(t *testing.T) {
	cases := []struct {
		name    string
		current string
		op      string
		want    string
	}{
		{name: "pads operator", current: "123", op: Plus, want: "123 + "},
		{name: "replaces committed operator", current: "123 + ", op: Minus, want: "123 - "},
		{name: "replaces operator missing trailing space", current: "123 +", op: Times, want: "123 × "},
		{name: "replaces operator without padding", current: "123+", op: Divide, want: "123 ÷ "},
		{name: "keeps percent operand", current: "50%", op: Plus, want: "50% + "},
		{name: "error unchanged", current: "Error", op: Plus, want: "Error"},
		{name: "message unchanged", current: DivideByZeroMessage, op: Plus, want: DivideByZeroMessage},
		{name: "starts from zero", current: "0", op: Times, want: "0 × "},
		{name: "negative result operand", current: "-4", op: Plus, want: "-4 + "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AppendOperator(tc.current, tc.op))
		})
	}
}

func TestBackspace(t *testing.T) {
	cases := []struct {
		name    string
		current string
		want    string
	}{
		{name: "drops last digit", current: "123", want: "12"},
		{name: "single digit collapses to zero", current: "1", want: "0"},
		{name: "error resets", current: "Error", want: "0"},
		{name: "message resets", current: DivideByZeroMessage, want: "0"},
		{name: "drops committed operator", current: "12 + ", want: "12"},
		{name: "drops operator without trailing space", current: "12 +", want: "12"},
		{name: "drops wide glyph operator", current: "12 × ", want: "12"},
		{name: "drops divide glyph", current: "7 ÷ ", want: "7"},
		{name: "drops percent", current: "50%", want: "50"},
		{name: "drops decimal point", current: "1.", want: "1"},
		{name: "drops second operand digit", current: "12 + 3", want: "12 + "},
		{name: "lone negative sign collapses", current: "-4", want: "0"},
		{name: "empty collapses", current: "", want: "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Backspace(tc.current))
		})
	}
}

func TestAppendPercent(t *testing.T) {
	assert.Equal(t, "123%", AppendPercent("123"))
	assert.Equal(t, "123%", AppendPercent("123%"))
	assert.Equal(t, "12 + ", AppendPercent("12 + "))
	assert.Equal(t, "Error", AppendPercent("Error"))
	assert.Equal(t, "12 + 5%", AppendPercent("12 + 5"))
}

func TestAppendDecimal(t *testing.T) {
	cases := []struct {
		name            string
		current         string
		resultDisplayed bool
		want            string
	}{
		{name: "simple number", current: "123", want: "123."},
		{name: "zero", current: "0", want: "0."},
		{name: "already decimal", current: "123.45", want: "123.45"},
		{name: "after result", current: "123", resultDisplayed: true, want: "0."},
		{name: "after error", current: "Error", want: "0."},
		{name: "after operator with space", current: "1 + ", want: "1 + 0."},
		{name: "after operator without space", current: "1 +", want: "1 + 0."},
		{name: "second operand", current: "1 + 2", want: "1 + 2."},
		{name: "second operand already decimal", current: "1 + 2.5", want: "1 + 2.5"},
		{name: "first operand decimal does not block second", current: "1.5 + 2", want: "1.5 + 2."},
		{name: "after percent", current: "50%", want: "50% × 0."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AppendDecimal(tc.current, tc.resultDisplayed))
		})
	}
}

func TestAppendDecimalIsIdempotent(t *testing.T) {
	once := AppendDecimal("123", false)
	assert.Equal(t, once, AppendDecimal(once, false))
}

func TestPredicates(t *testing.T) {
	for _, op := range []string{"+", "-", "×", "÷"} {
		assert.True(t, IsOperator(op), op)
	}
	for _, s := range []string{"1", "a", " ", "*", "/"} {
		assert.False(t, IsOperator(s), s)
	}

	for _, s := range []string{"2 + ", "2 - ", "2 × ", "2 ÷ ", "2+"} {
		assert.True(t, EndsWithOperator(s), s)
	}
	for _, s := range []string{"2 + 2", "123", "", "50%"} {
		assert.False(t, EndsWithOperator(s), s)
	}

	assert.True(t, EndsWithPercent("100 + 50%"))
	assert.False(t, EndsWithPercent("50% + 2"))

	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("  "))
	assert.False(t, IsEmpty("0"))

	assert.True(t, IsError("Error"))
	assert.False(t, IsError(""))
	assert.False(t, IsError(DivideByZeroMessage))
	assert.True(t, IsMessage(DivideByZeroMessage))
	assert.False(t, IsMessage("12 × 3%"))
}
