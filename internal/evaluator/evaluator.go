package evaluator

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/csheth/calc/internal/expr"
)

var (
	// ErrDivideByZero is returned when any divisor evaluates to zero.
	ErrDivideByZero = errors.New("cannot divide by zero")
	// ErrMalformed is returned for input that is not a complete expression.
	ErrMalformed = errors.New("malformed expression")
)

const defaultPrecision = 12

var hundred = big.NewRat(100, 1)

// Evaluator computes display-string expressions exactly using rational
// arithmetic and renders the result the way the display expects.
type Evaluator struct {
	// Precision is the number of decimal places kept for non-integer results.
	Precision int
}

func New() *Evaluator {
	return &Evaluator{Precision: defaultPrecision}
}

func (e *Evaluator) Name() string {
	return "in-process"
}

// Evaluate parses and computes expression. Multiplication and division bind
// tighter than addition and subtraction; a postfix % divides its operand by
// one hundred.
func (e *Evaluator) Evaluate(ctx context.Context, expression string) (string, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
	value, err := Compute(expression)
	if err != nil {
		return "", err
	}
	precision := e.Precision
	if precision <= 0 {
		precision = defaultPrecision
	}
	return Format(value, precision), nil
}

// Compute returns the exact value of expression.
func Compute(expression string) (*big.Rat, error) {
	tokens := expr.Tokenize(normalize(expression))
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	p := &parser{tokens: tokens}
	value, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("%w: unexpected %q", ErrMalformed, p.tokens[p.pos].Text)
	}
	return value, nil
}

// Format renders integers exactly and rounds everything else to precision
// decimal places with trailing zeros removed.
func Format(value *big.Rat, precision int) string {
	if value.IsInt() {
		return value.Num().String()
	}
	text := value.FloatString(precision)
	if strings.Contains(text, ".") {
		text = strings.TrimRight(text, "0")
		text = strings.TrimSuffix(text, ".")
	}
	if text == "-0" {
		text = "0"
	}
	return text
}

// normalize accepts ASCII operators as aliases for the display glyphs.
func normalize(expression string) string {
	replacer := strings.NewReplacer("*", expr.Times, "/", expr.Divide)
	return replacer.Replace(expression)
}

type parser struct {
	tokens []expr.Token
	pos    int
}

func (p *parser) peekOperator(ops ...string) (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	token := p.tokens[p.pos]
	if token.Kind != expr.TokenOperator {
		return "", false
	}
	for _, op := range ops {
		if token.Text == op {
			return op, true
		}
	}
	return "", false
}

func (p *parser) parseSum() (*big.Rat, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOperator(expr.Plus, expr.Minus)
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		if op == expr.Plus {
			left = new(big.Rat).Add(left, right)
		} else {
			left = new(big.Rat).Sub(left, right)
		}
	}
}

func (p *parser) parseProduct() (*big.Rat, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOperator(expr.Times, expr.Divide)
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		if op == expr.Times {
			left = new(big.Rat).Mul(left, right)
			continue
		}
		if right.Sign() == 0 {
			return nil, ErrDivideByZero
		}
		left = new(big.Rat).Quo(left, right)
	}
}

func (p *parser) parseOperand() (*big.Rat, error) {
	if p.pos >= len(p.tokens) {
		return nil, fmt.Errorf("%w: missing operand", ErrMalformed)
	}
	token := p.tokens[p.pos]
	if token.Kind != expr.TokenNumber {
		return nil, fmt.Errorf("%w: unexpected %q", ErrMalformed, token.Text)
	}
	p.pos++
	value, err := parseNumber(token.Text)
	if err != nil {
		return nil, err
	}
	for p.pos < len(p.tokens) && p.tokens[p.pos].Kind == expr.TokenPercent {
		value = new(big.Rat).Quo(value, hundred)
		p.pos++
	}
	return value, nil
}

func parseNumber(text string) (*big.Rat, error) {
	digits := strings.TrimPrefix(text, "-")
	if strings.Count(digits, ".") > 1 {
		return nil, fmt.Errorf("%w: invalid number %q", ErrMalformed, text)
	}
	if strings.HasPrefix(digits, ".") {
		digits = "0" + digits
	}
	if strings.HasSuffix(digits, ".") {
		digits += "0"
	}
	value, ok := new(big.Rat).SetString(digits)
	if !ok {
		return nil, fmt.Errorf("%w: invalid number %q", ErrMalformed, text)
	}
	if strings.HasPrefix(text, "-") {
		value.Neg(value)
	}
	return value, nil
}
