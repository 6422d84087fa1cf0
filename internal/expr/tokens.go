package expr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind classifies a lexical unit of a display string.
type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenOperator
	TokenPercent
	TokenText
)

func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "number"
	case TokenOperator:
		return "operator"
	case TokenPercent:
		return "percent"
	default:
		return "text"
	}
}

// Token is one lexical unit. Pos is the byte offset of Text within the
// tokenized string.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

// Tokenize splits a display string into numbers, operators, percent signs
// and free text. Whitespace only separates tokens. A minus sign directly
// followed by a digit or decimal point is read as part of the number when it
// opens the expression or follows another operator.
func Tokenize(s string) []Token {
	var tokens []Token
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case isNumberRune(r) || (r == '-' && unaryPosition(tokens) && startsNumber(s[i+size:])):
			start := i
			i += size
			for i < len(s) {
				next, n := utf8.DecodeRuneInString(s[i:])
				if !isNumberRune(next) {
					break
				}
				i += n
			}
			tokens = append(tokens, Token{Kind: TokenNumber, Text: s[start:i], Pos: start})
		case r == '%':
			tokens = append(tokens, Token{Kind: TokenPercent, Text: "%", Pos: i})
			i += size
		case isOperatorRune(r):
			tokens = append(tokens, Token{Kind: TokenOperator, Text: string(r), Pos: i})
			i += size
		default:
			start := i
			i += size
			for i < len(s) {
				next, n := utf8.DecodeRuneInString(s[i:])
				if unicode.IsSpace(next) || isNumberRune(next) || isOperatorRune(next) || next == '%' {
					break
				}
				i += n
			}
			tokens = append(tokens, Token{Kind: TokenText, Text: s[start:i], Pos: start})
		}
	}
	return tokens
}

// LastOperand returns the trailing number of s, or "" when s does not end in
// a number.
func LastOperand(s string) string {
	tokens := Tokenize(s)
	if len(tokens) == 0 {
		return ""
	}
	last := tokens[len(tokens)-1]
	if last.Kind != TokenNumber {
		return ""
	}
	return last.Text
}

func isNumberRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}

func isOperatorRune(r rune) bool {
	return strings.ContainsRune(operatorGlyphs, r)
}

func unaryPosition(tokens []Token) bool {
	return len(tokens) == 0 || tokens[len(tokens)-1].Kind == TokenOperator
}

func startsNumber(rest string) bool {
	r, _ := utf8.DecodeRuneInString(rest)
	return isNumberRune(r)
}
