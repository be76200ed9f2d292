package arithtree

import (
	"strconv"
	"strings"
	"unicode"
)

// TokenKind distinguishes numbers from operators.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNumber is an unsigned integer literal.
	TokenNumber
	// TokenOperator is an arithmetic operator or a parenthesis.
	TokenOperator
)

func (k TokenKind) String() string {
	switch k {
	case tokenNone:
		return "NONE"
	case TokenNumber:
		return "NUMBER"
	case TokenOperator:
		return "OPERATOR"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operator is the operation an operator token denotes.
type Operator int8

const (
	opNone Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	// OpLPar and OpRPar delimit groups. They never appear in a built tree.
	OpLPar
	OpRPar
)

// Operators contains the runes which are lexed as operators, in the order of
// their Operator values.
const Operators = "+-*/()"

func (o Operator) String() string {
	switch o {
	case opNone:
		return "NONE"
	case OpAdd:
		return "ADD"
	case OpSub:
		return "SUB"
	case OpMul:
		return "MUL"
	case OpDiv:
		return "DIV"
	case OpLPar:
		return "LPAR"
	case OpRPar:
		return "RPAR"
	default:
		return "Operator(" + strconv.Itoa(int(o)) + ")"
	}
}

// Symbol returns the source character for the operator, or the empty string
// for an invalid operator.
func (o Operator) Symbol() string {
	if o < OpAdd || o > OpRPar {
		return ""
	}
	return Operators[o-1 : o]
}

// multiplicative is whether the operator binds tighter than + and -.
func (o Operator) multiplicative() bool {
	return o == OpMul || o == OpDiv
}

// Token is a lexical unit of an expression: either a number or a single
// operator or parenthesis.
type Token struct {
	Kind TokenKind
	// Op is the operator for TokenOperator tokens.
	Op Operator
	// Value is the literal value for TokenNumber tokens.
	Value float64
	// Pos is the 0-based index of the token's first character in the source.
	Pos int
}

// Number creates a number token with no position.
func Number(v float64) Token {
	return Token{Kind: TokenNumber, Value: v}
}

// Op creates an operator token with no position.
func Op(o Operator) Token {
	return Token{Kind: TokenOperator, Op: o}
}

// is reports whether t is the operator o.
func (t Token) is(o Operator) bool {
	return t.Kind == TokenOperator && t.Op == o
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return "NUMBER " + strconv.FormatFloat(t.Value, 'g', -1, 64)
	case TokenOperator:
		return t.Op.String()
	default:
		return t.Kind.String()
	}
}

// Tokenize converts an expression into its tokens. Whitespace separates
// tokens and is otherwise ignored. Any character that is not whitespace, an
// ASCII digit, or one of Operators causes an *InvalidCharError and no tokens.
func Tokenize(expr string) ([]Token, error) {
	var toks []Token
	var digits strings.Builder
	pos := 0
	start := 0
	// flush ends a pending digit run.
	flush := func() {
		if digits.Len() == 0 {
			return
		}
		toks = append(toks, Token{Kind: TokenNumber, Value: parseDigits(digits.String()), Pos: start})
		digits.Reset()
	}
	for _, r := range expr {
		switch {
		case '0' <= r && r <= '9':
			if digits.Len() == 0 {
				start = pos
			}
			digits.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			k := strings.IndexRune(Operators, r)
			if k < 0 {
				return nil, &InvalidCharError{Pos: pos, Char: r}
			}
			toks = append(toks, Token{Kind: TokenOperator, Op: Operator(k + 1), Pos: pos})
		}
		pos++
	}
	flush()
	return toks, nil
}

// parseDigits computes the value of a run of decimal digits. The result is
// the correctly rounded value of the decimal number, or +Inf if it is too
// large to represent.
func parseDigits(s string) float64 {
	// ParseFloat only fails on digit runs by overflowing, in which case v is
	// already +Inf.
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// InvalidCharError indicates a character that cannot begin any token. It
// implements InputError.
type InvalidCharError struct {
	// Pos is the 0-based index of the character in the expression.
	Pos int
	// Char is the invalid character.
	Char rune
}

func (err *InvalidCharError) Error() string {
	return errpos(err.Pos, "invalid character "+strconv.QuoteRune(err.Char))
}

func (err *InvalidCharError) Position() int {
	return err.Pos
}
