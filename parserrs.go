package arithtree

import (
	"errors"
	"strconv"
)

// ErrMalformed is the error that every malformed-expression error unwraps to.
// Tokens that are individually valid but do not form an expression produce an
// error for which errors.Is(err, ErrMalformed) holds.
var ErrMalformed = errors.New("malformed expression")

// OperatorError indicates a binary operator missing one of its operands. It
// implements InputError.
type OperatorError struct {
	// Pos is the position of the operator.
	Pos int
	// Op is the operator.
	Op Operator
	// Trailing is true when the missing operand is the right one, e.g. in
	// "1+" or "(1*)". Otherwise the left operand is missing, as in "+1",
	// "1*/2", or "(-1)".
	Trailing bool
}

func (err *OperatorError) Error() string {
	s := "left"
	if err.Trailing {
		s = "right"
	}
	return errpos(err.Pos, "operator "+strconv.Quote(err.Op.Symbol())+" has no "+s+" operand")
}

func (err *OperatorError) Position() int { return err.Pos }
func (err *OperatorError) Unwrap() error { return ErrMalformed }

// OperandError indicates two operands with no operator between them, as in
// "2 3" or "2(3)". It implements InputError.
type OperandError struct {
	// Pos is the position of the second operand.
	Pos int
}

func (err *OperandError) Error() string {
	return errpos(err.Pos, "missing operator before operand")
}

func (err *OperandError) Position() int { return err.Pos }
func (err *OperandError) Unwrap() error { return ErrMalformed }

// BracketError indicates an unbalanced parenthesis. It implements InputError.
type BracketError struct {
	// Pos is the position of the unmatched parenthesis.
	Pos int
	// Paren is OpLPar for an open parenthesis that is never closed, or OpRPar
	// for a close parenthesis with no open parenthesis.
	Paren Operator
}

func (err *BracketError) Error() string {
	if err.Paren == OpLPar {
		return errpos(err.Pos, "open parenthesis with no close parenthesis")
	}
	return errpos(err.Pos, "close parenthesis with no open parenthesis")
}

func (err *BracketError) Position() int { return err.Pos }
func (err *BracketError) Unwrap() error { return ErrMalformed }

// EmptyExpressionError indicates an expression or parenthesized group with
// no tokens. It implements InputError.
type EmptyExpressionError struct {
	// Pos is the position of the close parenthesis ending an empty group, or
	// 0 for an empty expression.
	Pos int
	// Group is whether the empty expression is a parenthesized group.
	Group bool
}

func (err *EmptyExpressionError) Error() string {
	if !err.Group {
		return errpos(err.Pos, "no expression")
	}
	return errpos(err.Pos, "no expression in parentheses")
}

func (err *EmptyExpressionError) Position() int { return err.Pos }
func (err *EmptyExpressionError) Unwrap() error { return ErrMalformed }

// TokenError indicates a token that Tokenize never produces, such as the zero
// Token or an operator outside the known set. It implements InputError.
type TokenError struct {
	// Pos is the position of the token.
	Pos int
	// Token is the invalid token.
	Token Token
}

func (err *TokenError) Error() string {
	return errpos(err.Pos, "invalid token "+err.Token.String())
}

func (err *TokenError) Position() int { return err.Pos }
func (err *TokenError) Unwrap() error { return ErrMalformed }

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Position returns the 0-based index in the source of the character that
	// caused the error.
	Position() int
}

var (
	_ InputError = (*InvalidCharError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*DivisionError)(nil)
)
