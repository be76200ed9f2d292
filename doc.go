// Package arithtree evaluates arithmetic expressions by way of binary
// expression trees.
//
// Expressions contain unsigned integer literals, the operators + - * /, and
// parentheses. "*" and "/" bind tighter than "+" and "-", and operators of the
// same precedence associate left, so "5+6+2/2*5-1" is "((5+6)+((2/2)*5))-1".
// There are no unary operators: "-1" is not an expression.
//
// Evaluation goes in three steps, each of which is available on its own:
// Tokenize turns text into tokens, Build turns tokens into a tree, and
// Node.Eval computes the result. Parse and Eval combine the steps.
//
// Errors from invalid input implement InputError, which gives the position of
// the offending character. Division by zero produces an infinity or NaN unless
// the evaluation context is Strict.
package arithtree
