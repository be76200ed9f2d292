package arithtree

// Expressions have the shape
//
//	Expr    = Operand { Op Operand }
//	Operand = number | '(' Expr ')'
//	Op      = '+' | '-' | '*' | '/'
//
// but Build does not parse that grammar directly. It folds tokens left to
// right into a single growing tree, and precedence falls out of where each new
// piece is attached.

// Build creates the expression tree for a token sequence. If the tokens do not
// form an expression, the result is nil and an error that unwraps to
// ErrMalformed.
func Build(toks []Token) (*Node, error) {
	if err := validate(toks); err != nil {
		return nil, err
	}
	return build(toks), nil
}

// Parse tokenizes and builds an expression.
func Parse(src string) (*Node, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Build(toks)
}

// validate checks that toks alternate between operands and binary operators,
// beginning and ending with an operand, with balanced parentheses.
func validate(toks []Token) error {
	if len(toks) == 0 {
		return &EmptyExpressionError{}
	}
	// open holds the positions of unclosed parentheses.
	var open []int
	// operand is whether the next token must begin an operand.
	operand := true
	for i, tok := range toks {
		switch {
		case tok.Kind == TokenNumber:
			if !operand {
				return &OperandError{Pos: tok.Pos}
			}
			operand = false
		case tok.Kind != TokenOperator:
			return &TokenError{Pos: tok.Pos, Token: tok}
		case tok.Op == OpLPar:
			if !operand {
				return &OperandError{Pos: tok.Pos}
			}
			open = append(open, tok.Pos)
		case tok.Op == OpRPar:
			if len(open) == 0 {
				return &BracketError{Pos: tok.Pos, Paren: OpRPar}
			}
			if operand {
				prev := toks[i-1]
				if prev.is(OpLPar) {
					return &EmptyExpressionError{Pos: tok.Pos, Group: true}
				}
				return &OperatorError{Pos: prev.Pos, Op: prev.Op, Trailing: true}
			}
			open = open[:len(open)-1]
		case tok.Op >= OpAdd && tok.Op <= OpDiv:
			if operand {
				return &OperatorError{Pos: tok.Pos, Op: tok.Op}
			}
			operand = true
		default:
			return &TokenError{Pos: tok.Pos, Token: tok}
		}
	}
	if operand {
		// An open parenthesis at the end is reported as unclosed below.
		if last := toks[len(toks)-1]; !last.is(OpLPar) {
			return &OperatorError{Pos: last.Pos, Op: last.Op, Trailing: true}
		}
	}
	if len(open) != 0 {
		return &BracketError{Pos: open[len(open)-1], Paren: OpLPar}
	}
	return nil
}

// builder holds the state of one fold over a range of a token sequence.
type builder struct {
	toks []Token
	// match holds the index of the close parenthesis for each open
	// parenthesis in toks, or len(toks) if it has none.
	match []int
	// i is the cursor. Each step leaves it on the last token it consumed.
	i int
	// end bounds the range being folded.
	end int
	// root is the tree built so far.
	root *Node
}

// build folds a token sequence into a tree. The result is nil for an empty
// sequence. Tokens that do not form an expression give an unspecified tree.
func build(toks []Token) *Node {
	return buildRange(toks, matchParens(toks), 0, len(toks))
}

// buildRange folds toks[start:end]. Groups are folded over their own ranges of
// the same slice, so each token is visited a constant number of times.
func buildRange(toks []Token, match []int, start, end int) *Node {
	b := builder{toks: toks, match: match, i: start, end: end}
	for ; b.i < b.end; b.i++ {
		b.step()
	}
	return b.root
}

func (b *builder) step() {
	tok := b.toks[b.i]
	if tok.Kind == TokenOperator && tok.Op != OpLPar {
		// The operand before this operator is complete, and every
		// multiplicative operator has already been folded into an operand, so
		// everything so far is the left side. This makes + and - left
		// associative.
		b.root = &Node{tok: tok, left: b.root}
		return
	}
	if b.multiplicativeNext() {
		b.insert(b.multiplicativeRun())
		return
	}
	b.insert(b.operand())
}

// multiplicativeNext reports whether the operand at the cursor is followed by
// * or /.
func (b *builder) multiplicativeNext() bool {
	end := b.i
	if b.toks[end].is(OpLPar) {
		end = b.closing(end)
	}
	return b.multiplicativeAt(end + 1)
}

func (b *builder) multiplicativeAt(i int) bool {
	return i < b.end && b.toks[i].Kind == TokenOperator && b.toks[i].Op.multiplicative()
}

// multiplicativeRun builds a chain of operands joined by * and / as a single
// left-associative subtree.
func (b *builder) multiplicativeRun() *Node {
	n := b.operand()
	for b.multiplicativeAt(b.i+1) && b.i+2 < b.end {
		b.i++
		op := b.toks[b.i]
		b.i++
		n = &Node{tok: op, left: n, right: b.operand()}
	}
	return n
}

// operand builds the number or parenthesized group at the cursor.
func (b *builder) operand() *Node {
	tok := b.toks[b.i]
	if !tok.is(OpLPar) {
		return leaf(tok)
	}
	end := b.closing(b.i)
	n := buildRange(b.toks, b.match, b.i+1, end)
	b.i = end
	return n
}

// closing returns the index of the close parenthesis matching the open
// parenthesis at toks[i], or the end of the range if it has none.
func (b *builder) closing(i int) int {
	return min(b.match[i], b.end)
}

// insert attaches a completed operand to the tree.
func (b *builder) insert(n *Node) {
	switch {
	case n == nil:
		// Only an empty group builds to nil.
	case b.root == nil:
		b.root = n
	case b.root.left == nil:
		b.root.left = n
	case b.root.right == nil:
		b.root.right = n
	default:
		n.right = b.root
		b.root = n
	}
}

// matchParens pairs parentheses in one pass. For each open parenthesis at
// toks[i], the result holds the index of its close parenthesis, or len(toks)
// if it is never closed. Entries for other tokens are meaningless.
func matchParens(toks []Token) []int {
	match := make([]int, len(toks))
	var open []int
	for i, tok := range toks {
		switch {
		case tok.is(OpLPar):
			open = append(open, i)
		case tok.is(OpRPar) && len(open) != 0:
			match[open[len(open)-1]] = i
			open = open[:len(open)-1]
		}
	}
	for _, i := range open {
		match[i] = len(toks)
	}
	return match
}
