package arithtree

import (
	"strconv"
	"strings"
)

// Node is a node in an expression tree. A node holding a number is a leaf; a
// node holding an operator has a left and a right operand, each owned by it
// alone.
//
// Nodes are never modified after Build returns, so a tree may be evaluated any
// number of times and from any number of goroutines.
type Node struct {
	tok Token

	left  *Node
	right *Node
}

func leaf(tok Token) *Node {
	return &Node{tok: tok}
}

// Token returns the token the node holds.
func (n *Node) Token() Token {
	return n.tok
}

// Left returns the left operand of an operator node, or nil for a leaf.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the right operand of an operator node, or nil for a leaf.
func (n *Node) Right() *Node {
	return n.right
}

// IsLeaf reports whether the node holds a number.
func (n *Node) IsLeaf() bool {
	return n.tok.Kind == TokenNumber
}

// LeftDepth returns the number of operator nodes on the path from n following
// left operands down to a leaf. For a chain of n additive operators with no
// parentheses or multiplication, the depth is n.
func (n *Node) LeftDepth() int {
	d := 0
	for ; n != nil && !n.IsLeaf(); n = n.left {
		d++
	}
	return d
}

// String creates a string representation of the tree, with alternating round
// and square brackets grouping each term.
func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *Node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	if n.IsLeaf() {
		b.WriteString(strconv.FormatFloat(n.tok.Value, 'g', -1, 64))
		return
	}
	// Incomplete nodes use invalid characters.
	if n.left != nil {
		n.left.fmt(b, !square)
	} else {
		b.WriteByte('$')
	}
	b.WriteByte(' ')
	if s := n.tok.Op.Symbol(); s != "" {
		b.WriteString(s)
	} else {
		b.WriteByte('#')
	}
	b.WriteByte(' ')
	if n.right != nil {
		n.right.fmt(b, !square)
	} else {
		b.WriteByte('$')
	}
}
