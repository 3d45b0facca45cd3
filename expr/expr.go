// Package expr defines the expression tree types for stencil kernels.
package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Node represents an expression tree node.
type Node interface {
	// String renders the canonical form of the node. Two nodes denote the
	// same sub-expression iff their canonical forms are equal; the
	// estimators use this as the structural identity key.
	String() string
	exprNode()
}

// SymbolKind classifies a terminal symbol.
type SymbolKind int

const (
	// Scalar is a plain named scalar (a coefficient, a constant field).
	Scalar SymbolKind = iota
	// Dim is an iteration dimension (a loop index).
	Dim
	// TimeDim is the designated time/stepping dimension.
	TimeDim
)

// Symbol represents a named terminal like x, t, or a coefficient c.
type Symbol struct {
	Name string
	Kind SymbolKind
}

func (s Symbol) String() string { return s.Name }
func (Symbol) exprNode()        {}

// IntLit represents an integer literal constant.
type IntLit struct {
	Value int64
}

func (i IntLit) String() string { return strconv.FormatInt(i.Value, 10) }
func (IntLit) exprNode()        {}

// Indexed represents an array access like u[t+1, x].
type Indexed struct {
	Base    string
	Indices []Node
}

func (ix Indexed) String() string {
	parts := make([]string, len(ix.Indices))
	for i, idx := range ix.Indices {
		parts[i] = idx.String()
	}
	return ix.Base + "[" + strings.Join(parts, ", ") + "]"
}

func (Indexed) exprNode() {}

// Irregular reports whether any index sub-expression itself contains an
// array access (a gather pattern like A[B[i]]).
func (ix Indexed) Irregular() bool {
	for _, idx := range ix.Indices {
		if Search(idx, IsIndexed, First, BFS) != nil {
			return true
		}
	}
	return false
}

// OpKind identifies an elementary operator.
type OpKind int

const (
	Add OpKind = iota
	Sub
	Mul
	Div
	Pow
	Neg
)

func (k OpKind) symbol() string {
	switch k {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Pow:
		return "^"
	case Neg:
		return "-"
	default:
		return "?"
	}
}

// Op represents an n-ary operator application, n >= 1.
type Op struct {
	Kind     OpKind
	Operands []Node
}

func (o Op) String() string {
	if o.Kind == Neg && len(o.Operands) == 1 {
		return "(-" + o.Operands[0].String() + ")"
	}
	parts := make([]string, len(o.Operands))
	for i, a := range o.Operands {
		parts[i] = a.String()
	}
	return "(" + strings.Join(parts, " "+o.Kind.symbol()+" ") + ")"
}

func (Op) exprNode() {}

// Call represents a named function application like sin(x).
type Call struct {
	Name string
	Args []Node
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (Call) exprNode() {}

// Assign represents an equation: LHS is the write target, RHS the value
// computed. It is itself a Node so equations can travel through the same
// handles and searches as plain expressions.
type Assign struct {
	LHS Node
	RHS Node
}

func (a Assign) String() string {
	return fmt.Sprintf("%s = %s", a.LHS, a.RHS)
}

func (Assign) exprNode() {}
