// Package parser provides a stencil kernel file parser using participle.
//
// A kernel file declares its iteration dimensions and then lists one
// assignment per line:
//
//	dim time t
//	dim x
//	u[t+1, x] = u[t, x] + u[t, x-1]
package parser

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/sansecio/flopcount/expr"
)

// Kernel is the parsed form of a kernel file: the declared dimensions in
// declaration order and the assignment equations in file order.
type Kernel struct {
	Dims      []expr.Symbol
	Equations []expr.Assign
}

// Nodes returns the equations as generic expression nodes, in file order.
func (k *Kernel) Nodes() []expr.Node {
	nodes := make([]expr.Node, len(k.Equations))
	for i, eq := range k.Equations {
		nodes[i] = eq
	}
	return nodes
}

// Parser parses kernel files.
type Parser struct {
	parser *participle.Parser[kernelGrammar]
}

// New creates a new kernel parser.
func New() (*Parser, error) {
	lex := lexer.MustStateful(lexer.Rules{
		"Root": {
			{Name: "Comment", Pattern: `#[^\n]*`},
			{Name: "Whitespace", Pattern: `[\s]+`},
			{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
			{Name: "Int", Pattern: `[0-9]+`},
			{Name: "Punct", Pattern: `[\[\](),=+\-*/^]`},
		},
	})

	p, err := participle.Build[kernelGrammar](
		participle.Lexer(lex),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(5),
	)
	if err != nil {
		return nil, fmt.Errorf("building parser: %w", err)
	}

	return &Parser{parser: p}, nil
}

// Parse parses a kernel from a string.
func (p *Parser) Parse(input string) (*Kernel, error) {
	g, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, err
	}
	return convertKernel(g)
}

// ParseFile parses a kernel from a file.
func (p *Parser) ParseFile(filename string) (*Kernel, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	g, err := p.parser.ParseBytes(filename, content)
	if err != nil {
		return nil, err
	}
	return convertKernel(g)
}

// converter resolves identifiers against the declared dimensions while
// building expression trees.
type converter struct {
	dims map[string]expr.Symbol
}

func convertKernel(g *kernelGrammar) (*Kernel, error) {
	c := &converter{dims: make(map[string]expr.Symbol)}
	k := &Kernel{}

	// Dimensions first, so equations can reference them regardless of
	// declaration position in the file.
	for _, s := range g.Stmts {
		if s.Dim == nil {
			continue
		}
		kind := expr.Dim
		if s.Dim.Time {
			kind = expr.TimeDim
		}
		if prev, ok := c.dims[s.Dim.Name]; ok && prev.Kind != kind {
			return nil, fmt.Errorf("dimension %q redeclared with a different role", s.Dim.Name)
		}
		sym := expr.Symbol{Name: s.Dim.Name, Kind: kind}
		c.dims[s.Dim.Name] = sym
		k.Dims = append(k.Dims, sym)
	}

	for _, s := range g.Stmts {
		if s.Eq == nil {
			continue
		}
		eq, err := c.convertEq(s.Eq)
		if err != nil {
			return nil, err
		}
		k.Equations = append(k.Equations, eq)
	}
	return k, nil
}

func (c *converter) convertEq(g *eqGrammar) (expr.Assign, error) {
	lhs, err := c.convertTarget(g.LHS)
	if err != nil {
		return expr.Assign{}, err
	}
	rhs, err := c.convertAdd(g.RHS)
	if err != nil {
		return expr.Assign{}, err
	}
	return expr.Assign{LHS: lhs, RHS: rhs}, nil
}

func (c *converter) convertTarget(g *targetGrammar) (expr.Node, error) {
	if len(g.Indices) == 0 {
		return c.symbol(g.Name), nil
	}
	indices, err := c.convertIndices(g.Indices)
	if err != nil {
		return nil, err
	}
	return expr.Indexed{Base: g.Name, Indices: indices}, nil
}

func (c *converter) convertAdd(g *addGrammar) (expr.Node, error) {
	left, err := c.convertMul(g.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range g.Right {
		right, err := c.convertMul(r.Term)
		if err != nil {
			return nil, err
		}
		kind := expr.Add
		if r.Op == "-" {
			kind = expr.Sub
		}
		left = fold(left, kind, right)
	}
	return left, nil
}

func (c *converter) convertMul(g *mulGrammar) (expr.Node, error) {
	left, err := c.convertUnary(g.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range g.Right {
		right, err := c.convertUnary(r.Term)
		if err != nil {
			return nil, err
		}
		kind := expr.Mul
		if r.Op == "/" {
			kind = expr.Div
		}
		left = fold(left, kind, right)
	}
	return left, nil
}

// fold builds the operator node for a left-associative chain, merging
// successive associative operators into one n-ary node so a + b + c parses
// as a single three-operand addition.
func fold(left expr.Node, kind expr.OpKind, right expr.Node) expr.Node {
	if op, ok := left.(expr.Op); ok && op.Kind == kind && (kind == expr.Add || kind == expr.Mul) {
		operands := make([]expr.Node, 0, len(op.Operands)+1)
		operands = append(operands, op.Operands...)
		operands = append(operands, right)
		return expr.Op{Kind: kind, Operands: operands}
	}
	return expr.Op{Kind: kind, Operands: []expr.Node{left, right}}
}

func (c *converter) convertUnary(g *unaryGrammar) (expr.Node, error) {
	if g.Neg != nil {
		inner, err := c.convertUnary(g.Neg)
		if err != nil {
			return nil, err
		}
		return expr.Op{Kind: expr.Neg, Operands: []expr.Node{inner}}, nil
	}
	return c.convertPow(g.Pow)
}

func (c *converter) convertPow(g *powGrammar) (expr.Node, error) {
	base, err := c.convertPrimary(g.Base)
	if err != nil {
		return nil, err
	}
	if g.Exp == nil {
		return base, nil
	}
	exp, err := c.convertUnary(g.Exp)
	if err != nil {
		return nil, err
	}
	return expr.Op{Kind: expr.Pow, Operands: []expr.Node{base, exp}}, nil
}

func (c *converter) convertPrimary(g *primaryGrammar) (expr.Node, error) {
	switch {
	case g.Call != nil:
		args := make([]expr.Node, len(g.Call.Args))
		for i, a := range g.Call.Args {
			arg, err := c.convertAdd(a)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return expr.Call{Name: g.Call.Name, Args: args}, nil

	case g.Indexed != nil:
		indices, err := c.convertIndices(g.Indexed.Indices)
		if err != nil {
			return nil, err
		}
		return expr.Indexed{Base: g.Indexed.Base, Indices: indices}, nil

	case g.Ident != nil:
		return c.symbol(*g.Ident), nil

	case g.Int != nil:
		return expr.IntLit{Value: *g.Int}, nil

	case g.Paren != nil:
		return c.convertAdd(g.Paren)
	}

	return nil, fmt.Errorf("unknown primary type")
}

func (c *converter) convertIndices(gs []*addGrammar) ([]expr.Node, error) {
	indices := make([]expr.Node, len(gs))
	for i, g := range gs {
		idx, err := c.convertAdd(g)
		if err != nil {
			return nil, err
		}
		indices[i] = idx
	}
	return indices, nil
}

// symbol resolves an identifier: declared dimensions keep their role,
// anything else is a plain scalar.
func (c *converter) symbol(name string) expr.Symbol {
	if sym, ok := c.dims[name]; ok {
		return sym
	}
	return expr.Symbol{Name: name, Kind: expr.Scalar}
}
