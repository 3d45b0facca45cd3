package parser

import (
	"testing"

	"github.com/sansecio/flopcount/expr"
)

func mustParse(t *testing.T, input string) *Kernel {
	t.Helper()
	p, err := New()
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}
	k, err := p.Parse(input)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	return k
}

func TestParseStencil(t *testing.T) {
	k := mustParse(t, `
# 1D first-order update
dim time t
dim x
u[t+1, x] = u[t, x] + u[t, x-1]
`)
	if len(k.Dims) != 2 {
		t.Fatalf("expected 2 dims, got %d", len(k.Dims))
	}
	if k.Dims[0].Name != "t" || k.Dims[0].Kind != expr.TimeDim {
		t.Errorf("expected time dim t, got %+v", k.Dims[0])
	}
	if k.Dims[1].Name != "x" || k.Dims[1].Kind != expr.Dim {
		t.Errorf("expected plain dim x, got %+v", k.Dims[1])
	}
	if len(k.Equations) != 1 {
		t.Fatalf("expected 1 equation, got %d", len(k.Equations))
	}
	want := "u[(t + 1), x] = (u[t, x] + u[t, (x - 1)])"
	if got := k.Equations[0].String(); got != want {
		t.Errorf("equation = %q, want %q", got, want)
	}
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"precedence", "r = a + b * c", "r = (a + (b * c))"},
		{"nary_fold", "r = a + b + c", "r = (a + b + c)"},
		{"mixed_chain", "r = a + b - c", "r = ((a + b) - c)"},
		{"parens", "r = (a + b) * c", "r = ((a + b) * c)"},
		{"unary_minus", "r = -a * b", "r = ((-a) * b)"},
		{"pow_right_assoc", "r = a ^ b ^ c", "r = (a ^ (b ^ c))"},
		{"pow_binds_tightest", "r = -a ^ 2", "r = (-(a ^ 2))"},
		{"call", "r = sin(x) * cos(x)", "r = (sin(x) * cos(x))"},
		{"call_multi_arg", "r = f(a, b + 1)", "r = f(a, (b + 1))"},
		{"nested_index", "r = A[B[i]]", "r = A[B[i]]"},
		{"index_offset", "r = u[i + 1]", "r = u[(i + 1)]"},
		{"indexed_target", "u[i] = c", "u[i] = c"},
		{"division", "r = a / b / c", "r = ((a / b) / c)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := mustParse(t, tt.src)
			if len(k.Equations) != 1 {
				t.Fatalf("expected 1 equation, got %d", len(k.Equations))
			}
			if got := k.Equations[0].String(); got != tt.want {
				t.Errorf("parsed %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDimResolution(t *testing.T) {
	k := mustParse(t, `
dim time t
u[t] = t + c
`)
	rhs := k.Equations[0].RHS
	syms := expr.Search(rhs, expr.IsTimeDimension, expr.All, expr.BFS)
	if len(syms) != 1 {
		t.Fatalf("expected 1 time symbol in rhs, got %d", len(syms))
	}
	// c was never declared, so it is a plain scalar
	op := rhs.(expr.Op)
	c := op.Operands[1].(expr.Symbol)
	if c.Kind != expr.Scalar {
		t.Errorf("expected c to be a scalar, got kind %v", c.Kind)
	}
}

func TestDimDeclaredAfterUse(t *testing.T) {
	// Declaration order in the file does not matter.
	k := mustParse(t, `
u[t, x] = u[t, x] + 1
dim time t
dim x
`)
	writes := expr.RetrieveIndexed(k.Equations[0].LHS)
	if len(writes) != 1 {
		t.Fatalf("expected 1 write access, got %d", len(writes))
	}
	ix := writes[0].(expr.Indexed)
	if !expr.IsTimeDimension(ix.Indices[0]) {
		t.Errorf("expected t in %s to be the time dimension", ix)
	}
}

func TestMultipleEquationsKeepOrder(t *testing.T) {
	k := mustParse(t, `
dim x
a[x] = 1
b[x] = 2
c[x] = 3
`)
	if len(k.Equations) != 3 {
		t.Fatalf("expected 3 equations, got %d", len(k.Equations))
	}
	for i, base := range []string{"a", "b", "c"} {
		lhs := k.Equations[i].LHS.(expr.Indexed)
		if lhs.Base != base {
			t.Errorf("equation %d writes %q, want %q", i, lhs.Base, base)
		}
	}
}

func TestNodesPreservesEquations(t *testing.T) {
	k := mustParse(t, "dim x\na[x] = 1\nb[x] = 2\n")
	nodes := k.Nodes()
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if _, ok := nodes[0].(expr.Assign); !ok {
		t.Errorf("expected Assign, got %T", nodes[0])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"garbage", "@@@"},
		{"missing_rhs", "u[x] ="},
		{"unbalanced_bracket", "r = u[x"},
		{"dim_role_conflict", "dim t\ndim time t\nu[t] = 1"},
	}
	p, err := New()
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.Parse(tt.src); err == nil {
				t.Errorf("Parse(%q) did not fail", tt.src)
			}
		})
	}
}
