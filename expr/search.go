package expr

// Predicate tests a single node during a search.
type Predicate func(Node) bool

// IsOp reports whether the node is an operator application.
func IsOp(n Node) bool {
	_, ok := n.(Op)
	return ok
}

// IsCall reports whether the node is a function call.
func IsCall(n Node) bool {
	_, ok := n.(Call)
	return ok
}

// IsOperation reports whether the node is an operator or a function call,
// i.e. anything that performs work (terminals and accesses excluded).
func IsOperation(n Node) bool {
	return IsOp(n) || IsCall(n)
}

// IsIndexed reports whether the node is an array access.
func IsIndexed(n Node) bool {
	_, ok := n.(Indexed)
	return ok
}

// IsIntLit reports whether the node is an integer literal.
func IsIntLit(n Node) bool {
	_, ok := n.(IntLit)
	return ok
}

// IsTimeDimension reports whether the node is the designated time dimension.
func IsTimeDimension(n Node) bool {
	s, ok := n.(Symbol)
	return ok && s.Kind == TimeDim
}

// Mode selects how many matches a search returns.
type Mode int

const (
	// All collects every matching node, repeated occurrences included.
	All Mode = iota
	// First stops at the first match in traversal order.
	First
)

// Order selects the traversal order of a search.
type Order int

const (
	// BFS visits nodes breadth-first. This is the order the estimators
	// rely on for reproducible results.
	BFS Order = iota
	// DFS visits nodes depth-first, children in declaration order.
	DFS
)

// children returns the direct sub-expressions of a node. Terminals have
// none.
func children(n Node) []Node {
	switch e := n.(type) {
	case Indexed:
		return e.Indices
	case Op:
		return e.Operands
	case Call:
		return e.Args
	case Assign:
		return []Node{e.LHS, e.RHS}
	default:
		return nil
	}
}

// Search traverses root and returns the nodes satisfying pred, in traversal
// order. The root itself is a candidate. Search never mutates the tree.
func Search(root Node, pred Predicate, mode Mode, order Order) []Node {
	if root == nil {
		return nil
	}
	var found []Node
	worklist := []Node{root}
	for len(worklist) > 0 {
		var n Node
		if order == BFS {
			n = worklist[0]
			worklist = worklist[1:]
		} else {
			n = worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]
		}
		if pred(n) {
			found = append(found, n)
			if mode == First {
				return found
			}
		}
		kids := children(n)
		if order == BFS {
			worklist = append(worklist, kids...)
		} else {
			// push reversed so the leftmost child pops first
			for i := len(kids) - 1; i >= 0; i-- {
				worklist = append(worklist, kids[i])
			}
		}
	}
	return found
}

// RetrieveOps returns every operator and function-call node in root,
// breadth-first. Terminals and array accesses are excluded.
func RetrieveOps(root Node) []Node {
	return Search(root, IsOperation, All, BFS)
}

// RetrieveIndexed returns every array access node in root, breadth-first.
func RetrieveIndexed(root Node) []Node {
	return Search(root, IsIndexed, All, BFS)
}

// Occurrence is one entry of a Count result: a representative node and the
// number of structurally identical occurrences found.
type Occurrence struct {
	Node Node
	N    int
}

// Count returns a multiset of the sub-expressions in exprs satisfying pred,
// keyed by canonical form and summed across all supplied trees. Repeated
// occurrences within one tree each count.
func Count(exprs []Node, pred Predicate) map[string]Occurrence {
	counts := make(map[string]Occurrence)
	for _, e := range exprs {
		for _, match := range Search(e, pred, All, BFS) {
			key := match.String()
			occ := counts[key]
			occ.Node = match
			occ.N++
			counts[key] = occ
		}
	}
	return counts
}
