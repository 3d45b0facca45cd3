package cost

import (
	"fmt"

	"github.com/sansecio/flopcount/expr"
)

// TrafficMode selects the memory traffic model.
type TrafficMode string

const (
	// Ideal models compulsory traffic under an infinite cache: each
	// distinct location is transferred at most once, and a location both
	// read and written counts once.
	Ideal TrafficMode = "ideal"
	// IdealWithStores is Ideal except a location both read and written is
	// counted twice (one load, one store).
	IdealWithStores TrafficMode = "ideal_with_stores"
	// Realistic assumes every dataset, even time-independent data, is
	// re-read on each outer iteration: no filter, no read/write merging.
	Realistic TrafficMode = "realistic"
)

// EstimateMemory estimates the number of memory reads and writes performed
// by eqs under the given traffic model. Each equation's right-hand side
// contributes reads, its left-hand side writes.
//
// A regular access is keyed by its base array alone, so any number of
// offsets into the same array count as one location (unlimited reuse). An
// irregular access like A[B[i]] is keyed by its full structure and always
// counts as compulsory traffic.
//
// An unrecognized mode is a contract violation and panics.
func EstimateMemory(eqs []expr.Assign, mode TrafficMode) int {
	switch mode {
	case Ideal, IdealWithStores, Realistic:
	default:
		panic(fmt.Sprintf("cost: invalid traffic mode %q", mode))
	}

	filtered := mode == Ideal || mode == IdealWithStores

	reads := make(map[string]struct{})
	writes := make(map[string]struct{})
	for _, eq := range eqs {
		collect(reads, expr.RetrieveIndexed(eq.RHS), filtered)
		collect(writes, expr.RetrieveIndexed(eq.LHS), filtered)
	}

	if mode == Ideal {
		for k := range writes {
			reads[k] = struct{}{}
		}
		return len(reads)
	}
	return len(reads) + len(writes)
}

// collect inserts the distinctness key of each access into set, dropping
// time-independent accesses when filtered is set.
func collect(set map[string]struct{}, accesses []expr.Node, filtered bool) {
	for _, n := range accesses {
		ix := n.(expr.Indexed)
		if filtered && !dependsOnTime(ix) {
			continue
		}
		set[accessKey(ix)] = struct{}{}
	}
}

// accessKey returns the distinctness key of an access: the base array for a
// regular access, the full canonical form for an irregular one.
func accessKey(ix expr.Indexed) string {
	if ix.Irregular() {
		return ix.String()
	}
	return ix.Base
}

// dependsOnTime reports whether any symbol in the access's indices is the
// time dimension.
func dependsOnTime(ix expr.Indexed) bool {
	for _, idx := range ix.Indices {
		if expr.Search(idx, expr.IsTimeDimension, expr.First, expr.BFS) != nil {
			return true
		}
	}
	return false
}
