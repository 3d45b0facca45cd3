// Package cost estimates the arithmetic operation count and the memory
// read/write traffic of stencil kernels without executing them. Both
// estimators are pure functions over immutable expression trees and are safe
// for concurrent use.
package cost

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sansecio/flopcount/expr"
)

// ErrUnavailable is returned when no cost estimate could be produced. The
// estimator is a diagnostic aid: a missing estimate is reported, never
// raised as a panic, so it cannot abort the surrounding pipeline.
var ErrUnavailable = errors.New("cost estimate unavailable")

// DefaultWeights returns the built-in operation weights for known
// transcendental functions.
func DefaultWeights() map[string]int {
	return map[string]int{
		"sin": 50,
		"cos": 50,
	}
}

// Handle is the normalized input to EstimateCost: a single expression, a
// batch of expressions or equations, or one or more named groups of them.
type Handle interface {
	flatten() ([]expr.Node, error)
}

type one struct {
	node expr.Node
}

func (h one) flatten() ([]expr.Node, error) {
	if h.node == nil {
		return nil, errors.New("nil expression")
	}
	return []expr.Node{h.node}, nil
}

type batch []expr.Node

func (h batch) flatten() ([]expr.Node, error) {
	if len(h) == 0 {
		return nil, errors.New("empty batch")
	}
	for i, n := range h {
		if n == nil {
			return nil, fmt.Errorf("nil expression at index %d", i)
		}
	}
	return h, nil
}

type group map[string]expr.Node

func (h group) flatten() ([]expr.Node, error) {
	if len(h) == 0 {
		return nil, errors.New("empty group")
	}
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	nodes := make([]expr.Node, 0, len(h))
	for _, name := range names {
		if h[name] == nil {
			return nil, fmt.Errorf("nil expression for %q", name)
		}
		nodes = append(nodes, h[name])
	}
	return nodes, nil
}

type groups []map[string]expr.Node

func (h groups) flatten() ([]expr.Node, error) {
	if len(h) == 0 {
		return nil, errors.New("empty group sequence")
	}
	var nodes []expr.Node
	for _, g := range h {
		flat, err := group(g).flatten()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, flat...)
	}
	return nodes, nil
}

// On wraps a single expression or equation.
func On(n expr.Node) Handle { return one{node: n} }

// Batch wraps an ordered sequence of expressions or equations.
func Batch(ns ...expr.Node) Handle { return batch(ns) }

// Group wraps a name-to-expression mapping. Values are taken in name order.
func Group(m map[string]expr.Node) Handle { return group(m) }

// Groups wraps a sequence of name-to-expression mappings, concatenating
// their values in sequence order.
func Groups(ms ...map[string]expr.Node) Handle { return groups(ms) }

// EstimateCost estimates the operation count of h using the default
// function weights. If estimateFunctions is set, known transcendental
// functions are charged their table weight instead of 1.
//
// Integer arithmetic is not counted: each integer-literal operand of an
// operator (an index offset like the 1 in u[t+1, x]) folds into addressing
// and reduces that operator's contribution by one, clamped at zero.
//
// If the input cannot be normalized, EstimateCost logs a warning and
// returns an error wrapping ErrUnavailable. It never panics.
func EstimateCost(h Handle, estimateFunctions bool) (int, error) {
	return EstimateCostWith(h, estimateFunctions, DefaultWeights())
}

// EstimateCostWith is EstimateCost with a caller-supplied function weight
// table.
func EstimateCostWith(h Handle, estimateFunctions bool, weights map[string]int) (int, error) {
	if h == nil {
		return 0, unavailable(errors.New("nil handle"))
	}
	nodes, err := h.flatten()
	if err != nil {
		return 0, unavailable(err)
	}

	flops := 0
	for _, n := range nodes {
		// Only the computed value contributes; the write target's own
		// index arithmetic never counts.
		if eq, ok := n.(expr.Assign); ok {
			n = eq.RHS
		}
		for _, op := range expr.RetrieveOps(n) {
			switch e := op.(type) {
			case expr.Call:
				if w, ok := weights[e.Name]; ok && estimateFunctions {
					flops += w
				} else {
					flops++
				}
			case expr.Op:
				ints := 0
				for _, a := range e.Operands {
					if expr.IsIntLit(a) {
						ints++
					}
				}
				if c := len(e.Operands) - 1 - ints; c > 0 {
					flops += c
				}
			}
		}
	}
	return flops, nil
}

func unavailable(cause error) error {
	err := fmt.Errorf("%w: %v", ErrUnavailable, cause)
	slog.Warn("cannot estimate operation cost", "err", cause)
	return err
}
