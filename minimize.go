package spdx

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/schuko/tracing"
)

// minimizeTracer traces minimization with key 'spdx.minimize'.
func minimizeTracer() tracing.Trace {
	return tracing.Select("spdx.minimize")
}

// minFrame is the per-node result of the bottom-up minimal-leaf-set walk:
// the reduced sub-postfix that realizes this node using only chosen leaves,
// the set of chosen leaf indices (an ordered gods treeset, for cheap union
// and deterministic iteration), and whether this node is satisfied at all
// by the accepted licensees.
type minFrame struct {
	nodes  []ExprNode
	leaves *treeset.Set
	ok     bool
}

func emptyFrame() minFrame {
	return minFrame{leaves: treeset.NewWith(utils.IntComparator)}
}

// MinimizedRequirements returns the smallest subexpression of e whose
// leaves are all satisfied by some member of accepted, or a *MinimizeError
// if no combination of accepted licensees satisfies e at all.
func (e *Expression) MinimizedRequirements(accepted []*Licensee) (*Expression, error) {
	pred := func(r LicenseReq) bool {
		for _, l := range accepted {
			if l.Satisfies(r) {
				return true
			}
		}
		return false
	}

	if satisfied := e.Evaluate(pred); !satisfied {
		return nil, &MinimizeError{Reason: RequirementsMismatch}
	}

	stack := make([]minFrame, 0, 4)
	for i, n := range e.nodes {
		if !n.IsOp {
			if pred(n.Req.LicenseReq) {
				leaves := treeset.NewWith(utils.IntComparator)
				leaves.Add(i)
				stack = append(stack, minFrame{nodes: []ExprNode{n}, leaves: leaves, ok: true})
			} else {
				stack = append(stack, emptyFrame())
			}
			continue
		}

		invariant(len(stack) >= 2, "minimizer operator with fewer than two operands")
		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		switch n.Op {
		case Or:
			stack = append(stack, minimizeOr(a, b))
		case And:
			stack = append(stack, minimizeAnd(a, b))
		}
	}

	invariant(len(stack) == 1, "minimizer walk did not reduce to a single result")
	root := stack[0]
	invariant(root.ok, "minimizer root unsatisfied despite the expression evaluating true")

	minimized := &Expression{nodes: root.nodes, reg: e.reg}
	minimized.source = render(minimized.nodes, e.reg)
	minimizeTracer().Debugf("minimized %q (%d leaves) -> %q (%d leaves)", e.source, len(e.Requirements()), minimized.source, len(minimized.Requirements()))
	return minimized, nil
}

// minimizeOr picks the cheaper satisfied branch; a satisfied tie is broken
// toward a, since a's leaf indices are always strictly earlier in source
// order than b's (a is the left operand).
func minimizeOr(a, b minFrame) minFrame {
	switch {
	case !a.ok && !b.ok:
		return emptyFrame()
	case a.ok && !b.ok:
		return a
	case !a.ok && b.ok:
		return b
	case a.leaves.Size() <= b.leaves.Size():
		return a
	default:
		return b
	}
}

func minimizeAnd(a, b minFrame) minFrame {
	if !a.ok || !b.ok {
		return emptyFrame()
	}

	merged := treeset.NewWith(utils.IntComparator)
	merged.Add(a.leaves.Values()...)
	merged.Add(b.leaves.Values()...)

	nodes := make([]ExprNode, 0, len(a.nodes)+len(b.nodes)+1)
	nodes = append(nodes, a.nodes...)
	nodes = append(nodes, b.nodes...)
	nodes = append(nodes, ExprNode{IsOp: true, Op: And})

	return minFrame{nodes: nodes, leaves: merged, ok: true}
}
