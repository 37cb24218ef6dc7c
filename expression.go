package spdx

import "github.com/EmbarkStudios/spdx/registry"

// Expression is an immutable, parsed SPDX license expression: the original
// source text plus its postfix (reverse Polish) node stream.
type Expression struct {
	source string
	nodes  []ExprNode
	reg    registry.Lookup
}

// Parse lexes and parses src under mode, producing an Expression.
func Parse(src string, mode ParseMode) (*Expression, error) {
	return parseExpression(src, mode)
}

// Source returns the original text the Expression was parsed from.
func (e *Expression) Source() string { return e.source }

// Requirements returns the LicenseReq leaves in source order.
func (e *Expression) Requirements() []LicenseReq {
	reqs := make([]LicenseReq, 0, len(e.nodes))
	for _, n := range e.nodes {
		if !n.IsOp {
			reqs = append(reqs, n.Req.LicenseReq)
		}
	}
	return reqs
}

// Iter returns the full postfix node stream (leaves and operators).
func (e *Expression) Iter() []ExprNode {
	return append([]ExprNode(nil), e.nodes...)
}

// Predicate decides whether a single LicenseReq is acceptable.
type Predicate func(LicenseReq) bool

// Evaluate runs the non-short-circuiting Boolean stack machine (spec §4.5)
// over the postfix stream, calling pred for every leaf in source order.
func (e *Expression) Evaluate(pred Predicate) bool {
	result, _ := e.evaluate(pred)
	return result
}

// EvaluateWithFailures is like Evaluate but additionally returns every
// LicenseReq for which pred returned false.
func (e *Expression) EvaluateWithFailures(pred Predicate) (bool, []LicenseReq) {
	return e.evaluate(pred)
}

func (e *Expression) evaluate(pred Predicate) (bool, []LicenseReq) {
	var failures []LicenseReq
	stack := make([]bool, 0, 4)

	for _, n := range e.nodes {
		if !n.IsOp {
			ok := pred(n.Req.LicenseReq)
			if !ok {
				failures = append(failures, n.Req.LicenseReq)
			}
			stack = append(stack, ok)
			continue
		}

		invariant(len(stack) >= 2, "operator with fewer than two operands on the evaluation stack")
		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		var r bool
		switch n.Op {
		case And:
			r = a && b
		case Or:
			r = a || b
		}
		stack = append(stack, r)
	}

	invariant(len(stack) == 1, "evaluation did not reduce to a single result")
	tracer().Debugf("evaluate(%q) = %v, %d failure(s)", e.source, stack[0], len(failures))
	return stack[0], failures
}
