package spdx

import "github.com/EmbarkStudios/spdx/registry"

// String renders the Expression by walking its postfix stream back through
// a precedence-aware pretty-printer, inserting parentheses only where
// needed: around an Or subtree nested inside an And.
func (e *Expression) String() string {
	return render(e.nodes, e.reg)
}

// String renders req the same way a leaf appears inside an Expression's
// Display output.
func (r LicenseReq) String() string {
	return renderReq(r, registry.Default())
}

type renderNode struct {
	text  string
	isOr  bool // top-level operator of this subtree is Or (leaf: false)
}

func render(nodes []ExprNode, reg registry.Lookup) string {
	stack := make([]renderNode, 0, 4)
	for _, n := range nodes {
		if !n.IsOp {
			stack = append(stack, renderNode{text: renderReq(n.Req.LicenseReq, reg)})
			continue
		}

		invariant(len(stack) >= 2, "operator with fewer than two operands while rendering")
		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		switch n.Op {
		case Or:
			stack = append(stack, renderNode{text: a.text + " OR " + b.text, isOr: true})
		case And:
			left, right := a.text, b.text
			if a.isOr {
				left = "(" + left + ")"
			}
			if b.isOr {
				right = "(" + right + ")"
			}
			stack = append(stack, renderNode{text: left + " AND " + right})
		}
	}
	invariant(len(stack) == 1, "rendering did not reduce to a single result")
	return stack[0].text
}

func renderReq(req LicenseReq, reg registry.Lookup) string {
	s := renderLicenseItem(req.License, reg)
	if req.HasException {
		s += " WITH "
		if req.HasAddition {
			s += renderAdditionRef(req.Addition)
		} else {
			s += req.Exception.ShortName()
		}
	}
	return s
}

func renderLicenseItem(li LicenseItem, reg registry.Lookup) string {
	if li.IsOther {
		if li.DocRef != "" {
			return "DocumentRef-" + li.DocRef + ":LicenseRef-" + li.LicRef
		}
		return "LicenseRef-" + li.LicRef
	}

	id := li.Id
	if id.IsGNU() {
		switch id.GNUVariant() {
		case registry.VariantOnly, registry.VariantOrLater:
			return id.ShortName()
		default: // VariantNone or VariantLegacyPlus: always display canonically
			variant := registry.VariantOnly
			if id.GNUVariant() == registry.VariantLegacyPlus {
				variant = registry.VariantOrLater
			}
			canonical, ok := reg.GNULicenseID(id.Base(), variant)
			invariant(ok, "GNU license has no -only/-or-later form to canonicalize to")
			return canonical.ShortName()
		}
	}

	name := id.ShortName()
	if li.OrLater {
		name += "+"
	}
	return name
}

func renderAdditionRef(a AdditionRef) string {
	if a.DocRef != "" {
		return "DocumentRef-" + a.DocRef + ":AdditionRef-" + a.Name
	}
	return "AdditionRef-" + a.Name
}

// Canonicalize renders e's parsed node stream in canonical spelling: bare
// deprecated GNU ids and legacy "+" on GNU licenses come out as their
// -only/-or-later forms, and imprecise names and unknown words come out as
// the ids or LicenseRef-/AdditionRef- forms the parser resolved them to.
// Deprecated non-GNU ids (e.g. "wxWindows") are rendered unchanged and a
// LicenseRef with a registered exception keeps that exception, so in those
// cases the result does not reparse under Strict(). The error is always nil.
func (e *Expression) Canonicalize() (string, error) {
	return render(e.nodes, e.reg), nil
}
