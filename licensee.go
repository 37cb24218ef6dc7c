package spdx

import (
	"github.com/EmbarkStudios/spdx/lexer"
	"github.com/EmbarkStudios/spdx/registry"
	"github.com/npillmayer/schuko/tracing"
)

// satisfyTracer traces satisfaction checks with key 'spdx.satisfy'.
func satisfyTracer() tracing.Trace {
	return tracing.Select("spdx.satisfy")
}

// Licensee is one accepted "license + optional exception" record, used as
// the building block of a policy passed to Expression.Evaluate.
type Licensee struct {
	inner LicenseReq
	reg   registry.Lookup
}

// ParseLicensee parses src as exactly one LicenseReq: no operators, no
// parens, no top-level "+" ambiguity beyond what a single license allows.
func ParseLicensee(src string, mode ParseMode) (*Licensee, error) {
	lx, err := lexer.New(src, mode.lexerConfig())
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, mode: mode, lx: lx}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.atEOF {
		return nil, &ParseError{Original: src, Reason: Empty}
	}

	if err := p.parseTerm(); err != nil {
		return nil, err
	}
	if !p.atEOF {
		return nil, &ParseError{Original: src, Span: p.cur.Span, Reason: UnexpectedToken}
	}
	invariant(len(p.nodes) == 1 && !p.nodes[0].IsOp, "licensee parse produced other than a single leaf")

	return &Licensee{inner: p.nodes[0].Req.LicenseReq, reg: mode.registryOrDefault()}, nil
}

// Requirement exposes the underlying LicenseReq this Licensee was built from.
func (l *Licensee) Requirement() LicenseReq { return l.inner }

// String renders the Licensee the same way it would appear as an
// Expression leaf.
func (l *Licensee) String() string { return renderReq(l.inner, l.reg) }

// Satisfies reports whether l, as an accepted licensee, satisfies req.
func (l *Licensee) Satisfies(req LicenseReq) bool {
	ok := l.satisfies(req)
	satisfyTracer().Debugf("licensee %v satisfies %v = %v", l.inner, req, ok)
	return ok
}

func (l *Licensee) satisfies(req LicenseReq) bool {
	if !exceptionsMatch(l.inner, req) {
		return false
	}

	lic, other := l.inner.License, req.License
	if lic.IsOther != other.IsOther {
		return false
	}
	if lic.IsOther {
		return lic.DocRef == other.DocRef && lic.LicRef == other.LicRef
	}
	if lic.Id.IsNoAssertion() || other.Id.IsNoAssertion() {
		return false
	}

	if lic.Id.IsGNU() || other.Id.IsGNU() {
		return gnuSatisfies(lic.Id, other.Id)
	}

	if lic.Id.Equal(other.Id) {
		return true
	}
	if other.OrLater {
		return sameOrLater(lic.Id, other.Id)
	}
	return false
}

func exceptionsMatch(a, b LicenseReq) bool {
	if a.HasException != b.HasException {
		return false
	}
	if !a.HasException {
		return true
	}
	if a.HasAddition != b.HasAddition {
		return false
	}
	if a.HasAddition {
		return a.Addition.Equal(b.Addition)
	}
	return a.Exception.Equal(b.Exception)
}

// sameOrLater reports whether candidate is the same license family as req
// (by Base()) at a version greater than or equal to req's.
func sameOrLater(candidate, req registry.LicenseID) bool {
	if candidate.Base() == "" || candidate.Base() != req.Base() {
		return false
	}
	cMajor, cMinor, ok := candidate.Version()
	if !ok {
		return false
	}
	rMajor, rMinor, ok := req.Version()
	if !ok {
		return false
	}
	if cMajor != rMajor {
		return cMajor > rMajor
	}
	return cMinor >= rMinor
}

// gnuSatisfies implements the 4x4 GNU family satisfaction table. Licensee
// is the row, req is the column. Family identity is compared on the
// version-less root (Family, e.g. "GPL") rather than Base (which embeds
// the version, e.g. "GPL-2.0") — two different versions of the same
// family must still be compared via the version/variant table below.
func gnuSatisfies(licensee, req registry.LicenseID) bool {
	if licensee.Family() == "" || licensee.Family() != req.Family() {
		return false
	}

	licOrLater := licensee.GNUVariant() == registry.VariantOrLater || licensee.GNUVariant() == registry.VariantLegacyPlus
	reqOrLater := req.GNUVariant() == registry.VariantOrLater || req.GNUVariant() == registry.VariantLegacyPlus

	lMajor, lMinor, ok := licensee.Version()
	if !ok {
		return false
	}
	rMajor, rMinor, ok := req.Version()
	if !ok {
		return false
	}

	cmp := versionCompare(lMajor, lMinor, rMajor, rMinor)

	switch {
	case cmp == 0:
		// Same version: -only accepts -only/-or-later; -or-later accepts
		// -only/-or-later too (granting the specific version satisfies a
		// requirement that merely reserves the right to later versions).
		return true
	case cmp < 0:
		// Licensee is an earlier version than the requirement: only an
		// -or-later requirement can be satisfied, and only by an -or-later
		// licensee (an -only licensee never grants a later version).
		return licOrLater && reqOrLater
	default: // cmp > 0: licensee is a later version than the requirement
		// Granting a later version always satisfies an -or-later
		// requirement; it satisfies an -only requirement only if the
		// licensee itself is willing to go backwards, i.e. never — per
		// the table, X-M-only/-or-later (M>N) both satisfy X-N-or-later
		// but neither satisfies X-N-only.
		return reqOrLater
	}
}

func versionCompare(aMajor, aMinor, bMajor, bMinor int) int {
	if aMajor != bMajor {
		if aMajor < bMajor {
			return -1
		}
		return 1
	}
	if aMinor != bMinor {
		if aMinor < bMinor {
			return -1
		}
		return 1
	}
	return 0
}
