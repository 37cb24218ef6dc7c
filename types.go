// Package spdx parses, evaluates, and minimizes SPDX license expressions —
// the Boolean grammar the Software Package Data Exchange uses to describe
// the licensing terms of a piece of software, e.g. "MIT OR Apache-2.0".
//
// The registry of known license and exception identifiers lives in the
// sibling registry package and is consumed here through the registry.Lookup
// interface; this package never hard-codes identifier data itself.
package spdx

import (
	"github.com/EmbarkStudios/spdx/lexer"
	"github.com/EmbarkStudios/spdx/registry"
)

// LicenseId and ExceptionId are the opaque registry handles re-exported at
// root so callers rarely need to import the registry package directly.
type LicenseId = registry.LicenseID
type ExceptionId = registry.ExceptionID

// Span is a byte range [Start, End) within an expression's source text.
type Span = lexer.Span

// LicenseItem is the tagged union of a registered SPDX license or a
// user-defined LicenseRef. Exactly one of (Id valid) or (Other valid) holds,
// distinguished by IsOther.
type LicenseItem struct {
	// IsOther reports whether this is a LicenseRef rather than a registered id.
	IsOther bool

	// Valid when !IsOther.
	Id      LicenseId
	OrLater bool // trailing "+", non-GNU licenses only

	// Valid when IsOther.
	DocRef string // "" if no DocumentRef- prefix was given
	LicRef string
}

// Spdx builds a LicenseItem for a registered license.
func Spdx(id LicenseId, orLater bool) LicenseItem {
	return LicenseItem{Id: id, OrLater: orLater}
}

// OtherLicense builds a LicenseItem for a user-defined LicenseRef.
func OtherLicense(docRef, licRef string) LicenseItem {
	return LicenseItem{IsOther: true, DocRef: docRef, LicRef: licRef}
}

// Equal reports whether two LicenseItems denote the same license, ignoring
// OrLater (callers comparing req vs. licensee handle OrLater explicitly).
func (li LicenseItem) Equal(o LicenseItem) bool {
	if li.IsOther != o.IsOther {
		return false
	}
	if li.IsOther {
		return li.DocRef == o.DocRef && li.LicRef == o.LicRef
	}
	return li.Id.Equal(o.Id)
}

// AdditionRef is a user-defined exception, mirroring LicenseRef syntax:
// "AdditionRef-<name>" or "DocumentRef-<doc>:AdditionRef-<name>". Legal only
// in the exception position, i.e. directly after WITH.
type AdditionRef struct {
	DocRef string // "" if no DocumentRef- prefix was given
	Name   string
}

// Equal reports whether two AdditionRefs name the same addition.
func (a AdditionRef) Equal(o AdditionRef) bool {
	return a.DocRef == o.DocRef && a.Name == o.Name
}

// LicenseReq is one leaf requirement: a license, plus an optional exception
// which is either a registered ExceptionId or a user-defined AdditionRef.
type LicenseReq struct {
	License LicenseItem

	HasException bool
	Exception    ExceptionId // valid when HasException && !HasAddition
	HasAddition  bool
	Addition     AdditionRef // valid when HasException && HasAddition
}

// Operator combines two ExprNode results.
type Operator int

const (
	And Operator = iota
	Or
)

func (op Operator) String() string {
	if op == And {
		return "AND"
	}
	return "OR"
}

// ExprNode is one element of an Expression's postfix stream: either a leaf
// requirement or an operator joining the two preceding results.
type ExprNode struct {
	// IsOp distinguishes Op from Req.
	IsOp bool

	Req Req // valid when !IsOp
	Op  Operator // valid when IsOp
}

// Req pairs a LicenseReq leaf with the byte span it was parsed from, so
// diagnostics and minimization can point back at the original source.
type Req struct {
	LicenseReq
	Span Span
}

// ParseMode configures lexer/parser leniency. Construct from Strict() or
// Lax() and override individual fields. The zero value ParseMode{} behaves
// the same as Strict(): every relaxation is off and a nil Registry falls
// back to registry.Default().
type ParseMode struct {
	AllowLowerCaseOperators    bool
	AllowSlashAsOr             bool
	AllowImpreciseLicenseNames bool
	AllowPostfixPlusOnGpl      bool
	AllowDeprecated            bool
	AllowUnknown               bool

	// Registry is consulted for every identifier lookup. Strict() and Lax()
	// set it to registry.Default(); a nil Registry also means registry.Default().
	Registry registry.Lookup
}

// Strict returns the conservative ParseMode preset: no relaxations.
func Strict() ParseMode {
	return ParseMode{Registry: registry.Default()}
}

// Lax returns the permissive ParseMode preset: every relaxation enabled
// except AllowDeprecated, which LAX sets true per spec.
func Lax() ParseMode {
	return ParseMode{
		AllowLowerCaseOperators:    true,
		AllowSlashAsOr:             true,
		AllowImpreciseLicenseNames: true,
		AllowPostfixPlusOnGpl:      true,
		AllowDeprecated:            true,
		AllowUnknown:               true,
		Registry:                   registry.Default(),
	}
}

func (m ParseMode) registryOrDefault() registry.Lookup {
	if m.Registry != nil {
		return m.Registry
	}
	return registry.Default()
}

func (m ParseMode) lexerConfig() lexer.Config {
	return lexer.Config{
		CaseSensitiveKeywords: !m.AllowLowerCaseOperators,
		AllowSlashAsOr:        m.AllowSlashAsOr,
		AllowImprecise:        m.AllowImpreciseLicenseNames,
		// allow_unknown governs both the lexer's last-resort LicenseRef/
		// AdditionRef fallback and the parser's handling of WITH on a
		// LicenseRef; both read from the same mode flag.
		AllowUnknownLicenseRef: m.AllowUnknown,
		Registry:               m.registryOrDefault(),
	}
}
