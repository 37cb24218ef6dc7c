package lexer

import (
	"strings"

	"github.com/EmbarkStudios/spdx/registry"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'spdx.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("spdx.lexer")
}

// ErrorKind classifies a lexical failure.
type ErrorKind int

const (
	// InvalidCharacters is raised for a byte sequence the grammar has no
	// rule for, e.g. a bare "+" or "/" when AllowSlashAsOr is false.
	InvalidCharacters ErrorKind = iota
	// MalformedReference is raised for a DocumentRef-/LicenseRef-/
	// AdditionRef- prefixed word whose idstring or ':' structure is wrong.
	MalformedReference
	// MisplacedReference is raised for a well-formed LicenseRef used in
	// exception position, or a well-formed AdditionRef used in license
	// position — right shape, wrong place.
	MisplacedReference
	// UnknownLicense is raised for an unresolvable word in license position.
	UnknownLicense
	// UnknownTerm is raised for an unresolvable word directly after WITH.
	UnknownTerm
)

// Error is a lexical failure tied to a source span. The parser wraps this
// into its own error taxonomy; Error satisfies the error interface so it
// can also be surfaced directly.
type Error struct {
	Kind ErrorKind
	Span Span
	Text string
}

func (e *Error) Error() string {
	switch e.Kind {
	case MalformedReference:
		return "malformed reference " + strconvQuote(e.Text)
	case MisplacedReference:
		return "misplaced reference " + strconvQuote(e.Text)
	case UnknownLicense:
		return "unknown license " + strconvQuote(e.Text)
	case UnknownTerm:
		return "unknown term " + strconvQuote(e.Text)
	default:
		return "invalid characters " + strconvQuote(e.Text)
	}
}

func strconvQuote(s string) string { return "\"" + s + "\"" }

// Config governs the grammar variations a Lexer accepts. The root package
// builds one of these from a ParseMode before constructing a Lexer.
type Config struct {
	// CaseSensitiveKeywords requires AND/OR/WITH to appear exactly
	// uppercase; otherwise any case combination matches.
	CaseSensitiveKeywords bool
	// AllowSlashAsOr treats a bare "/" as an OR operator.
	AllowSlashAsOr bool
	// AllowImprecise falls back to registry.Lookup.Imprecise for an
	// unresolved word in license position before giving up on it.
	AllowImprecise bool
	// AllowUnknownLicenseRef treats any word that resolves nowhere else
	// as an ad-hoc LicenseRef (or AdditionRef, after WITH) instead of
	// raising UnknownLicense/UnknownTerm.
	AllowUnknownLicenseRef bool
	// Registry resolves identifiers against the SPDX license/exception
	// tables. Required; registry.Default() is the usual choice.
	Registry registry.Lookup
}

// Lexer turns an SPDX license expression into a stream of Tokens. It
// tracks just enough state — whether the previous token was WITH — to
// resolve an identifier as a license/LicenseRef or an exception/AdditionRef.
type Lexer struct {
	raw             *rawScanner
	cfg             Config
	expectException bool
	pendingPlus     *Token
}

// New constructs a Lexer over expr using cfg.
func New(expr string, cfg Config) (*Lexer, error) {
	raw, err := newRawScanner(expr)
	if err != nil {
		return nil, err
	}
	return &Lexer{raw: raw, cfg: cfg}, nil
}

// Next returns the next Token, ok=false at end of input, or a *Error.
func (lx *Lexer) Next() (Token, bool, error) {
	if lx.pendingPlus != nil {
		t := *lx.pendingPlus
		lx.pendingPlus = nil
		return t, true, nil
	}

	raw, ok, err := lx.raw.next()
	if err != nil {
		return Token{}, false, err
	}
	if !ok {
		return Token{}, false, nil
	}

	span := Span{Start: raw.start, End: raw.end}
	switch raw.kind {
	case rawOpen:
		return Token{Kind: OpenParen, Span: span}, true, nil
	case rawClose:
		return Token{Kind: CloseParen, Span: span}, true, nil
	case rawSlash:
		if !lx.cfg.AllowSlashAsOr {
			return Token{}, false, &Error{Kind: InvalidCharacters, Span: span, Text: "/"}
		}
		lx.expectException = false
		return Token{Kind: Or, Span: span}, true, nil
	}

	word := raw.text
	hasPlus := false
	var plusSpan Span
	if strings.HasSuffix(word, "+") {
		hasPlus = true
		plusSpan = Span{Start: raw.end - 1, End: raw.end}
		word = word[:len(word)-1]
		span.End = raw.end - 1
	}
	if word == "" {
		return Token{}, false, &Error{Kind: InvalidCharacters, Span: Span{Start: raw.start, End: raw.end}, Text: raw.text}
	}

	if kind, isKeyword := lx.matchKeyword(word); isKeyword {
		lx.expectException = kind == With
		if hasPlus {
			lx.pendingPlus = &Token{Kind: Plus, Span: plusSpan}
		}
		return Token{Kind: kind, Span: span}, true, nil
	}

	tok, rerr := lx.resolveWord(word, span)
	if rerr != nil {
		tracer().Debugf("failed to resolve word %q: %v", word, rerr)
		return Token{}, false, rerr
	}
	tracer().Debugf("resolved word %q as %v", word, tok.Kind)
	lx.expectException = false
	if hasPlus {
		lx.pendingPlus = &Token{Kind: Plus, Span: plusSpan}
	}
	return tok, true, nil
}

func (lx *Lexer) matchKeyword(word string) (Kind, bool) {
	candidate := word
	if !lx.cfg.CaseSensitiveKeywords {
		candidate = strings.ToUpper(word)
	}
	switch candidate {
	case "AND":
		return And, true
	case "OR":
		return Or, true
	case "WITH":
		return With, true
	default:
		return 0, false
	}
}

// resolveWord interprets word (already stripped of keyword/plus handling)
// as a license, exception, or ref identifier, honoring lx.expectException.
func (lx *Lexer) resolveWord(word string, span Span) (Token, error) {
	if strings.HasPrefix(word, "DocumentRef-") {
		return lx.resolveDocumentRef(word, span)
	}
	if strings.HasPrefix(word, "LicenseRef-") {
		name := word[len("LicenseRef-"):]
		if !validIDString(name) {
			return Token{}, &Error{Kind: MalformedReference, Span: span, Text: word}
		}
		if lx.expectException {
			return Token{}, &Error{Kind: MisplacedReference, Span: span, Text: word}
		}
		return Token{Kind: LicenseRef, Span: span, Name: name}, nil
	}
	if strings.HasPrefix(word, "AdditionRef-") {
		name := word[len("AdditionRef-"):]
		if !validIDString(name) {
			return Token{}, &Error{Kind: MalformedReference, Span: span, Text: word}
		}
		if !lx.expectException {
			return Token{}, &Error{Kind: MisplacedReference, Span: span, Text: word}
		}
		return Token{Kind: AdditionRef, Span: span, Name: name}, nil
	}

	if lx.expectException {
		if id, ok := lx.cfg.Registry.Exception(word); ok {
			return Token{Kind: Exception, Span: span, ExceptionID: id}, nil
		}
		if lx.cfg.AllowUnknownLicenseRef {
			return Token{Kind: AdditionRef, Span: span, Name: word}, nil
		}
		return Token{}, &Error{Kind: UnknownTerm, Span: span, Text: word}
	}

	if id, ok := lx.cfg.Registry.License(word); ok {
		return Token{Kind: Spdx, Span: span, License: id, Deprecated: id.IsDeprecated()}, nil
	}
	if lx.cfg.AllowImprecise {
		if canonical, ok := lx.cfg.Registry.Imprecise(word); ok {
			if id, ok := lx.cfg.Registry.License(canonical); ok {
				return Token{Kind: Spdx, Span: span, License: id, Deprecated: id.IsDeprecated()}, nil
			}
		}
	}
	if lx.cfg.AllowUnknownLicenseRef {
		return Token{Kind: LicenseRef, Span: span, Name: word}, nil
	}
	return Token{}, &Error{Kind: UnknownLicense, Span: span, Text: word}
}

func (lx *Lexer) resolveDocumentRef(word string, span Span) (Token, error) {
	rest := word[len("DocumentRef-"):]
	sep := strings.IndexByte(rest, ':')
	if sep < 0 {
		return Token{}, &Error{Kind: MalformedReference, Span: span, Text: word}
	}
	doc, tail := rest[:sep], rest[sep+1:]
	if !validIDString(doc) {
		return Token{}, &Error{Kind: MalformedReference, Span: span, Text: word}
	}

	switch {
	case strings.HasPrefix(tail, "AdditionRef-"):
		name := tail[len("AdditionRef-"):]
		if !validIDString(name) {
			return Token{}, &Error{Kind: MalformedReference, Span: span, Text: word}
		}
		if !lx.expectException {
			return Token{}, &Error{Kind: MisplacedReference, Span: span, Text: word}
		}
		return Token{Kind: AdditionRef, Span: span, Doc: doc, Name: name}, nil
	case strings.HasPrefix(tail, "LicenseRef-"):
		name := tail[len("LicenseRef-"):]
		if !validIDString(name) {
			return Token{}, &Error{Kind: MalformedReference, Span: span, Text: word}
		}
		if lx.expectException {
			return Token{}, &Error{Kind: MisplacedReference, Span: span, Text: word}
		}
		return Token{Kind: LicenseRef, Span: span, Doc: doc, Name: name}, nil
	default:
		return Token{}, &Error{Kind: MalformedReference, Span: span, Text: word}
	}
}

// validIDString reports whether s is a non-empty run of
// [A-Za-z0-9.-], the "idstring" production DocumentRef-/LicenseRef-/
// AdditionRef- suffixes must satisfy.
func validIDString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
		default:
			return false
		}
	}
	return true
}
