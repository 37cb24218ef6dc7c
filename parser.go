package spdx

import (
	"github.com/EmbarkStudios/spdx/lexer"
	"github.com/EmbarkStudios/spdx/registry"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces parsing with key 'spdx.parser'.
func tracer() tracing.Trace {
	return tracing.Select("spdx.parser")
}

// parser is a recursive-descent parser over a lexer.Lexer, implementing:
//
//	expr     := compound
//	compound := orExpr
//	orExpr   := andExpr ( OR andExpr )*
//	andExpr  := term ( AND term )*
//	term     := primary ( WITH exception )?
//	primary  := license | '(' compound ')'
//	license  := SPDX [ '+' ] | LicenseRef
//	exception:= Exception | AdditionRef
//
// AND binds tighter than OR, matching spec; WITH binds tighter than both by
// virtue of being consumed inside term before compound ever sees an operator.
type parser struct {
	src  string
	mode ParseMode
	lx   *lexer.Lexer

	cur   lexer.Token
	atEOF bool

	nodes []ExprNode
}

func parseExpression(src string, mode ParseMode) (*Expression, error) {
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

	if err := p.parseCompound(); err != nil {
		return nil, err
	}
	if !p.atEOF {
		reason := UnexpectedToken
		if p.cur.Kind == lexer.CloseParen {
			reason = UnopenedParens
		}
		return nil, &ParseError{Original: src, Span: p.cur.Span, Reason: reason}
	}

	return &Expression{source: src, nodes: p.nodes, reg: mode.registryOrDefault()}, nil
}

func (p *parser) advance() error {
	tok, ok, err := p.lx.Next()
	if err != nil {
		return translateLexError(p.src, err)
	}
	if !ok {
		p.atEOF = true
		return nil
	}
	p.cur = tok
	p.atEOF = false
	tracer().Debugf("token %v %q", tok.Kind, p.src[tok.Span.Start:spanEnd(tok.Span, p.src)])
	return nil
}

func spanEnd(sp Span, src string) int {
	if sp.End > len(src) {
		return len(src)
	}
	return sp.End
}

func translateLexError(src string, err error) error {
	lerr, ok := err.(*lexer.Error)
	if !ok {
		return err
	}
	var reason Reason
	switch lerr.Kind {
	case lexer.InvalidCharacters:
		reason = InvalidCharacters
	case lexer.MalformedReference:
		reason = Idstring
	case lexer.MisplacedReference:
		reason = IdstringTerm
	case lexer.UnknownLicense:
		reason = UnknownLicense
	case lexer.UnknownTerm:
		reason = UnknownTerm
	default:
		reason = InvalidCharacters
	}
	return &ParseError{Original: src, Span: lerr.Span, Reason: reason}
}

func (p *parser) parseCompound() error {
	return p.parseOr()
}

func (p *parser) parseOr() error {
	if err := p.parseAnd(); err != nil {
		return err
	}
	for !p.atEOF && p.cur.Kind == lexer.Or {
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.parseAnd(); err != nil {
			return err
		}
		p.nodes = append(p.nodes, ExprNode{IsOp: true, Op: Or})
	}
	return nil
}

func (p *parser) parseAnd() error {
	if err := p.parseTerm(); err != nil {
		return err
	}
	for !p.atEOF && p.cur.Kind == lexer.And {
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.parseTerm(); err != nil {
			return err
		}
		p.nodes = append(p.nodes, ExprNode{IsOp: true, Op: And})
	}
	return nil
}

func (p *parser) parseTerm() error {
	leafIdx := len(p.nodes)
	if err := p.parsePrimary(); err != nil {
		return err
	}
	if p.atEOF || p.cur.Kind != lexer.With {
		return nil
	}

	leaf := &p.nodes[leafIdx].Req
	if !leaf.License.IsOther && leaf.License.Id.IsNoAssertion() {
		return &ParseError{Original: p.src, Span: p.cur.Span, Reason: InvalidStructure}
	}

	if err := p.advance(); err != nil { // consume WITH
		return err
	}
	return p.parseException(leafIdx)
}

func (p *parser) parsePrimary() error {
	if p.atEOF {
		return &ParseError{Original: p.src, Reason: MissingOperand}
	}

	switch p.cur.Kind {
	case lexer.OpenParen:
		open := p.cur.Span
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.parseCompound(); err != nil {
			return err
		}
		if p.atEOF || p.cur.Kind != lexer.CloseParen {
			return &ParseError{Original: p.src, Span: open, Reason: UnclosedParens}
		}
		return p.advance()

	case lexer.CloseParen:
		return &ParseError{Original: p.src, Span: p.cur.Span, Reason: MissingOperand}

	case lexer.Spdx:
		return p.parseSpdxLicense()

	case lexer.LicenseRef:
		tok := p.cur
		if err := p.advance(); err != nil {
			return err
		}
		p.nodes = append(p.nodes, ExprNode{Req: Req{
			LicenseReq: LicenseReq{License: OtherLicense(tok.Doc, tok.Name)},
			Span:       tok.Span,
		}})
		return nil

	case lexer.And, lexer.Or, lexer.With, lexer.Plus:
		return &ParseError{Original: p.src, Span: p.cur.Span, Reason: MissingOperand}

	case lexer.Exception, lexer.AdditionRef:
		return &ParseError{Original: p.src, Span: p.cur.Span, Reason: UnexpectedToken}

	default:
		return &ParseError{Original: p.src, Span: p.cur.Span, Reason: UnexpectedToken}
	}
}

func (p *parser) parseSpdxLicense() error {
	tok := p.cur
	span := tok.Span
	if err := p.advance(); err != nil {
		return err
	}

	id := tok.License
	if id.IsDeprecated() && !p.mode.AllowDeprecated {
		return &ParseError{Original: p.src, Span: span, Reason: DeprecatedLicenseId}
	}

	orLater := false
	if !p.atEOF && p.cur.Kind == lexer.Plus {
		plusSpan := p.cur.Span
		if err := p.advance(); err != nil {
			return err
		}
		span.End = plusSpan.End

		if id.IsGNU() {
			switch id.GNUVariant() {
			case registry.VariantNone: // bare deprecated identifier, e.g. "GPL-2.0"
				if !p.mode.AllowPostfixPlusOnGpl {
					return &ParseError{Original: p.src, Span: span, Reason: GnuPlusWithSuffix}
				}
				rewritten, ok := p.mode.registryOrDefault().GNULicenseID(id.Base(), registry.VariantOrLater)
				if !ok {
					invariant(false, "GNU base has no -or-later variant")
				}
				id = rewritten
			default:
				return &ParseError{Original: p.src, Span: span, Reason: GnuPlusWithSuffix}
			}
		} else {
			orLater = true
		}
	}

	p.nodes = append(p.nodes, ExprNode{Req: Req{
		LicenseReq: LicenseReq{License: Spdx(id, orLater)},
		Span:       span,
	}})
	return nil
}

func (p *parser) parseException(leafIdx int) error {
	if p.atEOF {
		return &ParseError{Original: p.src, Reason: MissingOperand}
	}

	leaf := &p.nodes[leafIdx].Req

	switch p.cur.Kind {
	case lexer.Exception:
		leaf.HasException = true
		leaf.Exception = p.cur.ExceptionID
	case lexer.AdditionRef:
		leaf.HasException = true
		leaf.HasAddition = true
		leaf.Addition = AdditionRef{DocRef: p.cur.Doc, Name: p.cur.Name}
	default:
		return &ParseError{Original: p.src, Span: p.cur.Span, Reason: UnexpectedToken}
	}

	if leaf.License.IsOther && !leaf.HasAddition && !p.mode.AllowUnknown {
		return &ParseError{Original: p.src, Span: p.cur.Span, Reason: IdstringTerm}
	}

	return p.advance()
}
