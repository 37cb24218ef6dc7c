package lexer

import (
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Raw token categories produced by the lexmachine DFA, before any
// SPDX-specific interpretation is applied.
const (
	rawWord = iota
	rawOpen
	rawClose
	rawSlash
)

// rawToken is one match from the lexmachine scanner.
type rawToken struct {
	kind  int
	text  string
	start int
	end   int
}

var (
	rawLexer     *lexmachine.Lexer
	rawLexerOnce sync.Once
	rawLexerErr  error
)

func makeRawToken(kind int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(kind, string(m.Bytes), m), nil
	}
}

func skipRaw(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// compiledRawLexer builds (once) the lexmachine DFA shared by every Lexer.
// It only knows about whitespace, parens, slash, and "everything else is a
// word" — all SPDX semantics are layered on top in Lexer.Next.
func compiledRawLexer() (*lexmachine.Lexer, error) {
	rawLexerOnce.Do(func() {
		lex := lexmachine.NewLexer()
		lex.Add([]byte(`( |\t|\n|\r)+`), skipRaw)
		lex.Add([]byte(`\(`), makeRawToken(rawOpen))
		lex.Add([]byte(`\)`), makeRawToken(rawClose))
		lex.Add([]byte(`/`), makeRawToken(rawSlash))
		lex.Add([]byte(`[^ \t\n\r\(\)/]+`), makeRawToken(rawWord))

		rawLexerErr = lex.Compile()
		rawLexer = lex
	})
	return rawLexer, rawLexerErr
}

// rawScanner produces rawTokens over a single input string.
type rawScanner struct {
	scanner *lexmachine.Scanner
}

func newRawScanner(input string) (*rawScanner, error) {
	lex, err := compiledRawLexer()
	if err != nil {
		return nil, err
	}
	s, err := lex.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &rawScanner{scanner: s}, nil
}

// next returns the next raw token, or ok=false at end of input.
func (r *rawScanner) next() (rawToken, bool, error) {
	tok, err, eof := r.scanner.Next()
	for err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			// The DFA above accepts every non-whitespace, non-paren,
			// non-slash rune as part of a word, so unconsumed input can
			// only happen at a stray byte the machine's alphabet can't
			// represent; that byte is skipped and scanning resumes right
			// after it, so it yields no token and no error.
			r.scanner.TC = ui.FailTC + 1
			tok, err, eof = r.scanner.Next()
			continue
		}
		return rawToken{}, false, err
	}
	if eof {
		return rawToken{}, false, nil
	}
	t := tok.(*lexmachine.Token)
	// t.StartColumn/EndColumn are lexmachine's 1-based, line-relative,
	// end-inclusive columns — not 0-based byte offsets. Span arithmetic
	// throughout this module (error reporting, source slicing) wants
	// plain [start, end) byte offsets, so derive them from TC/Lexeme
	// instead of the column fields.
	start := t.TC
	return rawToken{
		kind:  t.Type,
		text:  string(t.Lexeme),
		start: start,
		end:   start + len(t.Lexeme),
	}, true, nil
}
