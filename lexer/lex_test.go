package lexer

import (
	"testing"

	"github.com/EmbarkStudios/spdx/registry"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func strictConfig() Config {
	return Config{
		CaseSensitiveKeywords: true,
		Registry:              registry.Default(),
	}
}

func laxConfig() Config {
	return Config{
		AllowSlashAsOr:         true,
		AllowImprecise:         true,
		AllowUnknownLicenseRef: true,
		Registry:               registry.Default(),
	}
}

func collect(t *testing.T, lx *Lexer) []Token {
	t.Helper()
	var toks []Token
	for {
		tok, ok, err := lx.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestSimpleLicense(t *testing.T) {
	lx, err := New("MIT", strictConfig())
	if err != nil {
		t.Fatal(err)
	}
	toks := collect(t, lx)
	if len(toks) != 1 || toks[0].Kind != Spdx || toks[0].License.ShortName() != "MIT" {
		t.Fatalf("got %+v", toks)
	}
}

func TestAndOrWith(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "spdx.lexer")
	defer teardown()

	lx, err := New("MIT AND Apache-2.0 WITH LLVM-exception", strictConfig())
	if err != nil {
		t.Fatal(err)
	}
	toks := collect(t, lx)
	kinds := make([]Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	want := []Kind{Spdx, And, Spdx, With, Exception}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("got %v, want %v", kinds, want)
		}
	}
}

func TestTrailingPlus(t *testing.T) {
	lx, err := New("GPL-2.0+", strictConfig())
	if err != nil {
		t.Fatal(err)
	}
	toks := collect(t, lx)
	if len(toks) != 2 || toks[0].Kind != Spdx || toks[1].Kind != Plus {
		t.Fatalf("got %+v", toks)
	}
	if toks[0].License.ShortName() != "GPL-2.0" {
		t.Fatalf("got %q", toks[0].License.ShortName())
	}
}

func TestParens(t *testing.T) {
	lx, err := New("(MIT OR Apache-2.0)", strictConfig())
	if err != nil {
		t.Fatal(err)
	}
	toks := collect(t, lx)
	want := []Kind{OpenParen, Spdx, Or, Spdx, CloseParen}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLowercaseKeywordRejectedInStrictMode(t *testing.T) {
	lx, err := New("MIT and Apache-2.0", strictConfig())
	if err != nil {
		t.Fatal(err)
	}
	// "and" is not a keyword in strict mode, so it is looked up as a
	// license identifier and fails to resolve.
	if _, _, err := lx.Next(); err != nil {
		t.Fatalf("unexpected error on first token: %v", err)
	}
	if _, _, err := lx.Next(); err == nil {
		t.Fatal("expected an error resolving \"and\" as a license")
	}
}

func TestLowercaseKeywordAcceptedInLaxMode(t *testing.T) {
	lx, err := New("MIT and Apache-2.0", laxConfig())
	if err != nil {
		t.Fatal(err)
	}
	toks := collect(t, lx)
	if len(toks) != 3 || toks[1].Kind != And {
		t.Fatalf("got %+v", toks)
	}
}

func TestSlashAsOr(t *testing.T) {
	lx, err := New("MIT/Apache-2.0", laxConfig())
	if err != nil {
		t.Fatal(err)
	}
	toks := collect(t, lx)
	if len(toks) != 3 || toks[1].Kind != Or {
		t.Fatalf("got %+v", toks)
	}
}

func TestSlashRejectedByDefault(t *testing.T) {
	lx, err := New("MIT/Apache-2.0", strictConfig())
	if err != nil {
		t.Fatal(err)
	}
	lx.Next() // MIT
	if _, _, err := lx.Next(); err == nil {
		t.Fatal("expected an error for bare '/' when AllowSlashAsOr is false")
	}
}

func TestLicenseRef(t *testing.T) {
	lx, err := New("LicenseRef-My-License", strictConfig())
	if err != nil {
		t.Fatal(err)
	}
	toks := collect(t, lx)
	if len(toks) != 1 || toks[0].Kind != LicenseRef || toks[0].Name != "My-License" || toks[0].Doc != "" {
		t.Fatalf("got %+v", toks)
	}
}

func TestDocumentRefLicenseRef(t *testing.T) {
	lx, err := New("DocumentRef-spdx-tool-1.2:LicenseRef-MIT-Style-2", strictConfig())
	if err != nil {
		t.Fatal(err)
	}
	toks := collect(t, lx)
	if len(toks) != 1 {
		t.Fatalf("got %+v", toks)
	}
	tok := toks[0]
	if tok.Kind != LicenseRef || tok.Doc != "spdx-tool-1.2" || tok.Name != "MIT-Style-2" {
		t.Fatalf("got %+v", tok)
	}
}

func TestAdditionRefAfterWith(t *testing.T) {
	lx, err := New("MIT WITH AdditionRef-my-addition", strictConfig())
	if err != nil {
		t.Fatal(err)
	}
	toks := collect(t, lx)
	if len(toks) != 3 || toks[2].Kind != AdditionRef || toks[2].Name != "my-addition" {
		t.Fatalf("got %+v", toks)
	}
}

func TestLicenseRefRejectedAfterWith(t *testing.T) {
	lx, err := New("MIT WITH LicenseRef-nope", strictConfig())
	if err != nil {
		t.Fatal(err)
	}
	lx.Next() // MIT
	lx.Next() // WITH
	if _, _, err := lx.Next(); err == nil {
		t.Fatal("expected an error: LicenseRef is not valid after WITH")
	}
}

func TestUnknownLicense(t *testing.T) {
	lx, err := New("NOPE", strictConfig())
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = lx.Next()
	lexErr, ok := err.(*Error)
	if !ok || lexErr.Kind != UnknownLicense {
		t.Fatalf("got %v", err)
	}
}

func TestUnknownTermAfterWith(t *testing.T) {
	lx, err := New("MIT WITH Nope", strictConfig())
	if err != nil {
		t.Fatal(err)
	}
	lx.Next() // MIT
	lx.Next() // WITH
	_, _, err = lx.Next()
	lexErr, ok := err.(*Error)
	if !ok || lexErr.Kind != UnknownTerm {
		t.Fatalf("got %v", err)
	}
}

func TestAllowUnknownLicenseRefFallback(t *testing.T) {
	lx, err := New("Some-Made-Up-License", laxConfig())
	if err != nil {
		t.Fatal(err)
	}
	toks := collect(t, lx)
	if len(toks) != 1 || toks[0].Kind != LicenseRef || toks[0].Name != "Some-Made-Up-License" {
		t.Fatalf("got %+v", toks)
	}
}

func TestImpreciseFallback(t *testing.T) {
	lx, err := New("apache2", laxConfig())
	if err != nil {
		t.Fatal(err)
	}
	tok, ok, err := lx.Next()
	if err != nil || !ok {
		t.Fatalf("got tok=%+v ok=%v err=%v", tok, ok, err)
	}
	if tok.Kind != Spdx || tok.License.ShortName() != "Apache-2.0" {
		t.Fatalf("got %+v", tok)
	}
}

func TestBarePlusIsInvalid(t *testing.T) {
	lx, err := New("MIT AND +", strictConfig())
	if err != nil {
		t.Fatal(err)
	}
	lx.Next() // MIT
	lx.Next() // AND
	_, _, err = lx.Next()
	if err == nil {
		t.Fatal("expected an error for a bare '+'")
	}
}

func TestDeprecatedFlagged(t *testing.T) {
	lx, err := New("GPL-2.0", strictConfig())
	if err != nil {
		t.Fatal(err)
	}
	toks := collect(t, lx)
	if len(toks) != 1 || !toks[0].Deprecated {
		t.Fatalf("got %+v", toks)
	}
}
