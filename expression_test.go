package spdx

import "testing"

func TestEvaluateWithFailuresAgreesWithEvaluate(t *testing.T) {
	e := mustParse(t, "MIT AND BSD-3-Clause", Strict())
	pred := func(r LicenseReq) bool { return !r.License.IsOther && r.License.Id.ShortName() == "MIT" }

	ok := e.Evaluate(pred)
	ok2, failures := e.EvaluateWithFailures(pred)
	if ok != ok2 {
		t.Fatalf("Evaluate() = %v, EvaluateWithFailures() = %v", ok, ok2)
	}
	if ok {
		t.Fatal("expected false: BSD-3-Clause is not accepted")
	}
	if len(failures) != 1 || failures[0].License.Id.ShortName() != "BSD-3-Clause" {
		t.Fatalf("got %+v", failures)
	}
}

func TestEvaluateCallsEveryLeaf(t *testing.T) {
	e := mustParse(t, "MIT AND NOASSERTION", Strict())
	calls := 0
	e.Evaluate(func(r LicenseReq) bool { calls++; return false })
	if calls != 2 {
		t.Fatalf("got %d predicate calls, want 2 (no short-circuit)", calls)
	}
}

func TestDisplayParenthesizesOrInsideAnd(t *testing.T) {
	e := mustParse(t, "(MIT OR Apache-2.0) AND BSD-3-Clause", Strict())
	got := e.String()
	want := "(MIT OR Apache-2.0) AND BSD-3-Clause"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDisplayOmitsRedundantParens(t *testing.T) {
	e := mustParse(t, "MIT OR Apache-2.0 OR BSD-3-Clause", Strict())
	got := e.String()
	want := "MIT OR Apache-2.0 OR BSD-3-Clause"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDisplayWithException(t *testing.T) {
	e := mustParse(t, "Apache-2.0 WITH LLVM-exception", Strict())
	if got := e.String(); got != "Apache-2.0 WITH LLVM-exception" {
		t.Fatalf("got %q", got)
	}
}

func TestRequirementsOrder(t *testing.T) {
	e := mustParse(t, "MIT AND BSD-3-Clause OR Apache-2.0", Strict())
	reqs := e.Requirements()
	want := []string{"MIT", "BSD-3-Clause", "Apache-2.0"}
	if len(reqs) != len(want) {
		t.Fatalf("got %d reqs, want %d", len(reqs), len(want))
	}
	for i, w := range want {
		if reqs[i].License.Id.ShortName() != w {
			t.Fatalf("req %d: got %q, want %q", i, reqs[i].License.Id.ShortName(), w)
		}
	}
}
