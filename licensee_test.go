package spdx

import "testing"

func mustLicensee(t *testing.T, src string, mode ParseMode) *Licensee {
	t.Helper()
	l, err := ParseLicensee(src, mode)
	if err != nil {
		t.Fatalf("ParseLicensee(%q) failed: %v", src, err)
	}
	return l
}

func TestGNUOrLaterSatisfiesLaterOnly(t *testing.T) {
	l := mustLicensee(t, "GPL-2.0-or-later", Strict())
	e := mustParse(t, "GPL-3.0-only", Strict())
	if !e.Evaluate(l.Satisfies) {
		t.Fatal("GPL-2.0-or-later should satisfy GPL-3.0-only")
	}
}

func TestGNUOrLaterDoesNotSatisfyEarlierOnly(t *testing.T) {
	l := mustLicensee(t, "GPL-2.0-or-later", Strict())
	e := mustParse(t, "GPL-1.0-only", Strict())
	if e.Evaluate(l.Satisfies) {
		t.Fatal("GPL-2.0-or-later should not satisfy GPL-1.0-only")
	}
}

func TestGNUOnlyDoesNotSatisfyLaterOnly(t *testing.T) {
	l := mustLicensee(t, "GPL-2.0-only", Strict())
	e := mustParse(t, "GPL-3.0-only", Strict())
	if e.Evaluate(l.Satisfies) {
		t.Fatal("GPL-2.0-only should not satisfy GPL-3.0-only")
	}
}

func TestGNUOnlySatisfiesLaterOrLater(t *testing.T) {
	l := mustLicensee(t, "GPL-3.0-only", Strict())
	e := mustParse(t, "GPL-2.0-or-later", Strict())
	if !e.Evaluate(l.Satisfies) {
		t.Fatal("GPL-3.0-only should satisfy GPL-2.0-or-later")
	}
}

func TestMismatchedGNUFamiliesNeverSatisfy(t *testing.T) {
	l := mustLicensee(t, "LGPL-3.0-or-later", Strict())
	e := mustParse(t, "GPL-2.0-only", Strict())
	if e.Evaluate(l.Satisfies) {
		t.Fatal("LGPL licensee should never satisfy a GPL requirement")
	}
}

func TestNonGNUSameOrLater(t *testing.T) {
	l := mustLicensee(t, "Apache-2.0", Strict())
	e := mustParse(t, "Apache-1.1+", Strict())
	if !e.Evaluate(l.Satisfies) {
		t.Fatal("Apache-2.0 should satisfy Apache-1.1+")
	}
}

func TestNonGNUExactMatchOnly(t *testing.T) {
	l := mustLicensee(t, "Apache-1.1", Strict())
	e := mustParse(t, "Apache-2.0", Strict())
	if e.Evaluate(l.Satisfies) {
		t.Fatal("Apache-1.1 should not satisfy Apache-2.0 without +")
	}
}

func TestExceptionMustMatchExactly(t *testing.T) {
	l := mustLicensee(t, "Apache-2.0", Strict())
	e := mustParse(t, "Apache-2.0 WITH LLVM-exception", Strict())
	if e.Evaluate(l.Satisfies) {
		t.Fatal("bare Apache-2.0 licensee should not satisfy a WITH-exception requirement")
	}
}

func TestOtherLicenseMatchesByName(t *testing.T) {
	l := mustLicensee(t, "LicenseRef-My-License", Strict())
	e := mustParse(t, "LicenseRef-My-License", Strict())
	if !e.Evaluate(l.Satisfies) {
		t.Fatal("identical LicenseRef names should satisfy")
	}
}

// TestGNUSatisfactionMatrix walks the full licensee-variant x
// requirement-variant x version-relation table: same version, licensee
// earlier than the requirement, and licensee later than the requirement.
func TestGNUSatisfactionMatrix(t *testing.T) {
	cases := []struct {
		licensee string
		req      string
		want     bool
	}{
		// licensee earlier than req (GPL-1.0 vs GPL-2.0)
		{"GPL-1.0-only", "GPL-2.0-only", false},
		{"GPL-1.0-or-later", "GPL-2.0-only", false},
		{"GPL-1.0-only", "GPL-2.0-or-later", false},
		{"GPL-1.0-or-later", "GPL-2.0-or-later", true},

		// same version (GPL-2.0 vs GPL-2.0)
		{"GPL-2.0-only", "GPL-2.0-only", true},
		{"GPL-2.0-or-later", "GPL-2.0-only", true},
		{"GPL-2.0-only", "GPL-2.0-or-later", true},
		{"GPL-2.0-or-later", "GPL-2.0-or-later", true},

		// licensee later than req (GPL-3.0 vs GPL-2.0)
		{"GPL-3.0-only", "GPL-2.0-only", false},
		{"GPL-3.0-or-later", "GPL-2.0-only", false},
		{"GPL-3.0-only", "GPL-2.0-or-later", true},
		{"GPL-3.0-or-later", "GPL-2.0-or-later", true},
	}

	for _, c := range cases {
		l := mustLicensee(t, c.licensee, Strict())
		e := mustParse(t, c.req, Strict())
		got := e.Evaluate(l.Satisfies)
		if got != c.want {
			t.Errorf("%s satisfies %s: got %v, want %v", c.licensee, c.req, got, c.want)
		}
	}
}
