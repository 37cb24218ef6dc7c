package spdx

import "testing"

func TestLaxAcceptsLowerCaseOperators(t *testing.T) {
	e, err := Parse("MIT and BSD-3-Clause", Lax())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.Requirements()) != 2 {
		t.Fatalf("got %d requirements", len(e.Requirements()))
	}
}

func TestStrictRejectsLowerCaseOperators(t *testing.T) {
	_, err := Parse("MIT and BSD-3-Clause", Strict())
	if err == nil {
		t.Fatal("expected an error: lower-case \"and\" is not a keyword under STRICT")
	}
}

func TestLaxAllowsUnknownAsLicenseRef(t *testing.T) {
	e, err := Parse("Some-Homegrown-License", Lax())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reqs := e.Requirements()
	if len(reqs) != 1 || !reqs[0].License.IsOther || reqs[0].License.LicRef != "Some-Homegrown-License" {
		t.Fatalf("got %+v", reqs)
	}
}

func TestStrictRejectsUnknown(t *testing.T) {
	_, err := Parse("Some-Homegrown-License", Strict())
	if err == nil {
		t.Fatal("expected an error under STRICT for an unknown license")
	}
}
