package setcheck_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/whatsinstandard/setcheck"
)

func TestPathRef_Pointer(t *testing.T) {
	root := setcheck.Root("v4")
	if got := root.Pointer(); got != "/" {
		t.Fatalf("root pointer: got %q", got)
	}
	if got := root.Index(3).Field("rough_exit_date").Pointer(); got != "/3/rough_exit_date" {
		t.Fatalf("got %q", got)
	}
	if got := root.Index(0).Field("a/b~c").Pointer(); got != "/0/a~1b~0c" {
		t.Fatalf("escaping: got %q", got)
	}
	if got := setcheck.At("v4", "/2/block").Pointer(); got != "/2/block" {
		t.Fatalf("At: got %q", got)
	}

	base := root.Index(1)
	a, b := base.Field("name"), base.Field("code")
	if a.Pointer() != "/1/name" || b.Pointer() != "/1/code" {
		t.Fatalf("siblings must not share state: %q %q", a.Pointer(), b.Pointer())
	}
}

func TestPathRef_Results(t *testing.T) {
	at := setcheck.Root("v3").Index(2).Field("code")

	pass := at.Pass("fixed-length", "should be three characters")
	if !pass.Passed || pass.Code != "" || pass.Version != "v3" || pass.Path != "/2/code" {
		t.Fatalf("unexpected pass result: %+v", pass)
	}
	fail := at.Fail("uppercase-equal", setcheck.CodeInvalidFormat, "should be all caps")
	if fail.Passed || fail.Code != setcheck.CodeInvalidFormat {
		t.Fatalf("unexpected fail result: %+v", fail)
	}
}

func TestResults(t *testing.T) {
	root := setcheck.Root("v1")
	rs := setcheck.Results{
		root.Pass("is-array", "should be an array"),
		root.Fail("cardinality", setcheck.CodeTooBig, "shouldn't grow"),
		root.Pass("x", "y"),
	}
	if rs.Passed() {
		t.Fatalf("expected failure")
	}
	if p, f := rs.Count(); p != 2 || f != 1 {
		t.Fatalf("count: got %d/%d", p, f)
	}
	if fs := rs.Failures(); len(fs) != 1 || fs[0].Rule != "cardinality" {
		t.Fatalf("failures: %+v", fs)
	}
	if !(setcheck.Results{}).Passed() {
		t.Fatalf("empty results pass")
	}
	if !rs[0].CollectionLevel() {
		t.Fatalf("root result must be collection level")
	}
}

func TestIssues_Error(t *testing.T) {
	var iss setcheck.Issues
	for i := 0; i < 5; i++ {
		iss = setcheck.AppendIssues(iss, setcheck.Issue{Path: fmt.Sprintf("/%d", i), Code: setcheck.CodeParseError, Message: "bad"})
	}
	msg := iss.Error()
	if !strings.HasPrefix(msg, "parse_error at /0: bad; parse_error at /1: bad") {
		t.Fatalf("unexpected message: %s", msg)
	}
	if !strings.HasSuffix(msg, "(total 5)") {
		t.Fatalf("expected total suffix: %s", msg)
	}

	wrapped := fmt.Errorf("decode: %w", iss)
	got, ok := setcheck.AsIssues(wrapped)
	if !ok || len(got) != 5 {
		t.Fatalf("AsIssues through wrap: ok=%v len=%d", ok, len(got))
	}
	if _, ok := setcheck.AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain error is not Issues")
	}
}
