// Package rules holds the field rule vocabulary. A Rule is a small data value
// (kind plus parameters) interpreted by Rule.Evaluate, so rule tables can be
// compared, printed and tested without running them.
package rules

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/whatsinstandard/setcheck"
	"github.com/whatsinstandard/setcheck/codec"
)

// Kind selects the predicate a Rule applies.
type Kind int

const (
	KindString Kind = iota
	KindStringOrNull
	KindNonEmpty
	KindLength
	KindUppercase
	KindMatch
	KindDate
	KindMidnight
	KindOneOf
	KindAbsent
	KindContainsLower
	KindFileExists
)

var kindNames = [...]string{
	KindString:        "type-string",
	KindStringOrNull:  "type-string-or-null",
	KindNonEmpty:      "nonempty",
	KindLength:        "fixed-length",
	KindUppercase:     "uppercase-equal",
	KindMatch:         "regex-match",
	KindDate:          "date-parseable",
	KindMidnight:      "midnight-time",
	KindOneOf:         "membership",
	KindAbsent:        "absence",
	KindContainsLower: "contains-lowercase",
	KindFileExists:    "file-exists",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Value is a field value as read from a record. Present is false when the key
// does not occur at all; a present JSON null has Present=true and Raw=nil.
type Value struct {
	Raw     any
	Present bool
}

// Of wraps a present value.
func Of(raw any) Value { return Value{Raw: raw, Present: true} }

// Missing is the value of a key that does not occur.
func Missing() Value { return Value{} }

// Lookup reads a field from a record.
func Lookup(record map[string]any, field string) Value {
	raw, ok := record[field]
	return Value{Raw: raw, Present: ok}
}

// IsNull reports whether the value is absent or JSON null.
func (v Value) IsNull() bool { return !v.Present || v.Raw == nil }

// ArtifactChecker resolves a symbol URL to a local path and reports whether
// the file exists. It is the only capability a rule may use outside its inputs.
type ArtifactChecker interface {
	Check(symbolURL string) (path string, ok bool)
}

// Context carries what a rule may look at besides the value itself.
type Context struct {
	Record     map[string]any // The record holding the value; nil for non-object records.
	Collection []any          // The whole array being validated.
	Index      int            // Position of Record in Collection.
	Artifacts  ArtifactChecker
}

// Previous returns the record just before the current one, if it is an object.
func (c Context) Previous() (map[string]any, bool) {
	if c.Index <= 0 || c.Index > len(c.Collection) {
		return nil, false
	}
	prev, ok := c.Collection[c.Index-1].(map[string]any)
	return prev, ok
}

// CandidateFunc computes the allowed values of a membership rule.
type CandidateFunc func(Context) []any

// Outcome is the result of evaluating one rule.
type Outcome struct {
	Passed  bool
	Code    string // setcheck code, set on failure.
	Message string // Failure detail; empty on success.
}

func pass() Outcome { return Outcome{Passed: true} }

func fail(code, format string, args ...any) Outcome {
	return Outcome{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Rule is a single predicate over a field value.
type Rule struct {
	Kind        Kind
	Name        string // Stable identifier, unique within a field.
	Description string // Human-readable statement of what must hold.

	N           int            // KindLength.
	Pattern     *regexp.Regexp // KindMatch.
	Placeholder *string        // Substituted for absent or null values before checking.
	Sibling     string         // KindContainsLower.
	Candidates  CandidateFunc  // KindOneOf.
}

// Describe returns a copy of r with another description.
func (r Rule) Describe(desc string) Rule {
	r.Description = desc
	return r
}

// Named returns a copy of r with another name.
func (r Rule) Named(name string) Rule {
	r.Name = name
	return r
}

// Evaluate applies r to v. It never panics on malformed input: a value of the
// wrong shape is a failed Outcome.
func (r Rule) Evaluate(v Value, c Context) Outcome {
	if r.Placeholder != nil && v.IsNull() {
		v = Of(*r.Placeholder)
	}
	switch r.Kind {
	case KindString:
		if _, ok := v.Raw.(string); ok && v.Present {
			return pass()
		}
		return fail(setcheck.CodeInvalidType, "expected string, got %s", describe(v))
	case KindStringOrNull:
		if _, ok := v.Raw.(string); ok || v.IsNull() {
			return pass()
		}
		return fail(setcheck.CodeInvalidType, "expected string or null, got %s", describe(v))
	case KindNonEmpty:
		s, ok := v.Raw.(string)
		if !ok {
			return fail(setcheck.CodeInvalidType, "expected string, got %s", describe(v))
		}
		if s == "" {
			return fail(setcheck.CodeTooShort, "expected non-empty string")
		}
		return pass()
	case KindLength:
		s, ok := v.Raw.(string)
		if !ok {
			return fail(setcheck.CodeInvalidType, "expected string, got %s", describe(v))
		}
		switch n := utf8.RuneCountInString(s); {
		case n < r.N:
			return fail(setcheck.CodeTooShort, "expected length %d, got %d", r.N, n)
		case n > r.N:
			return fail(setcheck.CodeTooLong, "expected length %d, got %d", r.N, n)
		}
		return pass()
	case KindUppercase:
		s, ok := v.Raw.(string)
		if !ok {
			return fail(setcheck.CodeInvalidType, "expected string, got %s", describe(v))
		}
		if up := strings.ToUpper(s); s != up {
			return fail(setcheck.CodeInvalidFormat, "expected %q, got %q", up, s)
		}
		return pass()
	case KindMatch:
		s, ok := v.Raw.(string)
		if !ok {
			return fail(setcheck.CodeInvalidType, "expected string, got %s", describe(v))
		}
		if r.Pattern == nil || !r.Pattern.MatchString(s) {
			return fail(setcheck.CodePattern, "%q does not match %s", s, patternString(r.Pattern))
		}
		return pass()
	case KindDate:
		s, ok := v.Raw.(string)
		if !ok {
			return fail(setcheck.CodeInvalidType, "expected string, got %s", describe(v))
		}
		if _, err := codec.ParseISO8601(s); err != nil {
			return fail(setcheck.CodeInvalidFormat, "%q is not an ISO 8601 datetime", s)
		}
		return pass()
	case KindMidnight:
		s, ok := v.Raw.(string)
		if !ok {
			return fail(setcheck.CodeInvalidType, "expected string, got %s", describe(v))
		}
		if !codec.HasMidnightMarker(s) {
			return fail(setcheck.CodeInvalidFormat, "%q does not contain %q", s, codec.MidnightMarker)
		}
		return pass()
	case KindOneOf:
		var candidates []any
		if r.Candidates != nil {
			candidates = r.Candidates(c)
		}
		for _, cand := range candidates {
			if sameValue(v.Raw, cand) {
				return pass()
			}
		}
		return fail(setcheck.CodeInvalidEnum, "%s is not one of %s", describe(v), describeAll(candidates))
	case KindAbsent:
		if !v.Present {
			return pass()
		}
		return fail(setcheck.CodeUnexpectedKey, "expected field to be absent, got %s", describe(v))
	case KindContainsLower:
		s, ok := v.Raw.(string)
		if !ok {
			return fail(setcheck.CodeInvalidType, "expected string, got %s", describe(v))
		}
		sib, ok := c.Record[r.Sibling].(string)
		if !ok {
			return fail(setcheck.CodeInvalidType, "expected %s to be a string, got %s", r.Sibling, describe(Lookup(c.Record, r.Sibling)))
		}
		want := strings.ToLower(sib)
		if !strings.Contains(urlPath(s), want) {
			return fail(setcheck.CodePattern, "%q does not contain %q", s, want)
		}
		return pass()
	case KindFileExists:
		s, ok := v.Raw.(string)
		if !ok {
			return fail(setcheck.CodeInvalidType, "expected string, got %s", describe(v))
		}
		if c.Artifacts == nil {
			return fail(setcheck.CodeDependencyUnavailable, "no artifact resolver configured")
		}
		path, found := c.Artifacts.Check(s)
		if !found {
			return fail(setcheck.CodeMissingArtifact, "no file at %q for %q", path, s)
		}
		return pass()
	}
	return fail(setcheck.CodeParseError, "unknown rule kind %s", r.Kind)
}

// urlPath returns the path component of a URL, or s itself when it does not parse.
func urlPath(s string) string {
	u, err := url.Parse(s)
	if err != nil || u.Path == "" {
		return s
	}
	return u.Path
}

func sameValue(a, b any) bool {
	switch a.(type) {
	case string, bool, nil:
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func patternString(re *regexp.Regexp) string {
	if re == nil {
		return "<nil pattern>"
	}
	return "/" + re.String() + "/"
}

func describe(v Value) string {
	if !v.Present {
		return "undefined"
	}
	switch x := v.Raw.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", x)
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprint(x)
	}
}

func describeAll(vals []any) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, describe(Of(v)))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
