package rules

import "regexp"

// String requires a string value.
func String() Rule {
	return Rule{Kind: KindString, Name: "type-string", Description: "should be a string"}
}

// StringOrNull accepts a string, null or an absent key.
func StringOrNull() Rule {
	return Rule{Kind: KindStringOrNull, Name: "type-string-or-null", Description: "should be a string or null"}
}

// NonEmpty requires a string of non-zero length.
func NonEmpty() Rule {
	return Rule{Kind: KindNonEmpty, Name: "nonempty", Description: "should have a nonzero length"}
}

// NonEmptyOr is NonEmpty with placeholder standing in for an absent or null
// value, so only a present empty string fails.
func NonEmptyOr(placeholder string) Rule {
	r := NonEmpty()
	r.Placeholder = &placeholder
	return r.Describe("should have a nonzero length if present")
}

// Length requires a string of exactly n characters.
func Length(n int) Rule {
	return Rule{Kind: KindLength, Name: "fixed-length", Description: lengthDescription(n), N: n}
}

// Uppercase requires a string equal to its upper-cased form.
func Uppercase() Rule {
	return Rule{Kind: KindUppercase, Name: "uppercase-equal", Description: "should be all caps"}
}

// Matches requires a string matching pattern. The pattern is compiled once;
// an invalid pattern panics at schema construction time.
func Matches(name, pattern, desc string) Rule {
	return Rule{Kind: KindMatch, Name: name, Description: desc, Pattern: regexp.MustCompile(pattern)}
}

// Date requires an ISO 8601 datetime string.
func Date() Rule {
	return Rule{Kind: KindDate, Name: "date-parseable", Description: "should be an ISO 8601 datetime"}
}

// DateOr is Date with placeholder standing in for an absent or null value.
func DateOr(placeholder string) Rule {
	r := Date()
	r.Placeholder = &placeholder
	return r.Describe("should be an ISO 8601 datetime if present")
}

// Midnight requires the literal time-of-day to be all zero.
func Midnight() Rule {
	return Rule{Kind: KindMidnight, Name: "midnight-time", Description: "should represent midnight"}
}

// MidnightOr is Midnight with placeholder standing in for an absent or null value.
func MidnightOr(placeholder string) Rule {
	r := Midnight()
	r.Placeholder = &placeholder
	return r.Describe("should represent midnight if present")
}

// OneOf requires the value to be one of the candidates computed from the context.
func OneOf(name, desc string, candidates CandidateFunc) Rule {
	return Rule{Kind: KindOneOf, Name: name, Description: desc, Candidates: candidates}
}

// Undefined requires the key to be absent from the record.
func Undefined() Rule {
	return Rule{Kind: KindAbsent, Name: "absence", Description: "should be absent"}
}

// ContainsLower requires the value's URL path to contain the lowercase form of
// the sibling field.
func ContainsLower(sibling, desc string) Rule {
	return Rule{Kind: KindContainsLower, Name: "contains-lowercase-" + sibling, Description: desc, Sibling: sibling}
}

// FileExists requires the artifact referenced by the value to exist.
func FileExists() Rule {
	return Rule{Kind: KindFileExists, Name: "file-exists", Description: "should have a corresponding image file present"}
}

func lengthDescription(n int) string {
	words := map[int]string{1: "one", 2: "two", 3: "three", 4: "four", 5: "five"}
	if w, ok := words[n]; ok {
		return "should be " + w + " characters"
	}
	return "should have a fixed length"
}
