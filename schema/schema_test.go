package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/whatsinstandard/setcheck"
	"github.com/whatsinstandard/setcheck/rules"
)

func testCollection() *Collection {
	return &Collection{
		Version:  "vT",
		MinItems: 1,
		MaxItems: 2,
		Record: &Record{Fields: []Field{
			{Name: "name", Rules: []rules.Rule{rules.String(), rules.NonEmpty()}},
			{Name: "code", Rules: []rules.Rule{rules.String(), rules.Length(3), rules.Uppercase()}},
		}},
	}
}

func TestCollection_NotArray(t *testing.T) {
	for _, doc := range []any{nil, "x", map[string]any{}, true} {
		res := testCollection().Validate(doc, Options{})
		require.Len(t, res, 1)
		require.Equal(t, RuleIsArray, res[0].Rule)
		require.False(t, res[0].Passed)
		require.Equal(t, "/", res[0].Path)
	}
}

func TestCollection_Cardinality(t *testing.T) {
	c := testCollection()

	res := c.Validate([]any{}, Options{})
	require.Len(t, res, 2)
	require.Equal(t, setcheck.CodeTooSmall, res[1].Code)
	require.Equal(t, "should have between 1 and 2 sets: got 0", res[1].Message)

	res = c.Validate([]any{
		map[string]any{"name": "a", "code": "AAA"},
		map[string]any{"name": "b", "code": "BBB"},
		map[string]any{"name": "c", "code": "CCC"},
	}, Options{})
	require.Equal(t, setcheck.CodeTooBig, res[1].Code)
	require.Len(t, res.Failures(), 1)
}

func TestCollection_BoundsText(t *testing.T) {
	for _, tc := range []struct {
		min, max int
		want     string
	}{
		{0, 0, "should have exactly 0 sets"},
		{Unbounded, 6, "should have at most 6 sets"},
		{8, Unbounded, "should have at least 8 sets"},
		{Unbounded, Unbounded, "may have any number of sets"},
		{8, 9, "should have between 8 and 9 sets"},
	} {
		c := &Collection{MinItems: tc.min, MaxItems: tc.max}
		require.Equal(t, tc.want, c.boundsText())
	}
}

func TestRecord_NoShortCircuit(t *testing.T) {
	res := testCollection().Validate([]any{map[string]any{"name": "", "code": 12}}, Options{})

	var got []string
	for _, r := range res.Failures() {
		got = append(got, r.Path+" "+r.Rule)
	}
	require.Equal(t, []string{
		"/0/name nonempty",
		"/0/code type-string",
		"/0/code fixed-length",
		"/0/code uppercase-equal",
	}, got)
	require.Equal(t, "#0", res.Failures()[0].Record)
}

func TestRecord_FieldOrderPreserved(t *testing.T) {
	res := testCollection().Validate([]any{map[string]any{"code": "ABC", "name": "Alpha"}}, Options{})
	require.True(t, res.Passed())

	var fields []string
	for _, r := range res[2:] {
		fields = append(fields, r.Field)
		require.Equal(t, "Alpha", r.Record)
	}
	require.Equal(t, []string{"name", "name", "code", "code", "code"}, fields)
}

func TestRecord_NotObject(t *testing.T) {
	res := testCollection().Validate([]any{"just a string"}, Options{})
	failures := res.Failures()

	require.Equal(t, RuleIsObject, failures[0].Rule)
	require.Equal(t, "/0", failures[0].Path)
	// every field rule still runs, against an absent value
	require.Len(t, failures, 1+5)
}

func TestLabel(t *testing.T) {
	require.Equal(t, "Ixalan", Label(map[string]any{"name": "Ixalan"}, 3))
	require.Equal(t, "#3", Label(map[string]any{"name": ""}, 3))
	require.Equal(t, "#1", Label(42, 1))
}
