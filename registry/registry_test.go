package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/whatsinstandard/setcheck/rules"
	"github.com/whatsinstandard/setcheck/schema"
)

func TestRegister(t *testing.T) {
	r := New()
	v := &schema.Collection{Version: "v1"}
	require.NoError(t, r.Register("v1", v))

	err := r.Register("v1", &schema.Collection{Version: "v1", MaxItems: 10})
	require.ErrorIs(t, err, ErrDuplicateVersion)

	got, err := r.Lookup("v1")
	require.NoError(t, err)
	require.Same(t, v, got)

	require.Error(t, r.Register("", v))
	require.Error(t, r.Register("v2", nil))

	_, err = r.Lookup("v2")
	require.ErrorIs(t, err, ErrUnknownVersion)
}

func TestVersions_NaturalOrder(t *testing.T) {
	r := New()
	for _, v := range []string{"v10", "v2", "v1", "v3"} {
		r.MustRegister(v, &schema.Collection{Version: v})
	}
	require.Equal(t, []string{"v1", "v2", "v3", "v10"}, r.Versions())
}

func TestMustRegister_Panics(t *testing.T) {
	r := New()
	r.MustRegister("v1", V1())
	require.Panics(t, func() { r.MustRegister("v1", V1()) })
}

func TestDefault(t *testing.T) {
	r := Default()
	require.Equal(t, []string{"v1", "v2", "v3", "v4"}, r.Versions())

	for _, v := range r.Versions() {
		c, err := r.Lookup(v)
		require.NoError(t, err)
		require.Equal(t, v, c.Version)
	}
}

func TestVersions_Independent(t *testing.T) {
	v3, v4 := V3(), V4()
	require.NotSame(t, v3.Record, v4.Record)

	// Editing one version's rules leaves the other untouched.
	v3.Record.Fields[0].Rules = nil
	require.Len(t, v4.Record.Fields[0].Rules, 2)
	require.Len(t, V3().Record.Fields[0].Rules, 2)
}

func TestFieldOrder(t *testing.T) {
	want := []string{"name", "block", "code", "symbol", "enter_date", "exit_date", "rough_exit_date"}
	for _, c := range []*schema.Collection{V3(), V4()} {
		var got []string
		for _, f := range c.Record.Fields {
			got = append(got, f.Name)
		}
		require.Equal(t, want, got, c.Version)
	}
	require.Nil(t, V1().Record)
	require.Nil(t, V2().Record)
}

func TestBlockCandidates(t *testing.T) {
	coll := []any{
		map[string]any{"name": "Ixalan", "block": "Ixalan"},
		map[string]any{"name": "Rivals of Ixalan", "block": "Ixalan"},
		map[string]any{"name": "Dominaria", "block": nil},
	}
	ctx := func(i int) rules.Context {
		return rules.Context{Record: coll[i].(map[string]any), Collection: coll, Index: i}
	}

	require.Equal(t, []any{"Ixalan"}, blockCandidates(ctx(0)))
	require.Equal(t, []any{"Rivals of Ixalan", "Ixalan"}, blockCandidates(ctx(1)))
	require.Equal(t, []any{"Dominaria", "Ixalan"}, blockCandidates(ctx(2)))

	blockRules := V4().Record.Fields[1].Rules
	continuity := blockRules[len(blockRules)-1]
	require.Equal(t, "block-continuity", continuity.Name)
	require.False(t, continuity.Evaluate(rules.Lookup(ctx(2).Record, "block"), ctx(2)).Passed)
	require.True(t, continuity.Evaluate(rules.Of("Ixalan"), ctx(2)).Passed)
}

func roughDateRule(t *testing.T, c *schema.Collection) rules.Rule {
	t.Helper()
	for _, f := range c.Record.Fields {
		if f.Name == "rough_exit_date" {
			return f.Rules[len(f.Rules)-1]
		}
	}
	t.Fatalf("%s has no rough_exit_date field", c.Version)
	return rules.Rule{}
}

func TestRoughExitDateGrammar(t *testing.T) {
	for _, tc := range []struct {
		schema *schema.Collection
		accept []string
		reject []string
	}{
		{V3(), []string{"late 2021", "early/mid 2022"}, []string{"Q1 2022", "soon"}},
		{V4(), []string{"Q1 2022", "late 2022"}, []string{"early/mid 2022", "2022"}},
	} {
		r := roughDateRule(t, tc.schema)
		for _, in := range tc.accept {
			require.True(t, r.Evaluate(rules.Of(in), rules.Context{}).Passed, "%s should accept %q", tc.schema.Version, in)
		}
		for _, in := range tc.reject {
			require.False(t, r.Evaluate(rules.Of(in), rules.Context{}).Passed, "%s should reject %q", tc.schema.Version, in)
		}
	}
}
