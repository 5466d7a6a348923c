// Package schema binds field rules into record and collection contracts.
//
// A Collection is an explicit configuration value: cardinality bounds plus one
// Record schema applied to every element. Versions never share these values;
// see package registry.
package schema

import (
	"fmt"
	"strconv"

	"github.com/whatsinstandard/setcheck"
	"github.com/whatsinstandard/setcheck/rules"
)

// Unbounded disables a cardinality bound.
const Unbounded = -1

// Rule names of the structural checks.
const (
	RuleIsArray     = "is-array"
	RuleCardinality = "cardinality"
	RuleIsObject    = "is-object"
)

// Options carries the capabilities rules may need.
type Options struct {
	Artifacts rules.ArtifactChecker
}

// Field is an ordered list of rules for one record key.
type Field struct {
	Name  string
	Rules []rules.Rule
}

// Record is the per-element contract of one version.
type Record struct {
	Fields []Field
}

// Collection is the contract of a whole version document.
type Collection struct {
	Version string
	// MinItems and MaxItems bound the array length; Unbounded disables a side.
	MinItems int
	MaxItems int
	// CardinalityDescription overrides the generated cardinality message.
	CardinalityDescription string
	// Record is applied to every element; nil means elements are not inspected.
	Record *Record
}

// Validate checks doc against the collection. A doc that is not an array yields
// exactly one failing result and nothing else.
func (c *Collection) Validate(doc any, opts Options) setcheck.Results {
	root := setcheck.Root(c.Version)
	arr, ok := doc.([]any)
	if !ok {
		return setcheck.Results{root.Fail(RuleIsArray, setcheck.CodeInvalidType,
			fmt.Sprintf("should be an array: got %s", shapeOf(doc)))}
	}
	out := setcheck.Results{root.Pass(RuleIsArray, "should be an array")}
	out = append(out, c.cardinality(root, len(arr)))
	if c.Record == nil {
		return out
	}
	for i := range arr {
		out = append(out, c.Record.Validate(root, arr, i, opts)...)
	}
	return out
}

func (c *Collection) cardinality(root setcheck.PathRef, n int) setcheck.Result {
	desc := c.CardinalityDescription
	if desc == "" {
		desc = c.boundsText()
	}
	switch {
	case c.MinItems != Unbounded && n < c.MinItems:
		return root.Fail(RuleCardinality, setcheck.CodeTooSmall, fmt.Sprintf("%s: got %d", desc, n))
	case c.MaxItems != Unbounded && n > c.MaxItems:
		return root.Fail(RuleCardinality, setcheck.CodeTooBig, fmt.Sprintf("%s: got %d", desc, n))
	}
	return root.Pass(RuleCardinality, desc)
}

func (c *Collection) boundsText() string {
	switch {
	case c.MinItems == Unbounded && c.MaxItems == Unbounded:
		return "may have any number of sets"
	case c.MinItems == c.MaxItems:
		return fmt.Sprintf("should have exactly %d sets", c.MinItems)
	case c.MinItems == Unbounded:
		return fmt.Sprintf("should have at most %d sets", c.MaxItems)
	case c.MaxItems == Unbounded:
		return fmt.Sprintf("should have at least %d sets", c.MinItems)
	}
	return fmt.Sprintf("should have between %d and %d sets", c.MinItems, c.MaxItems)
}

// Validate evaluates every rule of every field for collection[index]. Rules
// never short-circuit: a failing rule does not hide the ones after it.
func (r *Record) Validate(root setcheck.PathRef, collection []any, index int, opts Options) setcheck.Results {
	elem := collection[index]
	at := root.Index(index)
	label := Label(elem, index)
	rec, isObject := elem.(map[string]any)

	var out setcheck.Results
	if !isObject {
		res := at.Fail(RuleIsObject, setcheck.CodeInvalidType, fmt.Sprintf("should be an object: got %s", shapeOf(elem)))
		res.Record = label
		out = append(out, res)
	}
	ctx := rules.Context{Record: rec, Collection: collection, Index: index, Artifacts: opts.Artifacts}
	for _, f := range r.Fields {
		fp := at.Field(f.Name)
		v := rules.Lookup(rec, f.Name)
		for _, rule := range f.Rules {
			o := rule.Evaluate(v, ctx)
			var res setcheck.Result
			if o.Passed {
				res = fp.Pass(rule.Name, rule.Description)
			} else {
				res = fp.Fail(rule.Name, o.Code, rule.Description+": "+o.Message)
			}
			res.Record = label
			res.Field = f.Name
			out = append(out, res)
		}
	}
	return out
}

// Label names a record in reports: its name when it has one, its index otherwise.
func Label(elem any, index int) string {
	if rec, ok := elem.(map[string]any); ok {
		if name, ok := rec["name"].(string); ok && name != "" {
			return name
		}
	}
	return "#" + strconv.Itoa(index)
}

func shapeOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	return "number"
}
