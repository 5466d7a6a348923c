package registry

import (
	"github.com/whatsinstandard/setcheck/codec"
	"github.com/whatsinstandard/setcheck/rules"
	"github.com/whatsinstandard/setcheck/schema"
)

// Each constructor below authors its version from scratch. Rules that look the
// same across versions are repeated on purpose so that a later edit to one
// version cannot leak into another.

// V1 is retired: the document must stay an empty array.
func V1() *schema.Collection {
	return &schema.Collection{
		Version:                "v1",
		MinItems:               0,
		MaxItems:               0,
		CardinalityDescription: "shouldn't grow",
	}
}

// V2 is retired: the document must stay an empty array.
func V2() *schema.Collection {
	return &schema.Collection{
		Version:                "v2",
		MinItems:               0,
		MaxItems:               0,
		CardinalityDescription: "shouldn't grow",
	}
}

// V3 publishes symbol artwork and coarse "early/mid"/"late" exit dates.
func V3() *schema.Collection {
	return &schema.Collection{
		Version:                "v3",
		MinItems:               schema.Unbounded,
		MaxItems:               6,
		CardinalityDescription: "shouldn't grow",
		Record: &schema.Record{Fields: []schema.Field{
			{Name: "name", Rules: []rules.Rule{
				rules.String(),
				rules.NonEmpty(),
			}},
			{Name: "block", Rules: []rules.Rule{
				rules.StringOrNull(),
				rules.NonEmptyOr("fake block name"),
			}},
			{Name: "code", Rules: []rules.Rule{
				rules.String(),
				rules.Length(3),
				rules.Uppercase(),
			}},
			{Name: "symbol", Rules: []rules.Rule{
				rules.String(),
				rules.Matches("site-url", `^https?://whatsinstandard\.com/.*`, "should be a whatsinstandard.com URL"),
				rules.Matches("image-extension", `^.*\.(svg|jpg)$`, "should be an SVG or JPG"),
				rules.ContainsLower("code", "should be named after the set's lowercase code"),
				rules.FileExists(),
			}},
			{Name: "enter_date", Rules: []rules.Rule{
				rules.String(),
				rules.Date(),
				rules.Midnight(),
			}},
			{Name: "exit_date", Rules: []rules.Rule{
				rules.StringOrNull(),
				rules.DateOr(codec.Epoch),
				rules.MidnightOr(codec.Epoch),
			}},
			{Name: "rough_exit_date", Rules: []rules.Rule{
				rules.String(),
				rules.Matches("rough-date", `(early/mid|late) 20\d\d`, "should be early/mid 20XX or late 20XX"),
			}},
		}},
	}
}

// V4 drops symbols, requires blocks to be contiguous and uses quarter-based
// rough exit dates.
func V4() *schema.Collection {
	return &schema.Collection{
		Version:                "v4",
		MinItems:               8,
		MaxItems:               9,
		CardinalityDescription: "should have between 8 and 9 sets",
		Record: &schema.Record{Fields: []schema.Field{
			{Name: "name", Rules: []rules.Rule{
				rules.String(),
				rules.NonEmpty(),
			}},
			{Name: "block", Rules: []rules.Rule{
				rules.String(),
				rules.NonEmpty(),
				rules.OneOf("block-continuity",
					"should be the same as the previous set's block or equal to this set's name",
					blockCandidates),
			}},
			{Name: "code", Rules: []rules.Rule{
				rules.String(),
				rules.Length(3),
				rules.Uppercase(),
			}},
			{Name: "symbol", Rules: []rules.Rule{
				rules.Undefined(),
			}},
			{Name: "enter_date", Rules: []rules.Rule{
				rules.String(),
				rules.Date(),
				rules.Midnight(),
			}},
			{Name: "exit_date", Rules: []rules.Rule{
				rules.StringOrNull(),
				rules.DateOr(codec.Epoch),
				rules.MidnightOr(codec.Epoch),
			}},
			{Name: "rough_exit_date", Rules: []rules.Rule{
				rules.String(),
				rules.Matches("rough-date", `(Q\d|late) 20\d\d`, "should be QX 20XX or late 20XX"),
			}},
		}},
	}
}

// blockCandidates allows a set to start a block named after itself or to
// continue the block of the set before it. Only string values become
// candidates, so a missing block never matches a missing predecessor.
func blockCandidates(c rules.Context) []any {
	var out []any
	if name, ok := c.Record["name"].(string); ok {
		out = append(out, name)
	}
	if prev, ok := c.Previous(); ok {
		if block, ok := prev["block"].(string); ok {
			out = append(out, block)
		}
	}
	return out
}
