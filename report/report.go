// Package report renders engine results for people and machines.
package report

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/xlab/treeprint"

	"github.com/whatsinstandard/setcheck"
	"github.com/whatsinstandard/setcheck/engine"
)

// Summary reduces a run to totals.
type Summary struct {
	Versions    int `json:"versions"`
	Passed      int `json:"passed"`
	Failed      int `json:"failed"`
	Unavailable int `json:"unavailable"`
	Unknown     int `json:"unknown"`

	RulesPassed int `json:"rules_passed"`
	RulesFailed int `json:"rules_failed"`

	// Notes are informational and never change OK.
	Notes []string `json:"notes,omitempty"`
	OK    bool     `json:"ok"`
}

// Summarize counts the reports. OK holds only when every version passed; an
// empty run is not OK.
func Summarize(reports []engine.VersionReport) Summary {
	s := Summary{Versions: len(reports)}
	for _, r := range reports {
		switch r.Status {
		case engine.StatusPassed:
			s.Passed++
		case engine.StatusFailed:
			s.Failed++
		case engine.StatusUnavailable:
			s.Unavailable++
		case engine.StatusUnknownVersion:
			s.Unknown++
		}
		p, f := r.Results.Count()
		s.RulesPassed += p
		s.RulesFailed += f
		for _, n := range r.Notes {
			s.Notes = append(s.Notes, r.Version+": "+n)
		}
	}
	s.OK = s.Versions > 0 && s.Passed == s.Versions
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d versions: %d passed, %d failed, %d unavailable, %d unknown; rules: %d passed, %d failed",
		s.Versions, s.Passed, s.Failed, s.Unavailable, s.Unknown, s.RulesPassed, s.RulesFailed)
}

// TextOptions controls WriteText.
type TextOptions struct {
	// FailuresOnly hides passing rules and records without failures.
	FailuresOnly bool
}

// WriteText prints one tree per version (version, record, field, rule)
// followed by the summary.
func WriteText(w io.Writer, reports []engine.VersionReport, opts TextOptions) error {
	for _, r := range reports {
		if _, err := io.WriteString(w, versionTree(r, opts).String()); err != nil {
			return err
		}
	}
	s := Summarize(reports)
	for _, n := range s.Notes {
		if _, err := fmt.Fprintf(w, "note: %s\n", n); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, s.String())
	return err
}

func versionTree(r engine.VersionReport, opts TextOptions) treeprint.Tree {
	p, f := r.Results.Count()
	tree := treeprint.NewWithRoot(fmt.Sprintf("%s [%s] %d passed, %d failed", r.Version, r.Status, p, f))
	if r.Error != "" {
		tree.AddNode("error: " + r.Error)
	}

	var (
		recordKey string
		record    treeprint.Tree
		fieldName string
		field     treeprint.Tree
	)
	for _, res := range r.Results {
		if opts.FailuresOnly && res.Passed {
			continue
		}
		if res.CollectionLevel() {
			tree.AddNode(line(res))
			record, field = nil, nil
			continue
		}
		if key := recordSegment(res.Path); record == nil || key != recordKey {
			recordKey = key
			record = tree.AddBranch(fmt.Sprintf("%s (/%s)", res.Record, key))
			field = nil
		}
		if res.Field == "" {
			record.AddNode(line(res))
			continue
		}
		if field == nil || res.Field != fieldName {
			fieldName = res.Field
			field = record.AddBranch(res.Field)
		}
		field.AddNode(line(res))
	}
	return tree
}

func line(r setcheck.Result) string {
	if r.Passed {
		return "ok   " + r.Rule
	}
	return fmt.Sprintf("FAIL %s [%s]: %s", r.Rule, r.Code, r.Message)
}

// recordSegment returns the array index segment of a record-level pointer.
func recordSegment(pointer string) string {
	seg, _, _ := strings.Cut(strings.TrimPrefix(pointer, "/"), "/")
	return seg
}

type jsonReport struct {
	Summary  Summary                `json:"summary"`
	Versions []engine.VersionReport `json:"versions"`
}

// WriteJSON writes the reports and their summary as one JSON object. With
// failuresOnly, passing results are dropped from every version.
func WriteJSON(w io.Writer, reports []engine.VersionReport, failuresOnly bool) error {
	out := jsonReport{Summary: Summarize(reports), Versions: reports}
	if failuresOnly {
		out.Versions = make([]engine.VersionReport, len(reports))
		for i, r := range reports {
			r.Results = r.Results.Failures()
			out.Versions[i] = r
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
