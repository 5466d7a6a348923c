package setcheck

// Result is the outcome of one rule evaluated at one location.
type Result struct {
	Version string `json:"version"`
	Path    string `json:"path"`             // JSON Pointer of the checked value ("/" for the collection).
	Record  string `json:"record,omitempty"` // Display label of the record; empty at collection level.
	Field   string `json:"field,omitempty"`
	Rule    string `json:"rule"`
	Passed  bool   `json:"passed"`
	Code    string `json:"code,omitempty"` // Set on failures only.
	Message string `json:"message"`
}

// CollectionLevel reports whether the result concerns the whole array.
func (r Result) CollectionLevel() bool { return r.Record == "" && r.Field == "" }

// Results is an ordered list of rule outcomes.
type Results []Result

// Passed reports whether every result passed. An empty list passes.
func (rs Results) Passed() bool {
	for _, r := range rs {
		if !r.Passed {
			return false
		}
	}
	return true
}

// Failures returns the failing results in their original order.
func (rs Results) Failures() Results {
	var out Results
	for _, r := range rs {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the number of passing and failing results.
func (rs Results) Count() (passed, failed int) {
	for _, r := range rs {
		if r.Passed {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}
