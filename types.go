package setcheck

// Severity expresses how a decoding finding is treated.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn (reported to the sink) or Error (aborts decoding).
}

// ParseOpt bundles decoding options.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int   // 0 means unlimited.
	MaxBytes   int64 // 0 means unlimited.
	// IssueSink receives non-fatal findings such as duplicate keys in Warn mode.
	IssueSink func(Issue)
}
