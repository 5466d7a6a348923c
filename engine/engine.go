// Package engine runs version schemas over API documents and collects results.
package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/whatsinstandard/setcheck"
	"github.com/whatsinstandard/setcheck/registry"
	"github.com/whatsinstandard/setcheck/rules"
	"github.com/whatsinstandard/setcheck/schema"
)

// Status is the overall state of one version after a run.
type Status string

const (
	StatusPassed         Status = "passed"
	StatusFailed         Status = "failed"
	StatusUnavailable    Status = "unavailable"
	StatusUnknownVersion Status = "unknown_version"
)

// VersionReport holds every result of one version.
type VersionReport struct {
	Version  string           `json:"version"`
	Status   Status           `json:"status"`
	Results  setcheck.Results `json:"results"`
	Notes    []string         `json:"notes,omitempty"`
	Error    string           `json:"error,omitempty"`
	Duration time.Duration    `json:"duration_ns"`

	Err error `json:"-"`
}

// OK reports whether the version passed every rule.
func (r VersionReport) OK() bool { return r.Status == StatusPassed }

// Option configures an Engine.
type Option func(*Engine)

// WithArtifacts sets the capability used by file-existence rules.
func WithArtifacts(a rules.ArtifactChecker) Option { return func(e *Engine) { e.artifacts = a } }

// WithLoader sets where ValidateVersion reads documents from.
func WithLoader(l *Loader) Option { return func(e *Engine) { e.loader = l } }

// WithLogger sets the logger. The default discards everything.
func WithLogger(l log.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithRegisterer registers the engine metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option { return func(e *Engine) { e.reg = reg } }

// WithConcurrency bounds how many versions ValidateAll checks at once.
func WithConcurrency(n int) Option { return func(e *Engine) { e.concurrency = n } }

// WithParseOpt sets decoding limits. The issue sink is owned by the engine.
func WithParseOpt(opt setcheck.ParseOpt) Option { return func(e *Engine) { e.parseOpt = opt } }

// Engine validates documents against the schemas of a registry. It holds no
// per-run state, so one Engine may serve concurrent runs.
type Engine struct {
	registry    *registry.Registry
	artifacts   rules.ArtifactChecker
	loader      *Loader
	logger      log.Logger
	reg         prometheus.Registerer
	metrics     *metrics
	concurrency int
	parseOpt    setcheck.ParseOpt
}

// New returns an Engine over reg.
func New(reg *registry.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry:    reg,
		logger:      log.NewNopLogger(),
		concurrency: 4,
		parseOpt:    setcheck.ParseOpt{Strictness: setcheck.Strictness{OnDuplicateKey: setcheck.Warn}},
	}
	for _, o := range opts {
		o(e)
	}
	if e.concurrency < 1 {
		e.concurrency = 1
	}
	e.metrics = newMetrics(e.reg)
	return e
}

// Validate checks an already decoded document.
func (e *Engine) Validate(version string, doc any) VersionReport {
	start := time.Now()
	r := e.check(version, doc)
	return e.finish(r, start)
}

// check runs the schema of version over doc without recording the outcome.
func (e *Engine) check(version string, doc any) VersionReport {
	c, err := e.registry.Lookup(version)
	if err != nil {
		return VersionReport{Version: version, Status: StatusUnknownVersion, Err: err}
	}
	results := c.Validate(doc, schema.Options{Artifacts: e.artifacts})
	return VersionReport{Version: version, Results: results, Notes: duplicateNotes(doc)}
}

// NoteKeys are the record keys checked for repeated values. Repeats are
// reported as notes only and never fail a version.
var NoteKeys = []string{"code", "name"}

func duplicateNotes(doc any) []string {
	arr, ok := doc.([]any)
	if !ok {
		return nil
	}
	var notes []string
	for _, key := range NoteKeys {
		dups := rules.Duplicates(arr, key)
		vals := make([]string, 0, len(dups))
		for v := range dups {
			vals = append(vals, v)
		}
		sort.Strings(vals)
		for _, v := range vals {
			notes = append(notes, fmt.Sprintf("%s %q appears at indexes %v", key, v, dups[v]))
		}
	}
	return notes
}

// ValidateDocument decodes data and checks it. A document that is not valid
// JSON is reported as a single failing is-array result.
func (e *Engine) ValidateDocument(ctx context.Context, version string, data []byte) VersionReport {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return e.finish(VersionReport{Version: version, Status: StatusUnavailable, Err: err}, start)
	}
	if _, err := e.registry.Lookup(version); err != nil {
		return e.finish(VersionReport{Version: version, Status: StatusUnknownVersion, Err: err}, start)
	}
	logger := log.With(e.logger, "version", version)

	opt := e.parseOpt
	opt.IssueSink = func(iss setcheck.Issue) {
		level.Warn(logger).Log("msg", "suspicious input", "code", iss.Code, "path", iss.Path, "detail", iss.Message)
	}
	doc, err := setcheck.DecodeBytes(data, opt)
	if err != nil {
		level.Debug(logger).Log("msg", "document does not decode", "err", err)
		res := setcheck.Root(version).Fail(schema.RuleIsArray, setcheck.CodeParseError, "should be an array: "+err.Error())
		return e.finish(VersionReport{Version: version, Results: setcheck.Results{res}}, start)
	}
	return e.finish(e.check(version, doc), start)
}

// ValidateVersion loads the document of version and checks it. A document that
// cannot be read yields StatusUnavailable and no results.
func (e *Engine) ValidateVersion(ctx context.Context, version string) VersionReport {
	start := time.Now()
	if e.loader == nil {
		return e.finish(VersionReport{Version: version, Status: StatusUnavailable, Err: fmt.Errorf("no loader configured")}, start)
	}
	if _, err := e.registry.Lookup(version); err != nil {
		return e.finish(VersionReport{Version: version, Status: StatusUnknownVersion, Err: err}, start)
	}
	data, err := e.loader.Load(version)
	if err != nil {
		return e.finish(VersionReport{Version: version, Status: StatusUnavailable, Err: err}, start)
	}
	return e.ValidateDocument(ctx, version, data)
}

// ValidateAll checks every registered version.
func (e *Engine) ValidateAll(ctx context.Context) []VersionReport {
	return e.ValidateVersions(ctx, e.registry.Versions())
}

// ValidateVersions checks the given versions concurrently and returns their
// reports in the same order. A failing version never hides the others.
func (e *Engine) ValidateVersions(ctx context.Context, versions []string) []VersionReport {
	out := make([]VersionReport, len(versions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, v := range versions {
		g.Go(func() error {
			out[i] = e.ValidateVersion(gctx, v)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (e *Engine) finish(r VersionReport, start time.Time) VersionReport {
	if r.Status == "" {
		r.Status = StatusFailed
		if r.Results.Passed() {
			r.Status = StatusPassed
		}
	}
	if r.Err != nil {
		r.Error = r.Err.Error()
	}
	r.Duration = time.Since(start)

	logger := log.With(e.logger, "version", r.Version, "status", r.Status, "duration", r.Duration)
	switch r.Status {
	case StatusPassed:
		level.Info(logger).Log("msg", "version validated", "results", len(r.Results))
	case StatusFailed:
		level.Info(logger).Log("msg", "version has failing rules", "failures", len(r.Results.Failures()))
	default:
		level.Error(logger).Log("msg", "version not validated", "err", r.Err)
	}
	e.metrics.observe(r)
	return r
}
