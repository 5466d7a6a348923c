// Package setcheck checks the published sets API documents against the
// contract of their version.
//
// The root package holds the shared pieces:
//
// - Result and Results, the flat (location, rule, outcome, message) records every check produces
// - PathRef, which builds JSON Pointer locations for results
// - Decode and friends, which turn a JSON document into a generic value tree with
//   duplicate-key, depth and size enforcement, reporting problems as Issues
// - the Source/JSONDriver SPI, backed by goccy/go-json by default
//
// Rules live in rules/, per-version contracts in schema/ and registry/, symbol
// file lookups in artifact/, the runner in engine/ and rendering in report/.
// The CLI is cmd/setcheck.
//
// Typical usage:
//
//	e := engine.New(registry.Default(),
//		engine.WithLoader(engine.NewLoader(afero.NewOsFs(), ".")),
//		engine.WithArtifacts(artifact.NewResolver(afero.NewOsFs(), ".")),
//	)
//	reports := e.ValidateAll(ctx)
//	_ = report.WriteText(os.Stdout, reports, report.TextOptions{FailuresOnly: true})
package setcheck
