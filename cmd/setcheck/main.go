// Command setcheck validates the published sets API documents of every
// version against their schemas.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"

	"github.com/whatsinstandard/setcheck"
	"github.com/whatsinstandard/setcheck/artifact"
	"github.com/whatsinstandard/setcheck/engine"
	"github.com/whatsinstandard/setcheck/registry"
	"github.com/whatsinstandard/setcheck/report"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fs := afero.NewReadOnlyFs(afero.NewOsFs())
	os.Exit(run(ctx, fs, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, fs afero.Fs, args []string, stdout, stderr io.Writer) int {
	cfg := Config{}
	flags := flag.NewFlagSet("setcheck", flag.ContinueOnError)
	flags.SetOutput(stderr)
	cfg.RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}
	if cfg.ConfigFile != "" {
		if err := cfg.LoadFile(fs, cfg.ConfigFile); err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		// Parse again so flags given on the command line override the file.
		if err := flags.Parse(args); err != nil {
			return exitUsage
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "invalid configuration:", err)
		return exitUsage
	}

	logger := newLogger(log.NewLogfmtLogger(log.NewSyncWriter(stderr)), cfg.LogLevel)

	resolver := artifact.NewResolver(fs, cfg.assetRoot())
	if urls := nonEmpty(cfg.BaseURLs); len(urls) > 0 {
		resolver.BaseURLs = urls
	}
	reg := prometheus.NewRegistry()
	versions := registry.Default()
	e := engine.New(versions,
		engine.WithArtifacts(resolver),
		engine.WithLoader(engine.NewLoader(fs, cfg.Root)),
		engine.WithLogger(logger),
		engine.WithRegisterer(reg),
		engine.WithConcurrency(cfg.Concurrency),
		engine.WithParseOpt(setcheck.ParseOpt{
			Strictness: setcheck.Strictness{OnDuplicateKey: setcheck.Warn},
			MaxBytes:   cfg.MaxBytes,
			MaxDepth:   cfg.MaxDepth,
		}),
	)

	selected := nonEmpty(cfg.Versions)
	if len(selected) == 0 {
		selected = versions.Versions()
	}
	for _, v := range selected {
		if _, err := versions.Lookup(v); err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
	}
	level.Debug(logger).Log("msg", "checking versions", "versions", fmt.Sprint(selected), "root", cfg.Root)
	reports := e.ValidateVersions(ctx, selected)

	var err error
	switch cfg.Format {
	case formatJSON:
		err = report.WriteJSON(stdout, reports, cfg.FailuresOnly)
	default:
		err = report.WriteText(stdout, reports, report.TextOptions{FailuresOnly: cfg.FailuresOnly})
	}
	if err != nil {
		level.Error(logger).Log("msg", "failed to write report", "err", err)
		return exitFailed
	}

	if cfg.MetricsTextfile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsTextfile, reg); err != nil {
			level.Error(logger).Log("msg", "failed to write metrics", "path", cfg.MetricsTextfile, "err", err)
		}
	}

	if !report.Summarize(reports).OK {
		return exitFailed
	}
	return exitOK
}
