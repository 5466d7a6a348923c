package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/grafana/dskit/flagext"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Config holds every CLI setting. Values can come from a YAML file and flags;
// explicitly set flags win over the file.
type Config struct {
	ConfigFile string `yaml:"-"`

	Root            string                 `yaml:"root"`
	Assets          string                 `yaml:"assets"`
	Versions        flagext.StringSliceCSV `yaml:"versions"`
	BaseURLs        flagext.StringSliceCSV `yaml:"base_urls"`
	MaxBytes        int64                  `yaml:"max_bytes"`
	MaxDepth        int                    `yaml:"max_depth"`
	Concurrency     int                    `yaml:"concurrency"`
	Format          string                 `yaml:"format"`
	FailuresOnly    bool                   `yaml:"failures_only"`
	LogLevel        string                 `yaml:"log_level"`
	MetricsTextfile string                 `yaml:"metrics_textfile"`
}

func (c *Config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&c.ConfigFile, "config", "", "Optional YAML file with settings. Flags given on the command line override it.")
	f.StringVar(&c.Root, "root", ".", "Repository root holding api/<n>/sets.json.")
	f.StringVar(&c.Assets, "assets", "", "Directory symbol URLs resolve against. Defaults to -root.")
	f.Var(&c.Versions, "versions", "Comma-separated versions to check. Empty checks every registered version.")
	f.Var(&c.BaseURLs, "base-urls", "Comma-separated URL prefixes stripped from symbol URLs. Empty uses the published site URLs.")
	f.Int64Var(&c.MaxBytes, "max-bytes", 16<<20, "Reject documents larger than this many bytes. 0 disables the limit.")
	f.IntVar(&c.MaxDepth, "max-depth", 64, "Reject documents nested deeper than this. 0 disables the limit.")
	f.IntVar(&c.Concurrency, "concurrency", 4, "How many versions to check at once.")
	f.StringVar(&c.Format, "format", formatText, fmt.Sprintf("Output format. Accepted values: %s or %s.", formatText, formatJSON))
	f.BoolVar(&c.FailuresOnly, "failures-only", false, "Only print failing rules.")
	f.StringVar(&c.LogLevel, "log.level", "warn", "Only log messages at or above this level. Accepted values: "+strings.Join(logLevels, ", ")+".")
	f.StringVar(&c.MetricsTextfile, "metrics.textfile", "", "If set, write run metrics to this file in the Prometheus text format.")
}

// LoadFile reads the YAML file at path into c.
func (c *Config) LoadFile(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.Wrap(err, "read config file")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return errors.Wrapf(err, "parse config file %s", path)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if c.Root == "" {
		err = multierr.Append(err, errors.New("root must not be empty"))
	}
	if c.Format != formatText && c.Format != formatJSON {
		err = multierr.Append(err, fmt.Errorf("unsupported format %q", c.Format))
	}
	if c.Concurrency < 1 {
		err = multierr.Append(err, fmt.Errorf("concurrency must be positive, got %d", c.Concurrency))
	}
	if c.MaxBytes < 0 {
		err = multierr.Append(err, fmt.Errorf("max bytes must not be negative, got %d", c.MaxBytes))
	}
	if c.MaxDepth < 0 {
		err = multierr.Append(err, fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth))
	}
	if _, ok := levelFilter(c.LogLevel); !ok {
		err = multierr.Append(err, fmt.Errorf("unsupported log level %q", c.LogLevel))
	}
	return err
}

// assetRoot is where symbol files live.
func (c *Config) assetRoot() string {
	if c.Assets != "" {
		return c.Assets
	}
	return c.Root
}

func nonEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func levelFilter(lvl string) (level.Option, bool) {
	switch lvl {
	case "debug":
		return level.AllowDebug(), true
	case "info":
		return level.AllowInfo(), true
	case "warn":
		return level.AllowWarn(), true
	case "error":
		return level.AllowError(), true
	}
	return nil, false
}

func newLogger(w log.Logger, lvl string) log.Logger {
	opt, ok := levelFilter(lvl)
	if !ok {
		opt = level.AllowWarn()
	}
	logger := log.With(w, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(logger, opt)
}
