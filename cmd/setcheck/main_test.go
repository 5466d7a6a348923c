package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

const v3Doc = `[
  {
    "name": "Ixalan",
    "block": "Ixalan",
    "code": "XLN",
    "symbol": "http://whatsinstandard.com/images/xln.svg",
    "enter_date": "2017-09-29T00:00:00.000Z",
    "exit_date": null,
    "rough_exit_date": "late 2019"
  }
]`

func v4Doc() string {
	recs := make([]string, 8)
	for i := range recs {
		recs[i] = fmt.Sprintf(`{"name": "Set %[1]d", "block": "Set %[1]d", "code": "S%02[1]d", `+
			`"enter_date": "2022-09-09T00:00:00.000Z", "exit_date": null, "rough_exit_date": "Q3 2024"}`, i)
	}
	return "[" + strings.Join(recs, ",\n") + "]"
}

func fixtureFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range map[string]string{
		"/repo/api/1/sets.json":   `[]`,
		"/repo/api/2/sets.json":   `[]`,
		"/repo/api/3/sets.json":   v3Doc,
		"/repo/api/4/sets.json":   v4Doc(),
		"/repo/images/xln.svg":    `<svg/>`,
		"/repo/config/check.yaml": "root: /repo\nversions: v1,v2\nformat: json\n",
	} {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return fs
}

func runCLI(t *testing.T, fs afero.Fs, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), fs, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_AllPass(t *testing.T) {
	code, out, _ := runCLI(t, fixtureFs(t), "-root", "/repo")

	require.Equal(t, exitOK, code, out)
	require.Contains(t, out, "v3 [passed]")
	require.Contains(t, out, "4 versions: 4 passed, 0 failed, 0 unavailable, 0 unknown")
}

func TestRun_MissingVersionFails(t *testing.T) {
	fs := fixtureFs(t)
	require.NoError(t, fs.Remove("/repo/api/2/sets.json"))

	code, out, stderr := runCLI(t, fs, "-root", "/repo", "-log.level", "error")
	require.Equal(t, exitFailed, code)
	require.Contains(t, out, "v2 [unavailable]")
	require.Contains(t, out, "v4 [passed]")
	require.Contains(t, stderr, "level=error")
}

func TestRun_RuleFailureFails(t *testing.T) {
	fs := fixtureFs(t)
	require.NoError(t, fs.Remove("/repo/images/xln.svg"))

	code, out, _ := runCLI(t, fs, "-root", "/repo", "-versions", "v3", "-failures-only")
	require.Equal(t, exitFailed, code)
	require.Contains(t, out, "FAIL file-exists [missing_artifact]")
	require.NotContains(t, out, "ok   ")
}

func TestRun_SeparateAssetRoot(t *testing.T) {
	fs := fixtureFs(t)
	require.NoError(t, afero.WriteFile(fs, "/site/images/xln.svg", []byte(`<svg/>`), 0o644))
	require.NoError(t, fs.Remove("/repo/images/xln.svg"))

	code, _, _ := runCLI(t, fs, "-root", "/repo", "-assets", "/site", "-versions", "v3")
	require.Equal(t, exitOK, code)
}

func TestRun_UsageErrors(t *testing.T) {
	for name, args := range map[string][]string{
		"unknown flag":    {"-nope"},
		"bad format":      {"-format", "xml"},
		"bad log level":   {"-log.level", "loud"},
		"unknown version": {"-root", "/repo", "-versions", "v9"},
		"missing config":  {"-config", "/nowhere.yaml"},
	} {
		t.Run(name, func(t *testing.T) {
			code, _, _ := runCLI(t, fixtureFs(t), args...)
			require.Equal(t, exitUsage, code)
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	code, out, _ := runCLI(t, fixtureFs(t), "-config", "/repo/config/check.yaml")
	require.Equal(t, exitOK, code)
	require.True(t, strings.HasPrefix(out, "{"), out)
	require.Contains(t, out, `"version": "v2"`)
	require.NotContains(t, out, `"version": "v3"`)

	// Flags win over the file.
	code, out, _ = runCLI(t, fixtureFs(t), "-config", "/repo/config/check.yaml", "-format", "text")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, "2 versions: 2 passed")
}

func TestRun_MetricsTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setcheck.prom")

	code, _, _ := runCLI(t, fixtureFs(t), "-root", "/repo", "-versions", "v1", "-metrics.textfile", path)
	require.Equal(t, exitOK, code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `setcheck_version_validations_total{status="passed",version="v1"} 1`)
}

func TestConfig_ValidateReportsEverything(t *testing.T) {
	cfg := Config{Root: "", Format: "xml", Concurrency: 0, MaxBytes: -1, LogLevel: "loud"}
	err := cfg.Validate()
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 5)
}

func TestConfig_LoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.yaml", []byte("root: /data\nversions: v3,v4\nbase_urls: https://example.org/\nmax_bytes: 1024\n"), 0o644))

	cfg := Config{}
	require.NoError(t, cfg.LoadFile(fs, "/c.yaml"))
	require.Equal(t, "/data", cfg.Root)
	require.Equal(t, []string{"v3", "v4"}, []string(cfg.Versions))
	require.Equal(t, []string{"https://example.org/"}, []string(cfg.BaseURLs))
	require.Equal(t, int64(1024), cfg.MaxBytes)
	require.Equal(t, "/data", cfg.assetRoot())

	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("rooot: /data\n"), 0o644))
	require.Error(t, cfg.LoadFile(fs, "/bad.yaml"))
}
