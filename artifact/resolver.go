// Package artifact maps symbol URLs to files under a local asset root.
package artifact

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultBaseURLs are the URL prefixes the published site serves assets from.
var DefaultBaseURLs = []string{
	"http://whatsinstandard.com/",
	"https://whatsinstandard.com/",
}

// Resolver resolves symbol URLs against Root on Fs. It only ever stats files.
type Resolver struct {
	Fs       afero.Fs
	Root     string
	BaseURLs []string
}

// NewResolver returns a Resolver over fs rooted at root using DefaultBaseURLs.
func NewResolver(fs afero.Fs, root string) *Resolver {
	return &Resolver{Fs: fs, Root: root, BaseURLs: DefaultBaseURLs}
}

// Resolve strips the first matching base URL and returns the local path. ok is
// false when the URL is not under any base or escapes the root.
func (r *Resolver) Resolve(symbolURL string) (string, bool) {
	for _, base := range r.BaseURLs {
		rel, found := strings.CutPrefix(symbolURL, base)
		if !found {
			continue
		}
		clean := path.Clean("/" + rel)
		if clean == "/" {
			return "", false
		}
		return filepath.Join(r.Root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), true
	}
	return "", false
}

// Exists reports whether p is a regular file. Any stat error counts as absent.
func (r *Resolver) Exists(p string) bool {
	fi, err := r.Fs.Stat(p)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}

// Check resolves and stats symbolURL in one step.
func (r *Resolver) Check(symbolURL string) (string, bool) {
	p, ok := r.Resolve(symbolURL)
	if !ok {
		return symbolURL, false
	}
	return p, r.Exists(p)
}
