package engine

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// SetsFile is the document name inside each version directory.
const SetsFile = "sets.json"

// Loader reads version documents from the published API tree, laid out as
// <Root>/api/<n>/sets.json where <n> is the version id without its "v".
type Loader struct {
	Fs   afero.Fs
	Root string
}

// NewLoader returns a Loader over fs rooted at root.
func NewLoader(fs afero.Fs, root string) *Loader {
	return &Loader{Fs: fs, Root: root}
}

// Path returns the location of the document for version.
func (l *Loader) Path(version string) string {
	return filepath.Join(l.Root, "api", strings.TrimPrefix(version, "v"), SetsFile)
}

// Load reads the raw document for version.
func (l *Loader) Load(version string) ([]byte, error) {
	p := l.Path(version)
	data, err := afero.ReadFile(l.Fs, p)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s document", version)
	}
	return data, nil
}
