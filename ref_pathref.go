package setcheck

import (
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way and creates Results.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Pass(rule, msg string) Result
	Fail(rule, code, msg string) Result
}

// Root returns the PathRef of the document root for the given version.
func Root(version string) PathRef { return &pathRef{version: version} }

// At parses a JSON Pointer into a PathRef.
func At(version, pointer string) PathRef {
	p := &pathRef{version: version}
	for _, part := range strings.Split(pointer, "/") {
		if part == "" {
			continue
		}
		p.parts = append(p.parts, part)
	}
	return p
}

type pathRef struct {
	version string
	parts   []string
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	return &pathRef{version: p.version, parts: append(append([]string{}, p.parts...), pointerEscaper.Replace(name))}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{version: p.version, parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p *pathRef) Pass(rule, msg string) Result {
	return Result{Version: p.version, Path: p.Pointer(), Rule: rule, Passed: true, Message: msg}
}

func (p *pathRef) Fail(rule, code, msg string) Result {
	return Result{Version: p.version, Path: p.Pointer(), Rule: rule, Code: code, Message: msg}
}
