package setcheck

import (
	"errors"
	"io"

	eng "github.com/whatsinstandard/setcheck/internal/engine"
)

// Decode consumes every token of src and builds a generic value tree: objects
// become map[string]any, arrays []any, numbers json.Number. Failures are
// returned as Issues.
func Decode(src Source, opts ...ParseOpt) (any, error) {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	var sink func(eng.SimpleIssue)
	if opt.IssueSink != nil {
		sink = func(si eng.SimpleIssue) {
			opt.IssueSink(Issue{Path: si.Path, Code: si.Code, Message: si.Message, Offset: src.Location()})
		}
	}
	enforced := eng.WrapWithEnforcement(engineTokenSource(src), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		IssueSink:   sink,
	})
	v, err := eng.DecodeAny(enforced)
	if err != nil {
		return nil, toIssues(err)
	}
	return v, nil
}

// DecodeBytes decodes a JSON document held in memory, enforcing MaxBytes up front.
func DecodeBytes(data []byte, opts ...ParseOpt) (any, error) {
	if len(opts) > 0 && opts[len(opts)-1].MaxBytes > 0 && int64(len(data)) > opts[len(opts)-1].MaxBytes {
		return nil, singleIssue(CodeTruncated, "max bytes exceeded")
	}
	return Decode(JSONBytes(data), opts...)
}

// DecodeReader decodes a JSON document from r. The input is read in full, up
// to MaxBytes+1 when a limit is set, and then handled like DecodeBytes.
func DecodeReader(r io.Reader, opts ...ParseOpt) (any, error) {
	if len(opts) > 0 && opts[len(opts)-1].MaxBytes > 0 {
		r = io.LimitReader(r, opts[len(opts)-1].MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, singleIssue(CodeParseError, err.Error())
	}
	return DecodeBytes(data, opts...)
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message, Offset: -1})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Path: "/", Message: err.Error(), Cause: err, Offset: -1})
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Code: code, Path: "/", Message: msg, Offset: -1})
}
