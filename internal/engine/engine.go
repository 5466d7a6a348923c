package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrUnexpectedToken is returned when a token cannot appear where it does,
// such as a key inside an array or a closing bracket of the wrong kind.
var ErrUnexpectedToken = errors.New("engine: unexpected token")

// builder is one open container while a value tree is assembled.
type builder struct {
	object  map[string]any // nil for arrays
	array   []any
	key     string
	haveKey bool
}

func (b *builder) value() any {
	if b.object != nil {
		return b.object
	}
	return b.array
}

// DecodeAny builds a generic value tree from the token source. Objects become
// map[string]any, arrays []any (never nil), numbers json.Number. Tokens are
// checked against the open container, and anything after the first complete
// value is rejected.
func DecodeAny(src TokenSource) (any, error) {
	var (
		stack []*builder
		root  any
		done  bool
	)
	// place attaches a finished value to the innermost open container.
	place := func(v any) {
		if len(stack) == 0 {
			root, done = v, true
			return
		}
		top := stack[len(stack)-1]
		if top.object != nil {
			// last occurrence wins
			top.object[top.key] = v
			top.key, top.haveKey = "", false
			return
		}
		top.array = append(top.array, v)
	}

	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			if done {
				return root, nil
			}
			return nil, io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}
		if done {
			return nil, ErrTrailingData
		}

		var top *builder
		if len(stack) > 0 {
			top = stack[len(stack)-1]
		}
		inObject := top != nil && top.object != nil
		if inObject && !top.haveKey && tok.Kind != KindKey && tok.Kind != KindEndObject {
			return nil, fmt.Errorf("%w: %s where an object key is expected", ErrUnexpectedToken, tok.Kind)
		}

		switch tok.Kind {
		case KindKey:
			if !inObject || top.haveKey {
				return nil, fmt.Errorf("%w: key %q", ErrUnexpectedToken, tok.String)
			}
			top.key, top.haveKey = tok.String, true
		case KindBeginObject:
			stack = append(stack, &builder{object: map[string]any{}})
		case KindBeginArray:
			stack = append(stack, &builder{array: []any{}})
		case KindEndObject, KindEndArray:
			if top == nil || inObject != (tok.Kind == KindEndObject) || (inObject && top.haveKey) {
				return nil, fmt.Errorf("%w: %s", ErrUnexpectedToken, tok.Kind)
			}
			stack = stack[:len(stack)-1]
			place(top.value())
		case KindString:
			place(tok.String)
		case KindNumber:
			place(json.Number(tok.Number))
		case KindBool:
			place(tok.Bool)
		case KindNull:
			place(nil)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnexpectedToken, tok.Kind)
		}
	}
}

var kindNames = [...]string{
	KindBeginObject: "'{'",
	KindEndObject:   "'}'",
	KindBeginArray:  "'['",
	KindEndArray:    "']'",
	KindKey:         "key",
	KindString:      "string",
	KindNumber:      "number",
	KindBool:        "boolean",
	KindNull:        "null",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}
