package llm

import (
	"bytes"
	"encoding/json"
)

// ObjectEncoder writes one flat JSON object field by field, in the order the
// fields are appended. It exists so independently-defined field sets (the
// fixed request fields and the options bundle) can share a single output
// object instead of nesting.
//
// The duplicate-key policy is reject: appending a key that was already
// written records a DuplicateKeyError, which Finish returns.
type ObjectEncoder struct {
	buf  bytes.Buffer
	seen map[string]struct{}
	err  error
}

// NewObjectEncoder opens a new flat object.
func NewObjectEncoder() *ObjectEncoder {
	e := &ObjectEncoder{seen: make(map[string]struct{})}
	e.buf.WriteByte('{')
	return e
}

// Field appends one key/value pair. The value is encoded with encoding/json,
// so jsonvalue.Value fields keep their deterministic member order. Errors are
// sticky; after the first failure further fields are ignored.
func (e *ObjectEncoder) Field(key string, value any) {
	if e.err != nil {
		return
	}
	if _, dup := e.seen[key]; dup {
		e.err = &DuplicateKeyError{Key: key}
		return
	}
	e.seen[key] = struct{}{}

	encoded, err := json.Marshal(value)
	if err != nil {
		e.err = err
		return
	}

	if len(e.seen) > 1 {
		e.buf.WriteByte(',')
	}
	k, err := json.Marshal(key)
	if err != nil {
		e.err = err
		return
	}
	e.buf.Write(k)
	e.buf.WriteByte(':')
	e.buf.Write(encoded)
}

// Finish closes the object and returns its bytes, or the first error
// recorded while appending fields.
func (e *ObjectEncoder) Finish() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.buf.WriteByte('}')
	return e.buf.Bytes(), nil
}
