// Package llm provides the wire representations of Ollama chat API requests
// and responses, and the encoding rules that produce the flat request object
// the API expects.
package llm

import "strconv"

// ErrorResponse represents an error returned by the Ollama API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DuplicateKeyError reports a key written twice into one flat request
// object, e.g. an options bundle field colliding with a fixed request field.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return "llm: duplicate key " + strconv.Quote(e.Key) + " in request object"
}

// UnknownRoleError reports a message role outside the four known tags.
type UnknownRoleError struct {
	Role string
}

func (e *UnknownRoleError) Error() string {
	return "llm: unknown message role " + strconv.Quote(e.Role)
}
