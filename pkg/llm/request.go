package llm

import (
	"encoding/json"

	"github.com/shibotong/OllamaKit/pkg/jsonvalue"
)

// ChatRequest represents a chat completion request (Ollama-compatible).
//
// Marshaling produces one flat JSON object with the keys in this order:
// stream, model, messages, then tools/format/think when non-nil, then the
// fields of Options. Optional keys are omitted entirely, never written as
// null. A nil Messages slice still encodes the messages key as [].
//
// The request does not validate itself: a non-empty Model, a non-empty
// Messages history, and sensible role/field combinations are the caller's
// responsibility, matching the API's own tolerance.
//
// Options may be set or replaced after construction, up until the request is
// marshaled. Requests must not be mutated concurrently with marshaling;
// distinct requests may be marshaled concurrently.
type ChatRequest struct {
	Stream   bool      `json:"stream"`
	Model    string    `json:"model"` // Model name (e.g., "llama3.2", "qwen3")
	Messages []Message `json:"messages"`

	// Tools the model may call, each a caller-defined schema
	Tools []jsonvalue.Value `json:"tools,omitempty"`

	// Format constrains the response ("json" or a JSON schema)
	Format *jsonvalue.Value `json:"format,omitempty"`

	// Think toggles or configures reasoning (boolean or structured,
	// depending on the model)
	Think *jsonvalue.Value `json:"think,omitempty"`

	// Options are generation parameters, flattened into the same object
	Options *Options `json:"-"`
}

// MarshalJSON implements the flat request encoding. Options fields are
// merged into the top-level object rather than nested under an "options"
// key; a collision between an options field and a fixed key fails with a
// DuplicateKeyError.
func (r ChatRequest) MarshalJSON() ([]byte, error) {
	enc := NewObjectEncoder()

	enc.Field("stream", r.Stream)
	enc.Field("model", r.Model)

	messages := r.Messages
	if messages == nil {
		messages = []Message{}
	}
	enc.Field("messages", messages)

	if r.Tools != nil {
		enc.Field("tools", r.Tools)
	}
	if r.Format != nil {
		enc.Field("format", r.Format)
	}
	if r.Think != nil {
		enc.Field("think", r.Think)
	}

	if r.Options != nil {
		r.Options.AppendFields(enc)
	}

	return enc.Finish()
}

// UnmarshalJSON reverses the flat encoding: known option keys found at the
// top level of the object are collected back into Options. Options stays nil
// when the object carries none of them. Unknown keys are ignored.
func (r *ChatRequest) UnmarshalJSON(data []byte) error {
	type plain ChatRequest
	var req plain
	if err := json.Unmarshal(data, &req); err != nil {
		return err
	}

	var opts Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return err
	}
	if opts.Temperature != nil || opts.TopP != nil || opts.TopK != nil ||
		opts.Seed != nil || opts.NumPredict != nil || opts.NumCtx != nil ||
		opts.RepeatPenalty != nil || opts.RepeatLastN != nil || opts.Stop != nil {
		req.Options = &opts
	}

	*r = ChatRequest(req)
	return nil
}
