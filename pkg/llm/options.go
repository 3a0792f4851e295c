package llm

// Options contains model inference parameters. Every field is optional; nil
// fields are never encoded.
//
// Ollama expects these parameters alongside model and messages in one flat
// request object, so Options does not marshal to its own sub-document.
// Instead AppendFields writes the set fields into an already-open object.
type Options struct {
	// Sampling parameters
	Temperature *float64 `json:"temperature,omitempty"` // Creativity (0.0-2.0)
	TopP        *float64 `json:"top_p,omitempty"`       // Nucleus sampling threshold
	TopK        *int     `json:"top_k,omitempty"`       // Top-k sampling
	Seed        *int     `json:"seed,omitempty"`        // Random seed for reproducibility

	// Length parameters
	NumPredict *int `json:"num_predict,omitempty"` // Max tokens to generate
	NumCtx     *int `json:"num_ctx,omitempty"`     // Context window size

	// Repetition control
	RepeatPenalty *float64 `json:"repeat_penalty,omitempty"` // Penalty for repeating tokens
	RepeatLastN   *int     `json:"repeat_last_n,omitempty"`  // Tokens to consider for penalty

	// Stop sequences
	Stop []string `json:"stop,omitempty"` // Stop generation at these sequences
}

// AppendFields writes every set option into enc, in declaration order. It
// never opens an object of its own; the caller owns the enclosing container.
// A key already written by the caller surfaces as a DuplicateKeyError from
// the encoder's Finish.
func (o *Options) AppendFields(enc *ObjectEncoder) {
	if o.Temperature != nil {
		enc.Field("temperature", *o.Temperature)
	}
	if o.TopP != nil {
		enc.Field("top_p", *o.TopP)
	}
	if o.TopK != nil {
		enc.Field("top_k", *o.TopK)
	}
	if o.Seed != nil {
		enc.Field("seed", *o.Seed)
	}
	if o.NumPredict != nil {
		enc.Field("num_predict", *o.NumPredict)
	}
	if o.NumCtx != nil {
		enc.Field("num_ctx", *o.NumCtx)
	}
	if o.RepeatPenalty != nil {
		enc.Field("repeat_penalty", *o.RepeatPenalty)
	}
	if o.RepeatLastN != nil {
		enc.Field("repeat_last_n", *o.RepeatLastN)
	}
	if o.Stop != nil {
		enc.Field("stop", o.Stop)
	}
}
