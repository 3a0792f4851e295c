package llm

// EmbedRequest represents an embedding request. Like ChatRequest, it
// marshals to one flat object with Options fields merged at the top level.
type EmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`

	Options *Options `json:"-"`
}

// MarshalJSON writes model, input, then the options fields, with the same
// reject-on-duplicate policy as ChatRequest.
func (r EmbedRequest) MarshalJSON() ([]byte, error) {
	enc := NewObjectEncoder()

	enc.Field("model", r.Model)

	input := r.Input
	if input == nil {
		input = []string{}
	}
	enc.Field("input", input)

	if r.Options != nil {
		r.Options.AppendFields(enc)
	}

	return enc.Finish()
}

// EmbedResponse represents an embedding response.
type EmbedResponse struct {
	Model           string      `json:"model"`
	Embeddings      [][]float64 `json:"embeddings"`
	TotalDuration   int64       `json:"total_duration,omitempty"`
	LoadDuration    int64       `json:"load_duration,omitempty"`
	PromptEvalCount int         `json:"prompt_eval_count,omitempty"`
}
