package llm_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shibotong/OllamaKit/pkg/llm"
)

func TestChatResponseDecodeKeepsContext(t *testing.T) {
	raw := `{"model":"llama3","created_at":"2024-01-01T00:00:00Z",` +
		`"message":{"role":"assistant","content":"hi"},"done":true,"context":[1,2,3]}`

	var resp llm.ChatResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	assert.Equal(t, []int{1, 2, 3}, resp.Context)

	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"context":[1,2,3]`)
}

func TestChatResponseOmitsAbsentContext(t *testing.T) {
	out, err := json.Marshal(llm.ChatResponse{Model: "llama3"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "context")
}
