package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/shibotong/OllamaKit/pkg/llm"
)

// Chat sends a chat request and waits for the complete response. The stream
// flag on req is overridden; use ChatStream for streaming. req itself is not
// mutated.
func (c *Client) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	r := *req
	r.Stream = false

	c.logger.Debug("chat request",
		zap.String("model", r.Model),
		zap.Int("message_count", len(r.Messages)),
	)

	httpResp, err := c.post(ctx, "/api/chat", r)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	var resp llm.ChatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	c.logger.Debug("chat response",
		zap.String("model", resp.Model),
		zap.Int("eval_count", resp.EvalCount),
	)

	return &resp, nil
}

// ChatStream sends a chat request and streams the response. fn is invoked
// for every ndjson chunk in order; returning an error from fn stops the
// stream and surfaces that error. The aggregated final response (full
// content and thinking, metrics from the done chunk) is returned once the
// stream completes.
func (c *Client) ChatStream(ctx context.Context, req *llm.ChatRequest, fn func(*llm.StreamChunk) error) (*llm.ChatResponse, error) {
	r := *req
	r.Stream = true

	c.logger.Debug("streaming chat request",
		zap.String("model", r.Model),
		zap.Int("message_count", len(r.Messages)),
	)

	httpResp, err := c.post(ctx, "/api/chat", r)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	var (
		content   strings.Builder
		thinking  strings.Builder
		toolCalls []llm.ToolCall
		final     *llm.ChatResponse
	)

	scanner := bufio.NewScanner(httpResp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var chunk llm.StreamChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			c.logger.Warn("failed to parse chunk", zap.Error(err), zap.ByteString("line", line))
			continue
		}

		content.WriteString(chunk.Message.Content)
		thinking.WriteString(chunk.Message.Thinking)
		toolCalls = append(toolCalls, chunk.Message.ToolCalls...)

		if fn != nil {
			if err := fn(&chunk); err != nil {
				return nil, err
			}
		}

		if chunk.Done {
			final = &llm.ChatResponse{
				Model:     chunk.Model,
				CreatedAt: chunk.CreatedAt,
				Message: llm.Message{
					Role:      llm.RoleAssistant,
					Content:   content.String(),
					Thinking:  thinking.String(),
					ToolCalls: toolCalls,
				},
				Done:               true,
				DoneReason:         chunk.DoneReason,
				TotalDuration:      chunk.TotalDuration,
				LoadDuration:       chunk.LoadDuration,
				PromptEvalCount:    chunk.PromptEvalCount,
				PromptEvalDuration: chunk.PromptEvalDuration,
				EvalCount:          chunk.EvalCount,
				EvalDuration:       chunk.EvalDuration,
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stream: %w", err)
	}
	if final == nil {
		return nil, fmt.Errorf("stream ended without a done chunk")
	}
	return final, nil
}

// Embed computes embeddings for the request inputs.
func (c *Client) Embed(ctx context.Context, req *llm.EmbedRequest) (*llm.EmbedResponse, error) {
	httpResp, err := c.post(ctx, "/api/embed", req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	var resp llm.EmbedResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &resp, nil
}
