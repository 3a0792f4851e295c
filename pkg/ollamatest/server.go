// Package ollamatest provides an in-process fake Ollama server for tests.
// It implements the chat, embed, tags and version endpoints against scripted
// replies and records every request body it receives.
package ollamatest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/shibotong/OllamaKit/pkg/llm"
)

// Config scripts the fake server's behavior. Zero values get test defaults.
type Config struct {
	// Reply is the assistant content returned by /api/chat
	Reply string

	// Thinking, when set, is streamed/returned as the thinking field
	Thinking string

	// Models served by /api/tags
	Models []string

	// Version reported by /api/version
	Version string
}

// Server is a fake Ollama API bound to a loopback port.
type Server struct {
	config Config
	app    *fiber.App
	ln     net.Listener

	mu       sync.Mutex
	requests [][]byte
}

// New creates a fake server. Call Start to bind it.
func New(config Config) *Server {
	if config.Reply == "" {
		config.Reply = "Hello from the fake model."
	}
	if config.Models == nil {
		config.Models = []string{"llama3:latest"}
	}
	if config.Version == "" {
		config.Version = "0.0.0-test"
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		StreamRequestBody:     true,
	})

	s := &Server{config: config, app: app}

	app.Post("/api/chat", s.handleChat)
	app.Post("/api/embed", s.handleEmbed)
	app.Get("/api/tags", s.handleTags)
	app.Get("/api/version", s.handleVersion)

	return s
}

// Start binds the server to a random loopback port and returns its base URL.
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("listen: %w", err)
	}
	s.ln = ln

	go s.app.Listener(ln) //nolint:errcheck // shutdown error is irrelevant in tests

	return "http://" + ln.Addr().String(), nil
}

// Close shuts the server down.
func (s *Server) Close() error {
	return s.app.Shutdown()
}

// Requests returns the raw bodies of every /api/chat and /api/embed request
// received so far, in order.
func (s *Server) Requests() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) record(body []byte) {
	buf := make([]byte, len(body))
	copy(buf, body)

	s.mu.Lock()
	s.requests = append(s.requests, buf)
	s.mu.Unlock()
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	s.record(c.Body())

	var req llm.ChatRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}
	if req.Model == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "model is required"})
	}

	if req.Stream {
		return s.streamChat(c, req.Model)
	}

	return c.JSON(llm.ChatResponse{
		Model:     req.Model,
		CreatedAt: time.Now().UTC(),
		Message: llm.Message{
			Role:     llm.RoleAssistant,
			Content:  s.config.Reply,
			Thinking: s.config.Thinking,
		},
		Done:       true,
		DoneReason: "stop",
		EvalCount:  len(s.config.Reply),
	})
}

// streamChat writes the reply as ndjson chunks, a few runes at a time, the
// way Ollama streams tokens.
func (s *Server) streamChat(c *fiber.Ctx, model string) error {
	c.Set("Content-Type", "application/x-ndjson")

	thinking := s.config.Thinking
	reply := s.config.Reply

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		writeChunk := func(chunk llm.StreamChunk) {
			line, err := json.Marshal(chunk)
			if err != nil {
				return
			}
			w.Write(line)
			w.Write([]byte("\n"))
			w.Flush()
		}

		for _, piece := range splitChunks(thinking, 5) {
			writeChunk(llm.StreamChunk{
				Model:     model,
				CreatedAt: time.Now().UTC(),
				Message:   llm.Message{Role: llm.RoleAssistant, Thinking: piece},
			})
		}
		for _, piece := range splitChunks(reply, 5) {
			writeChunk(llm.StreamChunk{
				Model:     model,
				CreatedAt: time.Now().UTC(),
				Message:   llm.Message{Role: llm.RoleAssistant, Content: piece},
			})
		}

		writeChunk(llm.StreamChunk{
			Model:      model,
			CreatedAt:  time.Now().UTC(),
			Message:    llm.Message{Role: llm.RoleAssistant},
			Done:       true,
			DoneReason: "stop",
			EvalCount:  len(reply),
		})
	}))

	return nil
}

func (s *Server) handleEmbed(c *fiber.Ctx) error {
	s.record(c.Body())

	var req struct {
		Model string   `json:"model"`
		Input []string `json:"input"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}

	embeddings := make([][]float64, len(req.Input))
	for i := range req.Input {
		// Deterministic dummy vector so tests can assert on it
		embeddings[i] = []float64{float64(i), float64(len(req.Input[i])), 0.5}
	}

	return c.JSON(llm.EmbedResponse{
		Model:      req.Model,
		Embeddings: embeddings,
	})
}

func (s *Server) handleTags(c *fiber.Ctx) error {
	type modelEntry struct {
		Name       string    `json:"name"`
		Model      string    `json:"model"`
		ModifiedAt time.Time `json:"modified_at"`
		Size       int64     `json:"size"`
	}

	entries := make([]modelEntry, len(s.config.Models))
	for i, name := range s.config.Models {
		entries[i] = modelEntry{
			Name:       name,
			Model:      name,
			ModifiedAt: time.Now().UTC(),
			Size:       1 << 30,
		}
	}

	return c.JSON(map[string]any{"models": entries})
}

func (s *Server) handleVersion(c *fiber.Ctx) error {
	return c.JSON(map[string]string{"version": s.config.Version})
}

// splitChunks breaks s into rune groups of at most size.
func splitChunks(s string, size int) []string {
	if s == "" {
		return nil
	}

	runes := []rune(s)
	var out []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}
