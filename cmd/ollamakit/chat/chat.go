package chatcmder

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shibotong/OllamaKit/cmd/ollamakit/configfile"
	"github.com/shibotong/OllamaKit/pkg/client"
	"github.com/shibotong/OllamaKit/pkg/history"
	"github.com/shibotong/OllamaKit/pkg/jsonvalue"
	"github.com/shibotong/OllamaKit/pkg/llm"
	"github.com/shibotong/OllamaKit/pkg/logger"
)

const chatLongDesc string = `Send one chat request to an Ollama server.

The prompt comes from the arguments, or from stdin when no arguments are
given. Responses stream to stdout by default; with --no-stream the full
reply is fetched first and, on a terminal, rendered as markdown.

Examples:
  ollamakit chat "why is the sky blue?"
  echo "summarize this" | ollamakit chat --model qwen3:8b
  ollamakit chat --format json "list three colors as a JSON array"
  ollamakit chat --think high "prove there are infinitely many primes"`

const chatShortDesc string = "Chat with a model"

type chatCommander struct {
	configPath  string
	host        string
	model       string
	system      string
	format      string
	think       string
	temperature float64
	seed        int
	noStream    bool
	historyPath string
	debug       bool
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat [prompt...]",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args)
		},
	}

	cmd.Flags().StringVar(&cmder.configPath, "config", "", "Path to config file (default ~/"+configfile.DefaultName+")")
	cmd.Flags().StringVar(&cmder.host, "host", "", "Ollama server URL (default "+client.DefaultBaseURL+")")
	cmd.Flags().StringVarP(&cmder.model, "model", "m", "", "Model name")
	cmd.Flags().StringVar(&cmder.system, "system", "", "System prompt")
	cmd.Flags().StringVar(&cmder.format, "format", "", `Response format: "json" or an inline JSON schema`)
	cmd.Flags().StringVar(&cmder.think, "think", "", `Thinking directive: true, false, or a level like "high"`)
	cmd.Flags().Float64VarP(&cmder.temperature, "temperature", "t", -1, "Sampling temperature")
	cmd.Flags().IntVar(&cmder.seed, "seed", 0, "Random seed")
	cmd.Flags().BoolVar(&cmder.noStream, "no-stream", false, "Wait for the full reply instead of streaming")
	cmd.Flags().StringVar(&cmder.historyPath, "history", "", "SQLite file to record the conversation turn in")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *chatCommander) run(cmd *cobra.Command, args []string) error {
	cfg, err := configfile.Load(c.configPath)
	if err != nil {
		return err
	}

	model := firstOf(c.model, cfg.Model)
	if model == "" {
		return fmt.Errorf("no model given: use --model or set one in the config file")
	}

	prompt, err := readPrompt(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if prompt == "" {
		return fmt.Errorf("empty prompt")
	}

	req, err := c.buildRequest(model, prompt, cfg, cmd.Flags().Changed("seed"))
	if err != nil {
		return err
	}

	log := logger.New(c.debug)
	defer log.Sync() //nolint:errcheck

	cl := client.New(client.Config{BaseURL: firstOf(c.host, cfg.Host)}, log)

	var resp *llm.ChatResponse
	if c.noStream {
		resp, err = cl.Chat(cmd.Context(), req)
		if err != nil {
			return err
		}
		if err := printRendered(cmd.OutOrStdout(), resp.Message.Content); err != nil {
			return err
		}
	} else {
		resp, err = cl.ChatStream(cmd.Context(), req, func(chunk *llm.StreamChunk) error {
			_, werr := fmt.Fprint(cmd.OutOrStdout(), chunk.Message.Content)
			return werr
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	if c.historyPath != "" {
		if err := recordTurn(cmd, c.historyPath, req, resp); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
	}
	return nil
}

func (c *chatCommander) buildRequest(model, prompt string, cfg configfile.Config, seedSet bool) (*llm.ChatRequest, error) {
	var messages []llm.Message
	if c.system != "" {
		messages = append(messages, llm.SystemMessage(c.system))
	}
	messages = append(messages, llm.UserMessage(prompt))

	req := &llm.ChatRequest{
		Model:    model,
		Messages: messages,
		Options:  cfg.Options(),
	}

	if c.format != "" {
		format, err := parseFormat(c.format)
		if err != nil {
			return nil, err
		}
		req.Format = &format
	}
	if c.think != "" {
		think := parseThink(c.think)
		req.Think = &think
	}

	// Flag overrides on top of the config file's options
	if c.temperature >= 0 {
		if req.Options == nil {
			req.Options = &llm.Options{}
		}
		t := c.temperature
		req.Options.Temperature = &t
	}
	// Changed rather than a zero check, so --seed 0 works
	if seedSet {
		if req.Options == nil {
			req.Options = &llm.Options{}
		}
		s := c.seed
		req.Options.Seed = &s
	}
	return req, nil
}

// parseFormat accepts "json" or an inline JSON schema document.
func parseFormat(s string) (jsonvalue.Value, error) {
	if !strings.HasPrefix(strings.TrimSpace(s), "{") {
		return jsonvalue.String(s), nil
	}
	format, err := jsonvalue.Parse([]byte(s))
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("invalid --format schema: %w", err)
	}
	return format, nil
}

// parseThink maps "true"/"false" to booleans and anything else (e.g. "high")
// to a string directive.
func parseThink(s string) jsonvalue.Value {
	switch s {
	case "true":
		return jsonvalue.Bool(true)
	case "false":
		return jsonvalue.Bool(false)
	}
	return jsonvalue.String(s)
}

func readPrompt(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read prompt from stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// printRendered writes content as glamour-rendered markdown on a terminal,
// plain text otherwise.
func printRendered(w io.Writer, content string) error {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		rendered, err := glamour.Render(content, "auto")
		if err == nil {
			_, werr := fmt.Fprint(w, rendered)
			return werr
		}
	}
	_, err := fmt.Fprintln(w, content)
	return err
}

func recordTurn(cmd *cobra.Command, path string, req *llm.ChatRequest, resp *llm.ChatResponse) error {
	store, err := history.NewSQLiteStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Append(cmd.Context(), &llm.ConversationTurn{Request: req, Response: resp})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "recorded turn %d in %s\n", id, path)
	return nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
