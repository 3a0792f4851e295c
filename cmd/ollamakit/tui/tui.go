package tuicmder

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/shibotong/OllamaKit/cmd/ollamakit/configfile"
	"github.com/shibotong/OllamaKit/pkg/client"
	"github.com/shibotong/OllamaKit/pkg/llm"
)

const tuiLongDesc string = `Interactive chat session in the terminal.

Keeps the conversation history in memory and streams replies as they are
generated. Press enter to send, esc or ctrl+c to quit.`

const tuiShortDesc string = "Interactive chat session"

type tuiCommander struct {
	configPath string
	host       string
	model      string
}

func NewTUICmd() *cobra.Command {
	cmder := &tuiCommander{}

	cmd := &cobra.Command{
		Use:   "tui",
		Short: tuiShortDesc,
		Long:  tuiLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVar(&cmder.configPath, "config", "", "Path to config file (default ~/"+configfile.DefaultName+")")
	cmd.Flags().StringVar(&cmder.host, "host", "", "Ollama server URL (default "+client.DefaultBaseURL+")")
	cmd.Flags().StringVarP(&cmder.model, "model", "m", "", "Model name")

	return cmd
}

func (c *tuiCommander) run(cmd *cobra.Command) error {
	cfg, err := configfile.Load(c.configPath)
	if err != nil {
		return err
	}

	model := c.model
	if model == "" {
		model = cfg.Model
	}
	if model == "" {
		return fmt.Errorf("no model given: use --model or set one in the config file")
	}

	host := c.host
	if host == "" {
		host = cfg.Host
	}

	cl := client.New(client.Config{BaseURL: host}, nil)

	program := tea.NewProgram(newSession(cl, model, cfg.Options()))
	_, err = program.Run()
	return err
}

var (
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type chunkMsg string
type doneMsg *llm.ChatResponse
type errMsg struct{ err error }

// session is the bubbletea model for an interactive chat.
type session struct {
	client  *client.Client
	model   string
	options *llm.Options

	input   textinput.Model
	spin    spinner.Model
	history []llm.Message

	transcript string
	partial    string
	streaming  bool
	events     chan tea.Msg
	err        error
}

func newSession(cl *client.Client, model string, options *llm.Options) session {
	input := textinput.New()
	input.Placeholder = "Say something..."
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return session{
		client:  cl,
		model:   model,
		options: options,
		input:   input,
		spin:    spin,
	}
}

func (s session) Init() tea.Cmd {
	return textinput.Blink
}

func (s session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return s, tea.Quit
		case tea.KeyEnter:
			if s.streaming {
				return s, nil
			}
			prompt := strings.TrimSpace(s.input.Value())
			if prompt == "" {
				return s, nil
			}
			return s.send(prompt)
		}

	case chunkMsg:
		s.partial += string(msg)
		return s, s.nextEvent()

	case doneMsg:
		resp := (*llm.ChatResponse)(msg)
		s.history = append(s.history, resp.Message)
		s.transcript += assistantStyle.Render(resp.Message.Content) + "\n\n"
		s.partial = ""
		s.streaming = false
		return s, nil

	case errMsg:
		s.err = msg.err
		s.partial = ""
		s.streaming = false
		return s, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	cmds = append(cmds, cmd)
	if s.streaming {
		s.spin, cmd = s.spin.Update(msg)
		cmds = append(cmds, cmd)
	}
	return s, tea.Batch(cmds...)
}

// send appends the user turn and starts streaming the reply in the
// background, forwarding chunks through the events channel.
func (s session) send(prompt string) (tea.Model, tea.Cmd) {
	s.history = append(s.history, llm.UserMessage(prompt))
	s.transcript += promptStyle.Render("> "+prompt) + "\n"
	s.input.Reset()
	s.streaming = true
	s.err = nil
	s.events = make(chan tea.Msg, 32)

	req := &llm.ChatRequest{
		Model:    s.model,
		Messages: append([]llm.Message(nil), s.history...),
		Options:  s.options,
	}

	events := s.events
	cl := s.client
	go func() {
		resp, err := cl.ChatStream(context.Background(), req, func(chunk *llm.StreamChunk) error {
			events <- chunkMsg(chunk.Message.Content)
			return nil
		})
		if err != nil {
			events <- errMsg{err: err}
			return
		}
		events <- doneMsg(resp)
	}()

	return s, tea.Batch(s.nextEvent(), s.spin.Tick)
}

// nextEvent waits for the next streaming event.
func (s session) nextEvent() tea.Cmd {
	events := s.events
	return func() tea.Msg {
		return <-events
	}
}

func (s session) View() string {
	var b strings.Builder

	b.WriteString(statusStyle.Render("ollamakit · "+s.model) + "\n\n")
	b.WriteString(s.transcript)

	if s.streaming {
		b.WriteString(assistantStyle.Render(s.partial))
		b.WriteString(" " + s.spin.View() + "\n\n")
	}
	if s.err != nil {
		b.WriteString(errorStyle.Render("error: "+s.err.Error()) + "\n\n")
	}

	b.WriteString(s.input.View() + "\n")
	b.WriteString(statusStyle.Render("enter to send · esc to quit") + "\n")
	return b.String()
}
