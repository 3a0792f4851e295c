package modelscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shibotong/OllamaKit/cmd/ollamakit/configfile"
	"github.com/shibotong/OllamaKit/pkg/client"
	"github.com/shibotong/OllamaKit/pkg/logger"
)

const modelsLongDesc string = `List the models available on an Ollama server.

Examples:
  ollamakit models
  ollamakit models --host http://192.168.1.42:11434`

const modelsShortDesc string = "List available models"

type modelsCommander struct {
	configPath string
	host       string
	debug      bool
}

func NewModelsCmd() *cobra.Command {
	cmder := &modelsCommander{}

	cmd := &cobra.Command{
		Use:   "models",
		Short: modelsShortDesc,
		Long:  modelsLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVar(&cmder.configPath, "config", "", "Path to config file (default ~/"+configfile.DefaultName+")")
	cmd.Flags().StringVar(&cmder.host, "host", "", "Ollama server URL (default "+client.DefaultBaseURL+")")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *modelsCommander) run(cmd *cobra.Command) error {
	cfg, err := configfile.Load(c.configPath)
	if err != nil {
		return err
	}

	host := c.host
	if host == "" {
		host = cfg.Host
	}

	log := logger.New(c.debug)
	defer log.Sync() //nolint:errcheck

	cl := client.New(client.Config{BaseURL: host}, log)

	models, err := cl.ListModels(cmd.Context())
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}

	if len(models) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No models installed.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%-40s %-12s %s\n", "NAME", "SIZE", "MODIFIED")
	for _, m := range models {
		fmt.Fprintf(cmd.OutOrStdout(), "%-40s %-12s %s\n",
			m.Name, formatSize(m.Size), m.ModifiedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func formatSize(bytes int64) string {
	const gb = 1 << 30
	const mb = 1 << 20
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	}
	return fmt.Sprintf("%d B", bytes)
}
