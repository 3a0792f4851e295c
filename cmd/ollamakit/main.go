package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	chatcmder "github.com/shibotong/OllamaKit/cmd/ollamakit/chat"
	"github.com/shibotong/OllamaKit/cmd/ollamakit/configfile"
	modelscmder "github.com/shibotong/OllamaKit/cmd/ollamakit/models"
	tuicmder "github.com/shibotong/OllamaKit/cmd/ollamakit/tui"
	"github.com/shibotong/OllamaKit/pkg/client"
	"github.com/shibotong/OllamaKit/pkg/logger"
)

const rootLongDesc string = `ollamakit talks to an Ollama server: one-shot chats, interactive
sessions, and model inspection, with generation parameters coming from
flags or ~/` + configfile.DefaultName + `.`

func main() {
	root := &cobra.Command{
		Use:           "ollamakit",
		Short:         "A client for the Ollama API",
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		chatcmder.NewChatCmd(),
		modelscmder.NewModelsCmd(),
		tuicmder.NewTUICmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	var (
		configPath string
		host       string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configfile.Load(configPath)
			if err != nil {
				return err
			}
			if host == "" {
				host = cfg.Host
			}

			log := logger.New(debug)
			defer log.Sync() //nolint:errcheck

			version, err := client.New(client.Config{BaseURL: host}, log).Version(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default ~/"+configfile.DefaultName+")")
	cmd.Flags().StringVar(&host, "host", "", "Ollama server URL (default "+client.DefaultBaseURL+")")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}
