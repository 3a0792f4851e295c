// Package configfile loads the optional ~/.ollamakit.toml CLI configuration.
package configfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/shibotong/OllamaKit/pkg/llm"
)

// DefaultName is the config file looked up in the user's home directory.
const DefaultName = ".ollamakit.toml"

// Config holds CLI defaults. Command-line flags override every field.
type Config struct {
	Host  string `toml:"host"`
	Model string `toml:"model"`

	Temperature *float64 `toml:"temperature"`
	TopP        *float64 `toml:"top_p"`
	TopK        *int     `toml:"top_k"`
	Seed        *int     `toml:"seed"`
	NumCtx      *int     `toml:"num_ctx"`
	NumPredict  *int     `toml:"num_predict"`
}

// Load reads the config at path, or the default location when path is
// empty. A missing file is not an error; it yields a zero Config.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, nil
		}
		path = filepath.Join(home, DefaultName)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the configured generation parameters into an options
// bundle, or nil when none are set.
func (c Config) Options() *llm.Options {
	if c.Temperature == nil && c.TopP == nil && c.TopK == nil &&
		c.Seed == nil && c.NumCtx == nil && c.NumPredict == nil {
		return nil
	}
	return &llm.Options{
		Temperature: c.Temperature,
		TopP:        c.TopP,
		TopK:        c.TopK,
		Seed:        c.Seed,
		NumCtx:      c.NumCtx,
		NumPredict:  c.NumPredict,
	}
}
