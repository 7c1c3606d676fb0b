package cmd

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// replConfig is the optional `.loxrc.yaml` read from the user's home
// directory, controlling REPL cosmetics that don't belong as flags the
// user has to retype every session.
type replConfig struct {
	Prompt      string `yaml:"prompt"`
	Color       *bool  `yaml:"color"`
	HistoryFile string `yaml:"history_file"`
}

func defaultReplConfig() replConfig {
	return replConfig{Prompt: "lox> ", HistoryFile: historyFilePath()}
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lox_history"
	}
	return filepath.Join(home, ".lox_history")
}

// loadReplConfig reads ~/.loxrc.yaml if present, falling back to
// defaultReplConfig for any field it doesn't set. A missing or
// malformed file is not an error: the REPL just uses its defaults.
func loadReplConfig() replConfig {
	cfg := defaultReplConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}

	data, err := os.ReadFile(filepath.Join(home, ".loxrc.yaml"))
	if err != nil {
		return cfg
	}

	var parsed replConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg
	}

	if parsed.Prompt != "" {
		cfg.Prompt = parsed.Prompt
	}
	if parsed.Color != nil {
		cfg.Color = parsed.Color
	}
	if parsed.HistoryFile != "" {
		cfg.HistoryFile = parsed.HistoryFile
	}
	return cfg
}
