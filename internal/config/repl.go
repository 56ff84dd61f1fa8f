package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// REPLConfig is the user-tunable subset of REPL behavior, loaded from
// an optional `.nightjarrc.yaml` in the user's home directory. A
// missing file is not an error — configuration is an ambient concern,
// never a hard dependency — and yields DefaultREPLConfig unchanged.
type REPLConfig struct {
	Prompt         string `yaml:"prompt"`
	PersistHistory bool   `yaml:"persist_history"`
	HistoryDBPath  string `yaml:"history_db_path"`
	ColorizeErrors bool   `yaml:"colorize_errors"`
}

// DefaultREPLConfig is used for any field a config file omits, and for
// the whole struct when no config file is present.
func DefaultREPLConfig() REPLConfig {
	historyPath := ".nightjar_history.db"
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, ".nightjar_history.db")
	}
	return REPLConfig{
		Prompt:         ">> ",
		PersistHistory: true,
		HistoryDBPath:  historyPath,
		ColorizeErrors: true,
	}
}

// LoadREPLConfig reads `.nightjarrc.yaml` from the user's home
// directory, overlaying any fields it sets onto DefaultREPLConfig. It
// never returns an error for a missing file; a malformed file's error
// is returned so the caller can decide whether to warn and continue.
func LoadREPLConfig() (REPLConfig, error) {
	cfg := DefaultREPLConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Join(home, ".nightjarrc.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultREPLConfig(), err
	}
	return cfg, nil
}
