package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Mavwarf/teamspack/internal/paths"
)

// Options holds global settings parsed from the "config" key.
type Options struct {
	History bool     `json:"history,omitempty"` // record builds in the history database
	Fonts   []string `json:"fonts,omitempty"`   // font files tried before the built-in chain
}

// Config holds the top-level configuration.
type Config struct {
	Options Options `json:"config"`
	Source  string  `json:"-"` // file the config was read from, empty for defaults
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty; missing is an error)
//  2. teamspack-config.json next to the running binary
//  3. DataDir()/teamspack-config.json
//
// Without an explicit path and with no file found, the zero Config is returned.
func Load(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	for _, p := range candidates() {
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}
	return Config{}, nil
}

func candidates() []string {
	var out []string
	if exe, err := os.Executable(); err == nil {
		out = append(out, filepath.Join(filepath.Dir(exe), paths.ConfigFileName))
	}
	return append(out, filepath.Join(paths.DataDir(), paths.ConfigFileName))
}

// HistoryPath returns where the build history database lives.
func HistoryPath() string {
	return filepath.Join(paths.DataDir(), paths.HistoryFileName)
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config file %s not found", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}
