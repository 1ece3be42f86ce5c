package server

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the serve-mode settings. Values come from an optional TOML
// file with flag overrides on top.
type Config struct {
	Listen   string `toml:"listen"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// DefaultConfig returns the settings used when no file or flags are given.
func DefaultConfig() Config {
	return Config{
		Listen:   ":8080",
		MongoURI: "mongodb://localhost:27017",
		Database: "invoiceDB",
	}
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}
