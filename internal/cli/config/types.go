// Package config provides configuration management for the hivetrace CLI.
//
// Configuration is layered: defaults, then an optional YAML file, then
// HIVETRACE_-prefixed environment variables, then explicitly set flags.
package config

import "fmt"

// Config holds all CLI configuration options.
type Config struct {
	Database    string `koanf:"database"`     // initial current database
	Output      string `koanf:"output"`       // text|json|csv|table
	Encoding    string `koanf:"encoding"`     // utf-8|gbk|gb18030
	Verbose     bool   `koanf:"verbose"`
	NoColor     bool   `koanf:"no_color"`
	HistoryFile string `koanf:"history_file"` // REPL history
}

// Default configuration values.
const (
	DefaultDatabase    = "default"
	DefaultOutput      = "text"
	DefaultEncoding    = "utf-8"
	DefaultHistoryFile = ".hivetrace_history"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json", "csv", "table":
	default:
		return fmt.Errorf("invalid output format %q (valid: text, json, csv, table)", c.Output)
	}
	switch c.Encoding {
	case "utf-8", "gbk", "gb18030":
	default:
		return fmt.Errorf("unsupported encoding %q (valid: utf-8, gbk, gb18030)", c.Encoding)
	}
	if c.Database == "" {
		return fmt.Errorf("database must not be empty")
	}
	return nil
}
