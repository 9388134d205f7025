package commands

import (
	"log/slog"
	"os"

	"github.com/leapstack-labs/hivetrace/internal/cli/config"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// NewCommandContext creates a CommandContext from the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    getConfig(),
		Logger: config.GetLogger(cmd.Context()),
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	database := getEnvOrDefault("HIVETRACE_DATABASE", config.DefaultDatabase)
	outputFormat := getEnvOrDefault("HIVETRACE_OUTPUT", config.DefaultOutput)
	encoding := getEnvOrDefault("HIVETRACE_ENCODING", config.DefaultEncoding)
	historyFile := getEnvOrDefault("HIVETRACE_HISTORY_FILE", config.DefaultHistoryFile)
	verbose := os.Getenv("HIVETRACE_VERBOSE") == "true"
	noColor := os.Getenv("HIVETRACE_NO_COLOR") == "true"

	return &config.Config{
		Database:    database,
		Output:      outputFormat,
		Encoding:    encoding,
		Verbose:     verbose,
		NoColor:     noColor,
		HistoryFile: historyFile,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
