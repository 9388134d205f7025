package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfig_Validate tests the Validate method of Config.
func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Database:    DefaultDatabase,
		Output:      DefaultOutput,
		Encoding:    DefaultEncoding,
		HistoryFile: DefaultHistoryFile,
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErr   bool
		errSubstr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "table output",
			mutate:  func(c *Config) { c.Output = "table" },
			wantErr: false,
		},
		{
			name:      "unknown output format",
			mutate:    func(c *Config) { c.Output = "xml" },
			wantErr:   true,
			errSubstr: "invalid output format",
		},
		{
			name:    "gbk encoding",
			mutate:  func(c *Config) { c.Encoding = "gbk" },
			wantErr: false,
		},
		{
			name:      "unknown encoding",
			mutate:    func(c *Config) { c.Encoding = "latin-1" },
			wantErr:   true,
			errSubstr: "unsupported encoding",
		},
		{
			name:      "empty database",
			mutate:    func(c *Config) { c.Database = "" },
			wantErr:   true,
			errSubstr: "database must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err, "expected error but got nil")
				assert.Contains(t, err.Error(), tt.errSubstr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestLoadConfig_Defaults verifies the built-in defaults with no file, env
// vars or flags.
func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabase, cfg.Database)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultEncoding, cfg.Encoding)
	assert.Equal(t, DefaultHistoryFile, cfg.HistoryFile)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.NoColor)
}

// TestLoadConfig_File verifies values are read from an explicit YAML file.
func TestLoadConfig_File(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "hivetrace.yaml")
	cfgContent := `database: warehouse
output: json
no_color: true
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "warehouse", cfg.Database)
	assert.Equal(t, "json", cfg.Output)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, DefaultEncoding, cfg.Encoding, "unset keys keep their defaults")
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

// TestLoadConfig_EnvOverridesFile verifies env vars override the config file.
func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "hivetrace.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("database: from_file\n"), 0600))

	require.NoError(t, os.Setenv("HIVETRACE_DATABASE", "from_env"))
	defer func() { _ = os.Unsetenv("HIVETRACE_DATABASE") }()

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.Database, "env var should override config file")
}

// TestLoadConfig_FlagPrecedence verifies that explicitly set flags override
// env vars and the config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "hivetrace.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("database: from_file\n"), 0600))

	require.NoError(t, os.Setenv("HIVETRACE_DATABASE", "from_env"))
	defer func() { _ = os.Unsetenv("HIVETRACE_DATABASE") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("database", "", "initial database")
	require.NoError(t, flags.Set("database", "from_flag"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "from_flag", cfg.Database, "flag value should override config file and env var")
}

// TestLoadConfig_FlagNotSetUsesEnv verifies unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()

	require.NoError(t, os.Setenv("HIVETRACE_DATABASE", "from_env"))
	defer func() { _ = os.Unsetenv("HIVETRACE_DATABASE") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("database", "", "initial database")
	// Note: not calling flags.Set(), so Changed is false

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.Database, "env var should be used when flag is not set")
}

// TestLoadConfig_KebabFlagsMapToSnakeKeys verifies flag name translation.
func TestLoadConfig_KebabFlagsMapToSnakeKeys(t *testing.T) {
	ResetConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("history-file", "", "REPL history file")
	flags.Bool("no-color", false, "disable color output")
	require.NoError(t, flags.Set("history-file", "/tmp/hist"))
	require.NoError(t, flags.Set("no-color", "true"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/hist", cfg.HistoryFile)
	assert.True(t, cfg.NoColor)
}

// TestLoadConfig_EnvBoolean verifies boolean env values decode.
func TestLoadConfig_EnvBoolean(t *testing.T) {
	ResetConfig()

	require.NoError(t, os.Setenv("HIVETRACE_VERBOSE", "true"))
	defer func() { _ = os.Unsetenv("HIVETRACE_VERBOSE") }()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.True(t, cfg.Verbose)
}

// TestLoadConfig_MissingExplicitFile verifies a bad explicit path errors.
func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

// TestGetCurrentConfig verifies the loaded config is retrievable.
func TestGetCurrentConfig(t *testing.T) {
	ResetConfig()
	assert.Nil(t, GetCurrentConfig(), "no config before LoadConfig")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, GetCurrentConfig())

	ResetConfig()
	assert.Nil(t, GetCurrentConfig(), "reset clears the stored config")
}

// TestGetLogger verifies logger retrieval from context.
func TestGetLogger(t *testing.T) {
	ctx := context.Background()
	assert.NotNil(t, GetLogger(ctx), "fallback logger for a bare context")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx = context.WithValue(ctx, LoggerKey(), logger)
	assert.Equal(t, logger, GetLogger(ctx))
}
