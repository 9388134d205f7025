package commands

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/leapstack-labs/hivetrace/internal/cli/config"
	"github.com/leapstack-labs/hivetrace/pkg/lineage"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// ExtractOptions holds options for the extract command.
type ExtractOptions struct {
	Files  []string
	Base64 string
	Watch  bool
}

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract [SQL | files...]",
		Short: "Extract source tables from Hive SQL",
		Long: `Extract the source tables referenced by one or more Hive SQL statements.

Statements are split on semicolons, comments are stripped, and use statements
switch the database that qualifies bare table names. Only tables read from are
reported; insert and create targets are not.`,
		Example: `  # Extract from a literal statement
  hivetrace extract "select u.name from db1.users u join orders o on u.id = o.uid"

  # Extract from files (one session per file)
  hivetrace extract etl/daily.sql etl/monthly.sql

  # Pipe a script in
  cat etl/daily.sql | hivetrace extract

  # Base64-encoded content
  hivetrace extract --base64 "$(base64 < etl/daily.sql)"

  # Re-extract whenever the file changes
  hivetrace extract etl/daily.sql --watch

  # JSON output qualified against a database
  hivetrace extract -d warehouse -o json etl/daily.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Files, "file", "f", nil, "Read SQL from file (repeatable)")
	cmd.Flags().StringVar(&opts.Base64, "base64", "", "Base64-encoded SQL content")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-extract when the input file changes")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string, opts *ExtractOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger

	batchID := uuid.New().String()
	logger.Debug("starting extraction", "batch_id", batchID, "database", cfg.Database)

	// Positional args name files when every one exists on disk; otherwise
	// they are joined and treated as a literal SQL batch.
	var sqlArg string
	files := append([]string{}, opts.Files...)
	if len(args) > 0 {
		if allFilePaths(args) {
			files = append(files, args...)
		} else {
			sqlArg = strings.Join(args, " ")
		}
	}

	switch {
	case sqlArg != "":
		tables, err := extractBatch(cfg, sqlArg)
		if err != nil {
			return err
		}
		logger.Debug("extraction complete", "batch_id", batchID, "tables", len(tables))
		return renderExtract(cmd.OutOrStdout(), []extractResult{newExtractResult("", tables)}, cfg.Output)

	case len(files) > 0:
		if opts.Watch {
			if len(files) != 1 {
				return errors.New("--watch requires exactly one input file")
			}
			return watchAndExtract(cmd.Context(), cmd, cfg, logger, files[0])
		}
		results, err := extractFiles(cmd.Context(), cfg, logger, files)
		if err != nil {
			return err
		}
		logger.Debug("extraction complete", "batch_id", batchID, "files", len(files))
		return renderExtract(cmd.OutOrStdout(), results, cfg.Output)

	case opts.Base64 != "":
		raw, err := base64.StdEncoding.DecodeString(opts.Base64)
		if err != nil {
			return fmt.Errorf("failed to decode base64 content: %w", err)
		}
		text, err := decodeText(raw, cfg.Encoding)
		if err != nil {
			return err
		}
		tables, err := extractBatch(cfg, text)
		if err != nil {
			return err
		}
		logger.Debug("extraction complete", "batch_id", batchID, "tables", len(tables))
		return renderExtract(cmd.OutOrStdout(), []extractResult{newExtractResult("", tables)}, cfg.Output)

	case !isTerminal(os.Stdin):
		// Read from stdin (piped input)
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text, err := decodeText(content, cfg.Encoding)
		if err != nil {
			return err
		}
		tables, err := extractBatch(cfg, text)
		if err != nil {
			return err
		}
		logger.Debug("extraction complete", "batch_id", batchID, "tables", len(tables))
		return renderExtract(cmd.OutOrStdout(), []extractResult{newExtractResult("", tables)}, cfg.Output)

	default:
		return errors.New("no input provided")
	}
}

// extractBatch runs a fresh session over one SQL batch.
func extractBatch(cfg *config.Config, text string) ([]string, error) {
	session := lineage.NewSessionWithDatabase(cfg.Database)
	if err := session.Parse(text); err != nil {
		return nil, err
	}
	return session.TableNames(), nil
}

// extractFiles extracts each file concurrently with an independent session.
// Results keep the input order.
func extractFiles(ctx context.Context, cfg *config.Config, logger *slog.Logger, files []string) ([]extractResult, error) {
	results := make([]extractResult, len(files))

	eg, egctx := errgroup.WithContext(ctx)
	for i, path := range files {
		// capture per-iteration values; required while go.mod targets go < 1.22
		i, path := i, path
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			tables, err := extractFile(cfg, path)
			if err != nil {
				return err
			}
			logger.Debug("extracted file", "file", path, "tables", len(tables))
			results[i] = newExtractResult(path, tables)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func extractFile(cfg *config.Config, path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	text, err := decodeText(raw, cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tables, err := extractBatch(cfg, text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tables, nil
}

// watchAndExtract re-extracts the file on every write, until interrupted.
func watchAndExtract(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, path string) error {
	render := func() {
		tables, err := extractFile(cfg, path)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		if err := renderExtract(cmd.OutOrStdout(), []extractResult{newExtractResult(path, tables)}, cfg.Output); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	render()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch the parent directory; editors often replace files on save
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	logger.Debug("watching for changes", "file", path)

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				logger.Debug("file changed, re-extracting", "file", event.Name)
				render()
			})

		case err := <-watcher.Errors:
			logger.Error("watcher error", "error", err)
		}
	}
}

// decodeText converts raw input bytes to UTF-8 according to the configured encoding.
func decodeText(raw []byte, enc string) (string, error) {
	switch strings.ToLower(enc) {
	case "", "utf-8":
		if !utf8.Valid(raw) {
			return "", errors.New("failed to convert: input is not valid utf-8")
		}
		return string(raw), nil
	case "gbk":
		decoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), raw)
		if err != nil {
			return "", fmt.Errorf("failed to convert: %w", err)
		}
		return string(decoded), nil
	case "gb18030":
		decoded, _, err := transform.Bytes(simplifiedchinese.GB18030.NewDecoder(), raw)
		if err != nil {
			return "", fmt.Errorf("failed to convert: %w", err)
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", enc)
	}
}

// allFilePaths reports whether every arg names an existing regular file.
func allFilePaths(args []string) bool {
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil || fi.IsDir() {
			return false
		}
	}
	return true
}
