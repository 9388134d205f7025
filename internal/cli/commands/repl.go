package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/hivetrace/internal/cli/config"
	"github.com/leapstack-labs/hivetrace/pkg/lineage"
	"github.com/spf13/cobra"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive lineage shell",
		Long: `Start an interactive shell that accumulates lineage across statements.

Statements end with a semicolon and may span multiple lines. A use statement
switches the current database and the prompt follows it. Extracted table names
accumulate in the session until .reset.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			return runREPL(cmd, cmdCtx.Cfg)
		},
	}
}

func replPrompt(session *lineage.Session) string {
	return fmt.Sprintf("hivetrace:%s> ", session.CurrentDatabase())
}

func runREPL(cmd *cobra.Command, cfg *config.Config) error {
	session := lineage.NewSessionWithDatabase(cfg.Database)

	// Configure readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt(session),
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()

	// Print welcome message
	_, _ = fmt.Fprintln(out, styled(bannerStyle, "hivetrace REPL", cfg.NoColor))
	_, _ = fmt.Fprintln(out, styled(mutedStyle, "Type .help for commands, .quit to exit", cfg.NoColor))
	_, _ = fmt.Fprintln(out)

	// REPL loop
	var multiLineBuffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			multiLineBuffer.Reset()
			rl.SetPrompt(replPrompt(session))
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Handle dot-commands outside of a pending statement
		if strings.HasPrefix(line, ".") && multiLineBuffer.Len() == 0 {
			quit, next := handleDotCommand(cmd, session, line, cfg)
			if quit {
				break
			}
			if next != nil {
				session = next
				rl.SetPrompt(replPrompt(session))
			}
			continue
		}

		// Accumulate multi-line SQL until semicolon
		multiLineBuffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			multiLineBuffer.WriteString(" ")
			rl.SetPrompt("    ...> ")
			continue
		}

		batch := multiLineBuffer.String()
		multiLineBuffer.Reset()

		before := len(session.TableNames())
		if err := session.Parse(batch); err != nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), styled(errorStyle, fmt.Sprintf("Error: %v", err), cfg.NoColor))
		} else {
			for _, name := range session.TableNames()[before:] {
				_, _ = fmt.Fprintln(out, name)
			}
		}

		// A use statement may have switched the database
		rl.SetPrompt(replPrompt(session))
	}

	return nil
}

// handleDotCommand runs one dot-command. It reports whether the REPL should
// exit, and returns a replacement session after .reset.
func handleDotCommand(cmd *cobra.Command, session *lineage.Session, line string, cfg *config.Config) (bool, *lineage.Session) {
	out := cmd.OutOrStdout()
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true, nil

	case ".help":
		printREPLHelp(out)

	case ".tables":
		names := session.TableNames()
		if len(names) == 0 {
			_, _ = fmt.Fprintln(out, "(no tables yet)")
		}
		for _, name := range names {
			_, _ = fmt.Fprintln(out, name)
		}

	case ".database":
		_, _ = fmt.Fprintln(out, session.CurrentDatabase())

	case ".reset":
		_, _ = fmt.Fprintln(out, styled(mutedStyle, "session reset", cfg.NoColor))
		return false, lineage.NewSessionWithDatabase(cfg.Database)

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false, nil
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help          Show this help message
  .tables        List tables extracted so far
  .database      Show the current database
  .reset         Start a fresh session
  .clear         Clear the screen
  .quit / .exit  Exit the REPL

Tips:
  - Statements must end with a semicolon (;)
  - use <db>; switches the database used to qualify bare names
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter creates a readline completer for keywords and dot-commands.
func newREPLCompleter() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("select"),
		readline.PcItem("insert"),
		readline.PcItem("create"),
		readline.PcItem("with"),
		readline.PcItem("use"),
		readline.PcItem(".help"),
		readline.PcItem(".tables"),
		readline.PcItem(".database"),
		readline.PcItem(".reset"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	}
	return readline.NewPrefixCompleter(items...)
}
