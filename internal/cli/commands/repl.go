package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/kustosql/kustosql/pkg/adapters/kusto"
)

// NewReplCommand creates the interactive repl command.
func NewReplCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive query session against the cluster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json, csv, md")
	return cmd
}

func runRepl(cmd *cobra.Command, format string) error {
	ctx := cmd.Context()

	eng, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}
	format = outputFormat(ctx, format)

	historyFile := filepath.Join(historyDir(), "kustosql_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "kusto> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "kustosql REPL (%s/%s)\n", cfg.Cluster, cfg.Database)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	var multiLineBuffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			multiLineBuffer.Reset()
			rl.SetPrompt("kusto> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if line == ".quit" || line == ".exit" {
				break
			}
			handleDotCommand(ctx, cmd, eng, line)
			continue
		}

		// Accumulate multi-line SQL until semicolon
		multiLineBuffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			multiLineBuffer.WriteString(" ")
			rl.SetPrompt("  ...> ")
			continue
		}
		rl.SetPrompt("kusto> ")

		query := strings.TrimSuffix(multiLineBuffer.String(), ";")
		multiLineBuffer.Reset()

		if err := executeAndRender(ctx, cmd, eng, query, format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

func executeAndRender(ctx context.Context, cmd *cobra.Command, eng *kusto.Adapter, query, format string) error {
	f, err := kusto.RunQuery(ctx, eng, query)
	if err != nil {
		return err
	}
	return renderFrame(cmd.OutOrStdout(), f, format)
}

func handleDotCommand(ctx context.Context, cmd *cobra.Command, eng *kusto.Adapter, line string) {
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".help":
		printReplHelp(cmd.OutOrStdout())

	case ".tables":
		names, err := eng.TableNames(ctx)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		for _, name := range names {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
		}

	case ".schema":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .schema <table>")
			return
		}
		md, err := kusto.ReflectTable(ctx, eng, parts[1])
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		for _, col := range md.Columns {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-30s %s\n", col.Position, col.Name, col.Type)
		}

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command %s (try .help)\n", parts[0])
	}
}

func printReplHelp(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Commands:")
	_, _ = fmt.Fprintln(w, "  .tables          List tables")
	_, _ = fmt.Fprintln(w, "  .schema <table>  Show reflected columns")
	_, _ = fmt.Fprintln(w, "  .help            Show this help")
	_, _ = fmt.Fprintln(w, "  .quit            Exit")
	_, _ = fmt.Fprintln(w, "SQL statements end with a semicolon; statements may span lines.")
}

func historyDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return os.TempDir()
}
