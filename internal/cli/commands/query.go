package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kustosql/kustosql/pkg/adapters/kusto"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	Input  string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run a T-SQL query against the cluster",
		Long: `Run a T-SQL query against the configured Kusto database.

The full result set is materialized before rendering. Supports multiple
output formats for scripting and integration.`,
		Example: `  # Execute SQL directly
  kustosql query "SELECT TOP 10 * FROM StormEvents"

  # Read SQL from a file
  kustosql query --input report.sql

  # Pipe SQL on stdin, output as JSON
  echo "SELECT COUNT(*) AS n FROM StormEvents" | kustosql query --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json, csv, md")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	var sqlQuery string
	switch {
	case len(args) > 0:
		sqlQuery = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	default:
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	}

	sqlQuery = strings.TrimSpace(sqlQuery)
	if sqlQuery == "" {
		return fmt.Errorf("no query given (pass SQL as an argument, via --input, or on stdin)")
	}

	ctx := cmd.Context()
	eng, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	f, err := kusto.RunQuery(ctx, eng, sqlQuery)
	if err != nil {
		return err
	}

	return renderFrame(cmd.OutOrStdout(), f, outputFormat(ctx, opts.Format))
}
