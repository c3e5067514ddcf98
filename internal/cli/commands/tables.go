package commands

import (
	"github.com/spf13/cobra"

	"github.com/kustosql/kustosql/pkg/frame"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List tables in the configured database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = eng.Close() }()

			names, err := eng.TableNames(ctx)
			if err != nil {
				return err
			}

			rows := make([][]any, 0, len(names))
			for _, name := range names {
				rows = append(rows, []any{name})
			}
			f, err := frame.New([]string{"TableName"}, nil, rows)
			if err != nil {
				return err
			}
			return renderFrame(cmd.OutOrStdout(), f, outputFormat(ctx, format))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json, csv, md")
	return cmd
}
