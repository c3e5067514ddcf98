package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kustosql/kustosql/pkg/adapters/kusto"
	"github.com/kustosql/kustosql/pkg/frame"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema <table>",
		Short: "Show reflected column metadata for a table",
		Long: `Reflect a table's columns through the Kusto-aware probe.

The probe runs a zero-row query and reads the driver-reported column
descriptors; it never queries catalog views the engine does not populate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = eng.Close() }()

			md, err := kusto.ReflectTable(ctx, eng, args[0])
			if err != nil {
				return err
			}

			rows := make([][]any, 0, len(md.Columns))
			for _, col := range md.Columns {
				rows = append(rows, []any{
					strconv.Itoa(col.Position), col.Name, col.Type, strconv.FormatBool(col.Nullable),
				})
			}
			f, err := frame.New([]string{"Position", "Column", "Type", "Nullable"}, nil, rows)
			if err != nil {
				return err
			}
			return renderFrame(cmd.OutOrStdout(), f, outputFormat(ctx, format))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json, csv, md")
	return cmd
}
