// Command kustosql is the CLI for querying Azure Data Explorer over TDS.
package main

import (
	"os"

	"github.com/kustosql/kustosql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
