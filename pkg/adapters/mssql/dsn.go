package mssql

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kustosql/kustosql/pkg/adapter"
)

// Driver selection values for the "driver" option.
const (
	// DriverNative uses github.com/microsoft/go-mssqldb ("sqlserver").
	DriverNative = "sqlserver"

	// DriverODBC routes through the platform ODBC driver manager ("odbc").
	DriverODBC = "odbc"
)

// DefaultODBCDriver is the ODBC driver name used when the "odbc_driver"
// option is not set.
const DefaultODBCDriver = "ODBC Driver 17 for SQL Server"

// BuildDSN constructs a connection string for cfg and returns the
// database/sql driver name alongside it.
//
// The native path emits go-mssqldb's ODBC-format string
// ("odbc:server=...;database=..."); the raw ODBC path emits a driver-manager
// string naming the platform driver ("Driver={...};Server=...;Database=...").
// Entries from cfg.Options are appended verbatim in sorted key order.
func BuildDSN(cfg adapter.Config) (driver, dsn string) {
	driver = DriverNative
	if cfg.Options["driver"] == DriverODBC {
		driver = DriverODBC
	}

	host := cfg.Host
	if cfg.Port != 0 {
		host = fmt.Sprintf("%s,%d", cfg.Host, cfg.Port)
	}

	var parts []string
	switch driver {
	case DriverODBC:
		odbcDriver := cfg.Options["odbc_driver"]
		if odbcDriver == "" {
			odbcDriver = DefaultODBCDriver
		}
		parts = append(parts, fmt.Sprintf("Driver={%s}", odbcDriver))
		parts = append(parts, "Server="+host)
		if cfg.Database != "" {
			parts = append(parts, "Database="+cfg.Database)
		}
		if cfg.Username != "" {
			parts = append(parts, "UID="+cfg.Username)
		}
		if cfg.Password != "" {
			parts = append(parts, "PWD="+cfg.Password)
		}
	default:
		parts = append(parts, "server="+host)
		if cfg.Database != "" {
			parts = append(parts, "database="+cfg.Database)
		}
		if cfg.Username != "" {
			parts = append(parts, "user id="+cfg.Username)
		}
		if cfg.Password != "" {
			parts = append(parts, "password="+cfg.Password)
		}
	}

	for _, k := range sortedOptionKeys(cfg.Options) {
		parts = append(parts, k+"="+cfg.Options[k])
	}

	dsn = strings.Join(parts, ";")
	if driver == DriverNative {
		// go-mssqldb selects its connection string parser from the prefix.
		dsn = "odbc:" + dsn
	}
	return driver, dsn
}

// reservedOptions are consumed by BuildDSN itself and never forwarded into
// the connection string.
var reservedOptions = map[string]bool{
	"driver":      true,
	"odbc_driver": true,
}

func sortedOptionKeys(options map[string]string) []string {
	keys := make([]string, 0, len(options))
	for k := range options {
		if reservedOptions[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
