// Package config provides configuration management for the kustosql CLI.
//
// Configuration merges, in increasing priority: built-in defaults, a
// kustosql.yaml file, KUSTOSQL_* environment variables, and command-line
// flags.
package config

import (
	"fmt"

	"github.com/kustosql/kustosql/pkg/credential"
)

// Auth method names accepted in the "auth" setting.
const (
	AuthDefault = "default"
	AuthAzCLI   = "azcli"
	AuthStatic  = "static"
)

// Config holds all CLI configuration options.
type Config struct {
	// Cluster is the Kusto cluster name or full host.
	Cluster string `koanf:"cluster"`

	// Database is the database to connect to.
	Database string `koanf:"database"`

	// Auth selects the credential source: default, azcli, or static.
	Auth string `koanf:"auth"`

	// Token is the pre-issued bearer token for static auth.
	// Usually supplied via KUSTOSQL_TOKEN rather than the config file.
	Token string `koanf:"token"`

	// Scope overrides the OAuth2 scope requested for tokens.
	Scope string `koanf:"scope"`

	// ODBCDriver overrides the ODBC driver named in the connection string.
	ODBCDriver string `koanf:"odbc_driver"`

	// OutputFormat is the default result rendering: table, json, csv, or md.
	OutputFormat string `koanf:"output"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Auth:         AuthDefault,
		Scope:        credential.DefaultScope,
		OutputFormat: "table",
	}
}

// Validate checks that the config names a connectable target.
func (c *Config) Validate() error {
	if c.Cluster == "" {
		return fmt.Errorf("no cluster configured (set cluster in kustosql.yaml, KUSTOSQL_CLUSTER, or --cluster)")
	}
	if c.Database == "" {
		return fmt.Errorf("no database configured (set database in kustosql.yaml, KUSTOSQL_DATABASE, or --database)")
	}
	switch c.Auth {
	case AuthDefault, AuthAzCLI:
	case AuthStatic:
		if c.Token == "" {
			return fmt.Errorf("auth is %q but no token configured (set KUSTOSQL_TOKEN)", c.Auth)
		}
	default:
		return fmt.Errorf("unknown auth method %q (want %s, %s, or %s)", c.Auth, AuthDefault, AuthAzCLI, AuthStatic)
	}
	return nil
}

// Credential builds the token credential selected by the config.
func (c *Config) Credential() (credential.TokenCredential, error) {
	switch c.Auth {
	case AuthAzCLI:
		return credential.AzureCLI()
	case AuthStatic:
		return credential.Static{TokenValue: c.Token}, nil
	default:
		return credential.Default()
	}
}
