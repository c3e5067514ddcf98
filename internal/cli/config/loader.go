package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// envPrefix namespaces the environment variables read by Load.
const envPrefix = "KUSTOSQL_"

// configFileUsed records which file Load read, for verbose output.
var configFileUsed string

// findConfigFile finds the config file to use.
// Priority: explicit path > kustosql.yaml > kustosql.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"kustosql.yaml", "kustosql.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// GetConfigFileUsed returns the path of the config file the last Load read,
// or empty if none was found.
func GetConfigFileUsed() string {
	return configFileUsed
}

// Load merges configuration from defaults, the config file, the environment,
// and flags. A missing config file is only an error when it was named
// explicitly.
func Load(explicitFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := Default()
	if err := k.Load(confmap.Provider(map[string]any{
		"auth":   defaults.Auth,
		"scope":  defaults.Scope,
		"output": defaults.OutputFormat,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	configFileUsed = ""
	if path := findConfigFile(explicitFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if explicitFile != "" || !os.IsNotExist(err) {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		} else {
			configFileUsed = path
		}
	}

	// KUSTOSQL_ODBC_DRIVER -> odbc_driver, etc.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
