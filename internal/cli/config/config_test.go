package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kustosql/kustosql/pkg/credential"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, AuthDefault, cfg.Auth)
	assert.Equal(t, credential.DefaultScope, cfg.Scope)
	assert.Equal(t, "table", cfg.OutputFormat)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{Cluster: "help", Database: "Samples", Auth: AuthDefault},
		},
		{
			name:    "missing cluster",
			cfg:     Config{Database: "Samples", Auth: AuthDefault},
			wantErr: "no cluster configured",
		},
		{
			name:    "missing database",
			cfg:     Config{Cluster: "help", Auth: AuthDefault},
			wantErr: "no database configured",
		},
		{
			name:    "static without token",
			cfg:     Config{Cluster: "help", Database: "Samples", Auth: AuthStatic},
			wantErr: "no token configured",
		},
		{
			name: "static with token",
			cfg:  Config{Cluster: "help", Database: "Samples", Auth: AuthStatic, Token: "tok"},
		},
		{
			name:    "unknown auth",
			cfg:     Config{Cluster: "help", Database: "Samples", Auth: "kerberos"},
			wantErr: "unknown auth method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCredential_Static(t *testing.T) {
	cfg := Config{Auth: AuthStatic, Token: "pre-issued"}

	cred, err := cfg.Credential()

	require.NoError(t, err)
	static, ok := cred.(credential.Static)
	require.True(t, ok)
	assert.Equal(t, "pre-issued", static.TokenValue)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)

	require.NoError(t, err)
	assert.Equal(t, AuthDefault, cfg.Auth)
	assert.Equal(t, "table", cfg.OutputFormat)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kustosql.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cluster: help\ndatabase: Samples\noutput: json\n"), 0o644))

	cfg, err := Load(path, nil)

	require.NoError(t, err)
	assert.Equal(t, "help", cfg.Cluster)
	assert.Equal(t, "Samples", cfg.Database)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err, "explicitly named config file must exist")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kustosql.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cluster: from-file\ndatabase: Samples\n"), 0o644))
	t.Setenv("KUSTOSQL_CLUSTER", "from-env")

	cfg, err := Load(path, nil)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Cluster)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("KUSTOSQL_CLUSTER", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("cluster", "", "")
	require.NoError(t, flags.Parse([]string{"--cluster", "from-flag"}))

	cfg, err := Load("", flags)

	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Cluster)
}
