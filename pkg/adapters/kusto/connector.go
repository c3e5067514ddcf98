package kusto

import (
	"context"
	"database/sql/driver"
	"fmt"
	"sort"
	"strings"

	mssqldb "github.com/microsoft/go-mssqldb"

	"github.com/kustosql/kustosql/pkg/adapter"
	"github.com/kustosql/kustosql/pkg/adapters/mssql"
	"github.com/kustosql/kustosql/pkg/credential"
)

// ClusterHost returns the TDS host for a cluster reference. Bare cluster
// names get the Kusto domain appended; anything already containing a dot is
// taken as a full host name.
func ClusterHost(cluster string) string {
	if strings.Contains(cluster, ".") {
		return cluster
	}
	return cluster + ClusterDomain
}

// BuildDSN constructs the ODBC-format connection string for a cluster.
// The string names the SQL Server ODBC driver, targets the cluster's TDS
// host, and enables autocommit — the engine has no transactions, so every
// statement must commit implicitly.
func BuildDSN(cfg adapter.Config) string {
	odbcDriver := cfg.Options["odbc_driver"]
	if odbcDriver == "" {
		odbcDriver = mssql.DefaultODBCDriver
	}

	parts := []string{
		fmt.Sprintf("Driver={%s}", odbcDriver),
		"Server=" + ClusterHost(cfg.Host),
		"Database=" + cfg.Database,
		"autocommit=true",
	}
	extra := make([]string, 0, len(cfg.Options))
	for k := range cfg.Options {
		if k == "driver" || k == "odbc_driver" {
			continue
		}
		extra = append(extra, k)
	}
	sort.Strings(extra)
	for _, k := range extra {
		parts = append(parts, k+"="+cfg.Options[k])
	}
	return "odbc:" + strings.Join(parts, ";")
}

// NewConnector builds a driver.Connector that authenticates with a bearer
// token. The credential is consulted for a fresh token on every physical
// connection the pool opens; tokens are never cached here, the credential
// implementations own refresh and caching.
//
// The raw platform-ODBC driver cannot receive a token after the connection
// string is handed to the driver manager, so token auth always rides on the
// native TDS driver.
func NewConnector(cfg adapter.Config, scope string) (driver.Connector, error) {
	if cfg.Options["driver"] == mssql.DriverODBC {
		return nil, fmt.Errorf("token authentication requires the native driver; the platform odbc driver only supports connection-string auth")
	}

	cred, err := credentialFrom(cfg)
	if err != nil {
		return nil, err
	}
	if s, ok := cfg.Params["scope"].(string); ok && s != "" {
		scope = s
	}

	dsn := BuildDSN(cfg)
	return mssqldb.NewAccessTokenConnector(dsn, func() (string, error) {
		return credential.Token(context.Background(), cred, scope)
	})
}

// credentialFrom extracts the token credential from the config, falling back
// to the ambient Azure credential chain.
func credentialFrom(cfg adapter.Config) (credential.TokenCredential, error) {
	if v, ok := cfg.Params["credential"]; ok {
		cred, ok := v.(credential.TokenCredential)
		if !ok {
			return nil, fmt.Errorf("params[credential] is %T, want azcore.TokenCredential", v)
		}
		return cred, nil
	}
	return credential.Default()
}
