package mssql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kustosql/kustosql/pkg/adapter"
)

func TestBuildDSN_Native(t *testing.T) {
	driver, dsn := BuildDSN(adapter.Config{
		Host:     "localhost",
		Database: "master",
		Username: "sa",
		Password: "secret",
	})

	assert.Equal(t, DriverNative, driver)
	assert.Equal(t, "odbc:server=localhost;database=master;user id=sa;password=secret", dsn)
}

func TestBuildDSN_NativeWithPort(t *testing.T) {
	_, dsn := BuildDSN(adapter.Config{Host: "localhost", Port: 1433, Database: "master"})

	assert.Equal(t, "odbc:server=localhost,1433;database=master", dsn)
}

func TestBuildDSN_ODBC(t *testing.T) {
	driver, dsn := BuildDSN(adapter.Config{
		Host:     "db.example.com",
		Database: "master",
		Username: "sa",
		Password: "secret",
		Options:  map[string]string{"driver": DriverODBC},
	})

	assert.Equal(t, DriverODBC, driver)
	assert.Equal(t, "Driver={ODBC Driver 17 for SQL Server};Server=db.example.com;Database=master;UID=sa;PWD=secret", dsn)
}

func TestBuildDSN_ODBCCustomDriver(t *testing.T) {
	_, dsn := BuildDSN(adapter.Config{
		Host: "db.example.com",
		Options: map[string]string{
			"driver":      DriverODBC,
			"odbc_driver": "ODBC Driver 18 for SQL Server",
		},
	})

	assert.Contains(t, dsn, "Driver={ODBC Driver 18 for SQL Server}")
	assert.NotContains(t, dsn, "odbc_driver", "reserved options never reach the connection string")
}

func TestBuildDSN_OptionsPassthroughSorted(t *testing.T) {
	_, dsn := BuildDSN(adapter.Config{
		Host: "localhost",
		Options: map[string]string{
			"encrypt":            "true",
			"app name":           "kustosql",
			"connection timeout": "30",
		},
	})

	assert.Equal(t, "odbc:server=localhost;app name=kustosql;connection timeout=30;encrypt=true", dsn)
}
