//go:build integration
// +build integration

package tests

import (
	"fmt"
	"os"
	"strings"
	"testing"

	dbadapter "promanager/internal/adapter/db"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// openMySQL connects to a dedicated *_test database, drops whatever a previous
// run left behind and applies the embedded migrations.
func openMySQL(t *testing.T) *sqlx.DB {
	t.Helper()

	host := envOrDefault("MYSQL_HOST", "127.0.0.1")
	port := envOrDefault("MYSQL_PORT", "3306")
	rootUser := envOrDefault("MYSQL_ROOT_USER", "root")
	rootPassword := envOrDefault("MYSQL_ROOT_PASSWORD", "root")
	database := envOrDefault("MYSQL_TEST_DATABASE", envOrDefault("MYSQL_DATABASE", "promanager")+"_test")
	params := envOrDefault("MYSQL_PARAMS", "parseTime=true&multiStatements=true")

	adminDB, err := sqlx.Connect(dbadapter.DriverMySQL, mysqlDSN(rootUser, rootPassword, host, port, "", params))
	if err != nil {
		t.Skipf("skipping integration suite: could not connect to mysql: %v", err)
	}
	t.Cleanup(func() { _ = adminDB.Close() })

	_, err = adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", database))
	require.NoError(t, err)

	db, err := sqlx.Connect(dbadapter.DriverMySQL, mysqlDSN(rootUser, rootPassword, host, port, database, params))
	require.NoError(t, err)

	_, err = db.Exec(`
DROP TABLE IF EXISTS checklist_items;
DROP TABLE IF EXISTS tasks;
DROP TABLE IF EXISTS schema_version;
`)
	require.NoError(t, err)
	require.NoError(t, dbadapter.Migrate(db))

	t.Cleanup(func() {
		require.NoError(t, db.Close())
		// Only ever drop databases this suite owns.
		if strings.HasSuffix(database, "_test") {
			_, err := adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", database))
			require.NoError(t, err)
		}
	})

	return db
}

func mysqlDSN(user, password, host, port, database, params string) string {
	if database == "" {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/?%s", user, password, host, port, params)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, password, host, port, database, params)
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
