package db

import (
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"promanager/internal/config"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// ConnectDB opens the configured database and applies pending migrations.
func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch conf.DbDriver {
	case DriverMySQL, "":
		db, err = sqlx.Connect(DriverMySQL, mysqlDSN(conf))
	case DriverSQLite:
		db, err = OpenSQLite(conf.SqlitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.DbDriver)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// OpenSQLite opens a SQLite database with foreign keys enforced so checklist
// rows follow their task on delete. Times are written in SQLite's own layout
// so created_at range filters compare correctly as text.
func OpenSQLite(path string) (*sqlx.DB, error) {
	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}
	dsn := path + separator + "_pragma=foreign_keys(1)&_time_format=sqlite"

	db, err := sqlx.Connect(DriverSQLite, dsn)
	if err != nil {
		return nil, err
	}

	// ":memory:" databases exist per connection.
	db.SetMaxOpenConns(1)

	return db, nil
}

func mysqlDSN(conf *config.Config) string {
	params := conf.DbParams
	if params == "" {
		params = "parseTime=true&multiStatements=true"
	}

	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?%s",
		conf.DbUser,
		conf.DbPassword,
		conf.DbHost,
		conf.DbPort,
		conf.DbName,
		params,
	)
}
