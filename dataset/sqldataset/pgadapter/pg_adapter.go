/*
Package pgadapter provides an sqldataset.Adapter for PostgreSQL
databases.
*/
package pgadapter

import (
	"database/sql"
	"fmt"
	"strings"

	// Import of postgres driver
	_ "github.com/lib/pq"
	"github.com/ubc-systopia/gosdt-guesses/dataset/sqldataset"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL connection string and returns an Adapter that
works on the database it points to or an error if the connection cannot
be opened.
*/
func New(connString string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres database: %v", err)
	}
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) ColumnName(name string) (string, error) {
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`column name %q contains invalid character '"'`, name)
	}
	return fmt.Sprintf("%q", name), nil
}

func (a *adapter) Close() error {
	return a.db.Close()
}
