/*
Package sqldataset provides a dataset source reading binarized samples
from a SQL table through an Adapter that abstracts the specific driver
and dialect. The table is expected to hold one integer column per
binary feature, named x0..xN in metadata order, plus a class column.
*/
package sqldataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ubc-systopia/gosdt-guesses/bitmask"
	"github.com/ubc-systopia/gosdt-guesses/dataset"
	"github.com/ubc-systopia/gosdt-guesses/feature"
)

// ClassColumn is the name of the column holding the sample class index.
const ClassColumn = "class"

/*
Adapter is an interface for types adapting a specific SQL driver and
dialect to this package.
*/
type Adapter interface {
	// DB returns the open database handle.
	DB() *sql.DB
	// ColumnName validates a column name and returns it quoted for the
	// dialect, or an error if the name cannot be used.
	ColumnName(name string) (string, error)
	// Close closes the underlying database handle.
	Close() error
}

/*
Read takes a context, an adapter, a table name, the feature metadata
describing the binarized feature space and a dataset configuration, and
returns a dataset built from the samples in the table or an error.
*/
func Read(ctx context.Context, a Adapter, table string, metadata *feature.Metadata, config dataset.Config) (dataset.Dataset, error) {
	query, err := sampleQuery(a, table, len(metadata.Binary))
	if err != nil {
		return nil, fmt.Errorf("reading samples from %s: %v", table, err)
	}
	sqlRows, err := a.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying samples from %s: %v", table, err)
	}
	defer sqlRows.Close()
	var rows [][]int
	classes := 0
	for sqlRows.Next() {
		row := make([]int, len(metadata.Binary)+1)
		scan := make([]interface{}, len(row))
		for i := range row {
			scan[i] = &row[i]
		}
		if err := sqlRows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("scanning sample %d from %s: %v", len(rows), table, err)
		}
		class := row[len(row)-1]
		if class < 0 {
			return nil, fmt.Errorf("scanning sample %d from %s: negative class %d", len(rows), table, class)
		}
		if class+1 > classes {
			classes = class + 1
		}
		rows = append(rows, row)
	}
	if err := sqlRows.Err(); err != nil {
		return nil, fmt.Errorf("reading samples from %s: %v", table, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("reading samples from %s: no samples", table)
	}
	columns := make([]*bitmask.Bitmask, len(metadata.Binary))
	for j := range columns {
		columns[j] = bitmask.New(len(rows))
	}
	targets := make([]*bitmask.Bitmask, classes)
	for c := range targets {
		targets[c] = bitmask.New(len(rows))
	}
	for i, row := range rows {
		for j := 0; j < len(metadata.Binary); j++ {
			if row[j] != 0 {
				columns[j].Set(i)
			}
		}
		targets[row[len(row)-1]].Set(i)
	}
	return dataset.New(metadata, columns, targets, config)
}

func sampleQuery(a Adapter, table string, binaryFeatures int) (string, error) {
	columns := make([]string, 0, binaryFeatures+1)
	for i := 0; i < binaryFeatures; i++ {
		c, err := a.ColumnName(fmt.Sprintf("x%d", i))
		if err != nil {
			return "", err
		}
		columns = append(columns, c)
	}
	c, err := a.ColumnName(ClassColumn)
	if err != nil {
		return "", err
	}
	columns = append(columns, c)
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), table), nil
}
