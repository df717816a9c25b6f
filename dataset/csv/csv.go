/*
Package csv provides a dataset source reading binarized samples from
CSV streams: one row per sample, one 0/1 cell per binary feature in
metadata order, and a trailing integer class index.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ubc-systopia/gosdt-guesses/bitmask"
	"github.com/ubc-systopia/gosdt-guesses/dataset"
	"github.com/ubc-systopia/gosdt-guesses/feature"
)

/*
Read takes an io.Reader for a CSV stream, the feature metadata
describing its columns and a dataset configuration and returns a
dataset built with the parsed samples or an error.

A first row whose cells do not parse as integers is treated as a header
and skipped. Every other row must hold a 0 or 1 cell for each binary
feature followed by a non-negative class index.
*/
func Read(reader io.Reader, metadata *feature.Metadata, config dataset.Config) (dataset.Dataset, error) {
	records, err := csv.NewReader(reader).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv samples: %v", err)
	}
	if len(records) > 0 && !numericRecord(records[0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading csv samples: no samples")
	}
	width := len(metadata.Binary) + 1
	rows := make([][]int, 0, len(records))
	classes := 0
	for i, record := range records {
		if len(record) != width {
			return nil, fmt.Errorf("reading csv sample %d: %d cells, expected %d", i, len(record), width)
		}
		row := make([]int, width)
		for j, cell := range record {
			v, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("reading csv sample %d: cell %d: %v", i, j, err)
			}
			if j < width-1 && v != 0 && v != 1 {
				return nil, fmt.Errorf("reading csv sample %d: binary feature %d has value %d", i, j, v)
			}
			row[j] = v
		}
		class := row[width-1]
		if class < 0 {
			return nil, fmt.Errorf("reading csv sample %d: negative class %d", i, class)
		}
		if class+1 > classes {
			classes = class + 1
		}
		rows = append(rows, row)
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
		for j := 0; j < width-1; j++ {
			if row[j] == 1 {
				columns[j].Set(i)
			}
		}
		targets[row[width-1]].Set(i)
	}
	return dataset.New(metadata, columns, targets, config)
}

/*
ReadFromFile takes a filepath string and uses Read to parse its
contents and return a dataset or an error.
*/
func ReadFromFile(filepath string, metadata *feature.Metadata, config dataset.Config) (dataset.Dataset, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading csv samples from %s: %v", filepath, err)
	}
	defer f.Close()
	ds, err := Read(f, metadata, config)
	if err != nil {
		err = fmt.Errorf("parsing csv samples from %s: %v", filepath, err)
	}
	return ds, err
}

func numericRecord(record []string) bool {
	for _, cell := range record {
		if _, err := strconv.Atoi(cell); err != nil {
			return false
		}
	}
	return true
}
