/*
Package mongodataset provides a dataset source reading binarized
samples from a MongoDB collection. Each document is expected to hold
the indices of the binary features that test true for the sample and
its class index.
*/
package mongodataset

import (
	"context"
	"fmt"

	"github.com/ubc-systopia/gosdt-guesses/bitmask"
	"github.com/ubc-systopia/gosdt-guesses/dataset"
	"github.com/ubc-systopia/gosdt-guesses/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const samplesCollectionName = "samples"

type mongoSample struct {
	Bits  []int `bson:"bits"`
	Class int   `bson:"class"`
}

/*
Read takes a context, a mgo session, a database name, the feature
metadata describing the binarized feature space and a dataset
configuration, and returns a dataset built from the samples in the
database's samples collection or an error.
*/
func Read(ctx context.Context, session *mgo.Session, db string, metadata *feature.Metadata, config dataset.Config) (dataset.Dataset, error) {
	var samples []mongoSample
	err := session.DB(db).C(samplesCollectionName).Find(bson.M{}).All(&samples)
	if err != nil {
		return nil, fmt.Errorf("reading samples from mongodb database %s: %v", db, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("reading samples from mongodb database %s: no samples", db)
	}
	classes := 0
	for i, s := range samples {
		if s.Class < 0 {
			return nil, fmt.Errorf("sample %d in mongodb database %s: negative class %d", i, db, s.Class)
		}
		if s.Class+1 > classes {
			classes = s.Class + 1
		}
	}
	columns := make([]*bitmask.Bitmask, len(metadata.Binary))
	for j := range columns {
		columns[j] = bitmask.New(len(samples))
	}
	targets := make([]*bitmask.Bitmask, classes)
	for c := range targets {
		targets[c] = bitmask.New(len(samples))
	}
	for i, s := range samples {
		for _, bit := range s.Bits {
			if bit < 0 || bit >= len(columns) {
				return nil, fmt.Errorf("sample %d in mongodb database %s: unknown binary feature %d", i, db, bit)
			}
			columns[bit].Set(i)
		}
		targets[s.Class].Set(i)
	}
	return dataset.New(metadata, columns, targets, config)
}

/*
Write takes a context, a mgo session, a database name and binarized
samples as rows of 0/1 binary feature values plus a class index, and
stores them in the database's samples collection. It returns the number
of samples written and an error if the insertion fails.
*/
func Write(ctx context.Context, session *mgo.Session, db string, rows [][]int, binaryFeatures int) (int, error) {
	collection := session.DB(db).C(samplesCollectionName)
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if len(row) != binaryFeatures+1 {
			return i, fmt.Errorf("writing sample %d: %d cells, expected %d", i, len(row), binaryFeatures+1)
		}
		s := mongoSample{Class: row[binaryFeatures]}
		for j := 0; j < binaryFeatures; j++ {
			if row[j] != 0 {
				s.Bits = append(s.Bits, j)
			}
		}
		if err := collection.Insert(&s); err != nil {
			return i, fmt.Errorf("writing sample %d to mongodb database %s: %v", i, db, err)
		}
	}
	return len(rows), nil
}
