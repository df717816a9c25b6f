package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubc-systopia/gosdt-guesses/bitmask"
	"github.com/ubc-systopia/gosdt-guesses/feature"
)

func testMetadata() *feature.Metadata {
	return &feature.Metadata{
		Features: []feature.Feature{
			{Name: "age", Type: feature.Rational},
			{Name: "color", Type: feature.Categorical},
		},
		Binary: []feature.BinaryFeature{
			{Index: 0, Original: 0, Relation: ">=", Reference: 3},
			{Index: 1, Original: 0, Relation: ">=", Reference: 7},
			{Index: 2, Original: 1, Relation: "==", Category: "red"},
		},
	}
}

func testDataset(t *testing.T, config Config) Dataset {
	t.Helper()
	columns := []*bitmask.Bitmask{
		bitmask.FromIndices(8, 2, 3, 4, 5, 6, 7),
		bitmask.FromIndices(8, 6, 7),
		bitmask.FromIndices(8, 1, 3, 5, 7),
	}
	targets := []*bitmask.Bitmask{
		bitmask.FromIndices(8, 0, 1, 2, 3),
		bitmask.FromIndices(8, 4, 5, 6, 7),
	}
	ds, err := New(testMetadata(), columns, targets, config)
	require.NoError(t, err)
	return ds
}

func TestSummaryStatistics(t *testing.T) {
	ds := testDataset(t, Config{Regularization: 0.01})
	tests := []struct {
		name       string
		captures   *bitmask.Bitmask
		prediction int
		loss       float64
	}{
		{"pure class 0", bitmask.FromIndices(8, 0, 1, 2, 3), 0, 0},
		{"pure class 1", bitmask.FromIndices(8, 4, 5, 6, 7), 1, 0},
		{"majority class 0", bitmask.FromIndices(8, 0, 1, 4), 0, 1.0 / 8},
		{"single row", bitmask.FromIndices(8, 6), 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := ds.SummaryStatistics(tt.captures)
			require.NoError(t, err)
			assert.Equal(t, tt.prediction, stats.Prediction)
			assert.InDelta(t, tt.loss, stats.Loss, 1e-12)
		})
	}
}

func TestSummaryStatisticsEmptyCaptureSet(t *testing.T) {
	ds := testDataset(t, Config{})
	_, err := ds.SummaryStatistics(bitmask.New(8))
	assert.Error(t, err)
}

func TestFeatureQueries(t *testing.T) {
	ds := testDataset(t, Config{Regularization: 0.05, NonBinary: true})
	assert.Equal(t, 3, ds.FeatureCount())
	assert.Equal(t, 2, ds.ClassCount())
	assert.Equal(t, 8, ds.SampleCount())
	assert.Equal(t, 0.05, ds.Regularization())
	assert.True(t, ds.NonBinary())

	original, err := ds.OriginalFeature(1)
	require.NoError(t, err)
	assert.Equal(t, 0, original)

	bf, err := ds.BinaryFeature(2)
	require.NoError(t, err)
	assert.Equal(t, "==", bf.Relation)
	assert.Equal(t, "red", bf.Category)

	f, err := ds.Feature(1)
	require.NoError(t, err)
	assert.Equal(t, feature.Categorical, f.Type)

	_, err = ds.OriginalFeature(3)
	assert.Error(t, err)
	_, err = ds.Feature(-1)
	assert.Error(t, err)
}

func TestNewValidation(t *testing.T) {
	metadata := testMetadata()
	columns := []*bitmask.Bitmask{bitmask.New(8), bitmask.New(8), bitmask.New(8)}
	targets := []*bitmask.Bitmask{bitmask.New(8), bitmask.New(8)}

	_, err := New(metadata, columns[:2], targets, Config{})
	assert.Error(t, err, "missing column")

	_, err = New(metadata, columns, nil, Config{})
	assert.Error(t, err, "no targets")

	_, err = New(metadata, columns, []*bitmask.Bitmask{bitmask.New(8), bitmask.New(9)}, Config{})
	assert.Error(t, err, "width mismatch")
}
