/*
Package dataset exposes the read-only view of a binarized training set
that the model layer depends on: per-feature metadata, the global
configuration and the summary-statistics query that yields a leaf's
optimal constant prediction and its loss over a capture set.
*/
package dataset

import (
	"fmt"

	"github.com/ubc-systopia/gosdt-guesses/bitmask"
	"github.com/ubc-systopia/gosdt-guesses/feature"
)

/*
SummaryStatistics holds the optimal constant prediction for a subset of
rows and the loss incurred by predicting it.
*/
type SummaryStatistics struct {
	// Prediction is the class index of the majority class in the subset.
	Prediction int
	// Loss is the fraction of all dataset rows that are in the subset and
	// not of the majority class.
	Loss float64
}

/*
Config is the global configuration consulted at construction and export
time.
*/
type Config struct {
	// Regularization is the per-leaf complexity penalty.
	Regularization float64
	// NonBinary requests N-ary promotion when exporting trees.
	NonBinary bool
}

/*
Dataset is the read-only contract the model layer consumes. All methods
are pure in-memory queries, safe for concurrent use.
*/
type Dataset interface {
	// SummaryStatistics returns the optimal constant prediction and its
	// loss for the rows in the given capture set. An empty capture set is
	// a contract violation and yields an error.
	SummaryStatistics(captures *bitmask.Bitmask) (SummaryStatistics, error)
	// OriginalFeature returns the original feature index for a binary
	// feature index.
	OriginalFeature(binaryIndex int) (int, error)
	// BinaryFeature returns the metadata of a binary feature.
	BinaryFeature(binaryIndex int) (feature.BinaryFeature, error)
	// Feature returns the metadata of an original feature.
	Feature(index int) (feature.Feature, error)
	// FeatureCount returns the width of the binarized feature space. It
	// is also the offset under which predictions are encoded for
	// translation purposes.
	FeatureCount() int
	// ClassCount returns the number of target classes.
	ClassCount() int
	// SampleCount returns the number of rows.
	SampleCount() int
	// Regularization returns the per-leaf complexity penalty.
	Regularization() float64
	// NonBinary reports whether exports should promote binary cascades
	// into N-ary nodes.
	NonBinary() bool
}

type memoryDataset struct {
	metadata *feature.Metadata
	columns  []*bitmask.Bitmask
	targets  []*bitmask.Bitmask
	samples  int
	config   Config
}

/*
New takes feature metadata, one column bitmask per binary feature
marking the rows on which the feature tests true, one target bitmask per
class marking the rows of that class, and a configuration, and returns
an in-memory Dataset built with them. It returns an error if the
metadata does not describe the columns or the bitmask widths disagree.
*/
func New(metadata *feature.Metadata, columns, targets []*bitmask.Bitmask, config Config) (Dataset, error) {
	if err := metadata.Validate(); err != nil {
		return nil, fmt.Errorf("building dataset: %v", err)
	}
	if len(columns) != len(metadata.Binary) {
		return nil, fmt.Errorf("building dataset: %d columns for %d binary features", len(columns), len(metadata.Binary))
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("building dataset: no target classes")
	}
	samples := targets[0].Size()
	for _, bm := range append(append([]*bitmask.Bitmask{}, columns...), targets...) {
		if bm.Size() != samples {
			return nil, fmt.Errorf("building dataset: bitmask width %d does not match sample count %d", bm.Size(), samples)
		}
	}
	return &memoryDataset{
		metadata: metadata,
		columns:  columns,
		targets:  targets,
		samples:  samples,
		config:   config,
	}, nil
}

func (ds *memoryDataset) SummaryStatistics(captures *bitmask.Bitmask) (SummaryStatistics, error) {
	captured := captures.Count()
	if captured == 0 {
		return SummaryStatistics{}, fmt.Errorf("summary statistics: empty capture set")
	}
	best, bestCount := 0, -1
	for class, target := range ds.targets {
		var count int
		for i := 0; i < captures.Size(); i++ {
			if captures.Get(i) && target.Get(i) {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = class, count
		}
	}
	return SummaryStatistics{
		Prediction: best,
		Loss:       float64(captured-bestCount) / float64(ds.samples),
	}, nil
}

func (ds *memoryDataset) OriginalFeature(binaryIndex int) (int, error) {
	bf, err := ds.BinaryFeature(binaryIndex)
	if err != nil {
		return 0, err
	}
	return bf.Original, nil
}

func (ds *memoryDataset) BinaryFeature(binaryIndex int) (feature.BinaryFeature, error) {
	if binaryIndex < 0 || binaryIndex >= len(ds.metadata.Binary) {
		return feature.BinaryFeature{}, fmt.Errorf("unknown binary feature %d", binaryIndex)
	}
	return ds.metadata.Binary[binaryIndex], nil
}

func (ds *memoryDataset) Feature(index int) (feature.Feature, error) {
	if index < 0 || index >= len(ds.metadata.Features) {
		return feature.Feature{}, fmt.Errorf("unknown feature %d", index)
	}
	return ds.metadata.Features[index], nil
}

func (ds *memoryDataset) FeatureCount() int {
	return len(ds.metadata.Binary)
}

func (ds *memoryDataset) ClassCount() int {
	return len(ds.targets)
}

func (ds *memoryDataset) SampleCount() int {
	return ds.samples
}

func (ds *memoryDataset) Regularization() float64 {
	return ds.config.Regularization
}

func (ds *memoryDataset) NonBinary() bool {
	return ds.config.NonBinary
}
