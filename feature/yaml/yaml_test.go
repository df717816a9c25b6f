package yaml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubc-systopia/gosdt-guesses/feature"
)

const testMetadataYAML = `
features:
  - name: age
    type: rational
  - name: color
    type: categorical
binary:
  - feature: age
    reference: 3
  - feature: age
    reference: 7
  - feature: color
    category: red
`

func TestReadMetadata(t *testing.T) {
	metadata, err := ReadMetadata([]byte(testMetadataYAML))
	require.NoError(t, err)
	require.Len(t, metadata.Features, 2)
	assert.Equal(t, feature.Feature{Name: "age", Type: feature.Rational}, metadata.Features[0])
	assert.Equal(t, feature.Feature{Name: "color", Type: feature.Categorical}, metadata.Features[1])

	require.Len(t, metadata.Binary, 3)
	assert.Equal(t, feature.BinaryFeature{Index: 0, Original: 0, Relation: ">=", Reference: 3}, metadata.Binary[0])
	assert.Equal(t, feature.BinaryFeature{Index: 1, Original: 0, Relation: ">=", Reference: 7}, metadata.Binary[1])
	assert.Equal(t, feature.BinaryFeature{Index: 2, Original: 1, Relation: "==", Category: "red"}, metadata.Binary[2])
}

func TestReadMetadataErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", ":"},
		{"no features", "binary: []"},
		{"unknown type", "features:\n  - name: age\n    type: imaginary"},
		{"unknown feature reference", "features:\n  - name: age\n    type: rational\nbinary:\n  - feature: height\n    reference: 1"},
		{"ordered without reference", "features:\n  - name: age\n    type: rational\nbinary:\n  - feature: age"},
		{"categorical without category", "features:\n  - name: color\n    type: categorical\nbinary:\n  - feature: color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadMetadata([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestReadMetadataFromMissingFile(t *testing.T) {
	_, err := ReadMetadataFromFile("does/not/exist.yml")
	assert.Error(t, err)
}

func TestReadMetadataFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.yml")
	require.NoError(t, os.WriteFile(path, []byte(testMetadataYAML), 0644))
	metadata, err := ReadMetadataFromFile(path)
	require.NoError(t, err)
	assert.Len(t, metadata.Binary, 3)
}
