/*
Package yaml provides methods to parse feature.Metadata specifications
describing a binarized feature space from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/ubc-systopia/gosdt-guesses/feature"
	yaml "gopkg.in/yaml.v2"
)

type yamlMetadata struct {
	Features []yamlFeature       `yaml:"features"`
	Binary   []yamlBinaryFeature `yaml:"binary"`
}

type yamlFeature struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type yamlBinaryFeature struct {
	Feature   string   `yaml:"feature"`
	Reference *float64 `yaml:"reference"`
	Category  *string  `yaml:"category"`
}

/*
ReadMetadata takes a slice of bytes with a feature specification in YAML
and returns the feature.Metadata parsed from it or an error.

The YAML is expected to be an object with a features list, each entry
declaring a name and a type (integral, rational or categorical), and a
binary list, each entry declaring the original feature it tests by name
plus a reference threshold (ordered features) or a category value
(categorical features). Binary feature indices are assigned in
declaration order.
*/
func ReadMetadata(md []byte) (*feature.Metadata, error) {
	ym := &yamlMetadata{}
	err := yaml.Unmarshal(md, ym)
	if err != nil {
		return nil, fmt.Errorf("parsing yaml features: %v", err)
	}
	if len(ym.Features) == 0 {
		return nil, fmt.Errorf("metadata has no feature information")
	}
	metadata := &feature.Metadata{}
	indexByName := make(map[string]int)
	for i, yf := range ym.Features {
		t, err := feature.ParseType(yf.Type)
		if err != nil {
			return nil, fmt.Errorf("parsing feature %s: %v", yf.Name, err)
		}
		metadata.Features = append(metadata.Features, feature.Feature{Name: yf.Name, Type: t})
		indexByName[yf.Name] = i
	}
	for i, yb := range ym.Binary {
		original, ok := indexByName[yb.Feature]
		if !ok {
			return nil, fmt.Errorf("binary feature %d references unknown feature %q", i, yb.Feature)
		}
		bf := feature.BinaryFeature{Index: i, Original: original}
		if metadata.Features[original].Type.Ordered() {
			if yb.Reference == nil {
				return nil, fmt.Errorf("binary feature %d on ordered feature %s has no reference", i, yb.Feature)
			}
			bf.Relation = ">="
			bf.Reference = *yb.Reference
		} else {
			if yb.Category == nil {
				return nil, fmt.Errorf("binary feature %d on categorical feature %s has no category", i, yb.Feature)
			}
			bf.Relation = "=="
			bf.Category = *yb.Category
		}
		metadata.Binary = append(metadata.Binary, bf)
	}
	if err := metadata.Validate(); err != nil {
		return nil, fmt.Errorf("validating yaml features: %v", err)
	}
	return metadata, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and
uses ReadMetadata to parse it and return the feature.Metadata or an
error. If the file cannot be opened for reading an error is returned.
*/
func ReadMetadataFromFile(filepath string) (*feature.Metadata, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading features yaml file %s: %v", filepath, err)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing features yaml file %s: %v", filepath, err)
	}
	return metadata, err
}
