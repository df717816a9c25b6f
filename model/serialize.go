package model

import (
	"fmt"
	"strings"

	"github.com/ubc-systopia/gosdt-guesses/dataset"
	"github.com/ubc-systopia/gosdt-guesses/model/export"
)

/*
Document renders the tree as an interchange document against the given
dataset. Leaf complexity is read fresh from the dataset configuration;
leaf loss is the value computed at construction time, which translation
does not affect. A subtree carrying a branch translation map is
rewritten from its own encoding into the branch's map before being
embedded. If the dataset requests non-binary output the rendered
document is passed through N-ary promotion as a final pass; the Model
itself is never altered.
*/
func (m *Model) Document(ds dataset.Dataset) (export.Node, error) {
	doc, err := m.render(ds)
	if err != nil {
		return nil, err
	}
	if ds.NonBinary() {
		doc, err = export.Promote(doc)
		if err != nil {
			return nil, fmt.Errorf("promoting exported tree: %w", err)
		}
	}
	return doc, nil
}

func (m *Model) render(ds dataset.Dataset) (export.Node, error) {
	if m.leaf != nil {
		return &export.Leaf{
			Prediction: m.leaf.prediction,
			Loss:       m.leaf.loss,
			Complexity: ds.Regularization(),
		}, nil
	}
	bf, err := ds.BinaryFeature(m.split.binaryFeature)
	if err != nil {
		return nil, fmt.Errorf("rendering split: %v", err)
	}
	f, err := ds.Feature(m.split.feature)
	if err != nil {
		return nil, fmt.Errorf("rendering split: %v", err)
	}
	negative, err := m.split.negative.render(ds)
	if err != nil {
		return nil, err
	}
	positive, err := m.split.positive.render(ds)
	if err != nil {
		return nil, err
	}
	if len(m.negativeMap) > 0 {
		err = export.Translate(negative, m.split.negative.selfMap, m.negativeMap, ds.FeatureCount())
		if err != nil {
			return nil, fmt.Errorf("reconciling negative subtree of feature %d: %w", m.split.binaryFeature, err)
		}
	}
	if len(m.positiveMap) > 0 {
		err = export.Translate(positive, m.split.positive.selfMap, m.positiveMap, ds.FeatureCount())
		if err != nil {
			return nil, fmt.Errorf("reconciling positive subtree of feature %d: %w", m.split.binaryFeature, err)
		}
	}
	return &export.Split{
		Feature:         m.split.binaryFeature,
		OriginalFeature: m.split.feature,
		Name:            f.Name,
		Type:            f.Type,
		Relation:        bf.Relation,
		Reference:       bf.Reference,
		Category:        bf.Category,
		False:           negative,
		True:            positive,
	}, nil
}

func (m *Model) String() string {
	return m.subtreeString()
}

func (m *Model) subtreeString() string {
	if m.leaf != nil {
		return fmt.Sprintf("[predict %d loss %g]\n", m.leaf.prediction, m.leaf.loss)
	}
	result := fmt.Sprintf("[feature %d]\n", m.split.binaryFeature)
	for i, subtree := range []*Model{m.split.negative, m.split.positive} {
		for j, line := range strings.Split(subtree.subtreeString(), "\n") {
			if len(line) == 0 {
				continue
			}
			if j == 0 {
				result = fmt.Sprintf("%s|__%s\n", result, line)
			} else if i == 1 {
				result = fmt.Sprintf("%s   %s\n", result, line)
			} else {
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}
