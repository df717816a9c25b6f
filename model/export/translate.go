package export

import (
	"fmt"
)

/*
Translate rewrites a binary document in place from the canonical binary
feature encoding described by main into the alternate encoding described
by alternate. featureCount is the width of the binarized feature space,
under which leaf predictions are offset.

A leaf's prediction is encoded as featureCount plus its class index: its
canonical index is located in main and the value at the same position in
alternate, minus featureCount, becomes the translated prediction. An
internal node's feature index (or its negation, which flips the branch
sense) is located in main; the magnitude of the value at the same
position in alternate becomes the new index, a negative value flipping
the sense again. When the net sense is flipped the node's true and false
subtrees are swapped after both have been translated.

Translate returns an error wrapping ErrTranslationMismatch if an index
cannot be located in main or resolves out of alternate's range, and an
error wrapping ErrMalformedDocument if the document contains a promoted
node.
*/
func Translate(n Node, main, alternate Translation, featureCount int) error {
	switch node := n.(type) {
	case *Leaf:
		canonical := node.Prediction + featureCount
		position := index(main, canonical)
		if position < 0 {
			return fmt.Errorf("translating prediction %d: canonical index %d not in main map: %w", node.Prediction, canonical, ErrTranslationMismatch)
		}
		if position >= len(alternate) {
			return fmt.Errorf("translating prediction %d: position %d outside alternate map: %w", node.Prediction, position, ErrTranslationMismatch)
		}
		node.Prediction = alternate[position] - featureCount
		return nil
	case *Split:
		flip := false
		position := index(main, node.Feature)
		if position < 0 {
			position = index(main, -node.Feature)
			if position < 0 {
				return fmt.Errorf("translating feature %d: index not in main map: %w", node.Feature, ErrTranslationMismatch)
			}
			flip = true
		}
		if position >= len(alternate) {
			return fmt.Errorf("translating feature %d: position %d outside alternate map: %w", node.Feature, position, ErrTranslationMismatch)
		}
		translated := alternate[position]
		if translated < 0 {
			flip = !flip
			translated = -translated
		}
		node.Feature = translated
		if err := Translate(node.False, main, alternate, featureCount); err != nil {
			return err
		}
		if err := Translate(node.True, main, alternate, featureCount); err != nil {
			return err
		}
		if flip {
			node.True, node.False = node.False, node.True
		}
		return nil
	case *Nary:
		return fmt.Errorf("translating promoted node on feature %d: %w", node.Feature, ErrMalformedDocument)
	}
	return fmt.Errorf("translating node of type %T: %w", n, ErrMalformedDocument)
}

func index(t Translation, value int) int {
	for i, v := range t {
		if v == value {
			return i
		}
	}
	return -1
}
