package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubc-systopia/gosdt-guesses/feature"
)

func TestMarshalLeaf(t *testing.T) {
	data, err := Marshal(&Leaf{Prediction: 1, Loss: 0.125, Complexity: 0.01})
	require.NoError(t, err)
	assert.JSONEq(t, `{"prediction":1,"loss":0.125,"complexity":0.01}`, string(data))
}

func TestMarshalBinarySplit(t *testing.T) {
	doc := &Split{
		Feature:         2,
		OriginalFeature: 1,
		Name:            "color",
		Type:            feature.Categorical,
		Relation:        "==",
		Category:        "red",
		False:           &Leaf{Prediction: 0, Loss: 0.25, Complexity: 0.01},
		True:            &Leaf{Prediction: 1, Loss: 0, Complexity: 0.01},
	}
	data, err := Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"feature": 2,
		"orig_feature": 1,
		"name": "color",
		"type": "categorical",
		"relation": "==",
		"reference": "red",
		"false": {"prediction":0,"loss":0.25,"complexity":0.01},
		"true": {"prediction":1,"loss":0,"complexity":0.01}
	}`, string(data))
}

func TestMarshalPromotedNode(t *testing.T) {
	doc := &Nary{
		Feature:         0,
		OriginalFeature: 0,
		Name:            "x",
		Type:            feature.Rational,
		Children: []Child{
			{In: &Interval{Lower: ref(7)}, Then: &Leaf{Prediction: 2, Loss: 0, Complexity: 0.01}},
			{In: &Interval{Lower: ref(3), Upper: ref(7)}, Then: &Leaf{Prediction: 1, Loss: 0, Complexity: 0.01}},
			{In: &Interval{Upper: ref(3)}, Then: &Leaf{Prediction: 0, Loss: 0, Complexity: 0.01}},
		},
	}
	data, err := Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"feature": 0,
		"orig_feature": 0,
		"name": "x",
		"type": "rational",
		"children": [
			{"in": [7, null], "then": {"prediction":2,"loss":0,"complexity":0.01}},
			{"in": [3, 7], "then": {"prediction":1,"loss":0,"complexity":0.01}},
			{"in": [null, 3], "then": {"prediction":0,"loss":0,"complexity":0.01}}
		]
	}`, string(data))
}

func TestBinaryDocumentRoundTrip(t *testing.T) {
	doc := orderedSplit(0, 0, 3, testLeaf(0), categoricalSplit(2, 1, "red", testLeaf(1), testLeaf(2)))
	data, err := Marshal(doc)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Node(doc), parsed)

	// The reconstructed tree preserves the leaf multiset and totals.
	leaves, loss, complexity := totals(parsed)
	originalLeaves, originalLoss, originalComplexity := totals(doc)
	assert.Equal(t, originalLeaves, leaves)
	assert.Equal(t, originalLoss, loss)
	assert.Equal(t, originalComplexity, complexity)
}

func TestPromotedDocumentRoundTrip(t *testing.T) {
	inner := orderedSplit(1, 0, 7, testLeaf(1), testLeaf(2))
	promoted, err := Promote(orderedSplit(0, 0, 3, testLeaf(0), inner))
	require.NoError(t, err)
	data, err := Marshal(promoted)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, promoted, parsed)
}

func TestMarshalIndent(t *testing.T) {
	data, err := MarshalIndent(testLeaf(0), "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"prediction\": 0")
}

func TestParseCategoricalConditions(t *testing.T) {
	data := []byte(`{
		"feature": 2, "orig_feature": 1, "type": "categorical",
		"children": [
			{"in": "red", "then": {"prediction":1,"loss":0,"complexity":0.01}},
			{"in": "default", "then": {"prediction":0,"loss":0,"complexity":0.01}}
		]
	}`)
	parsed, err := Parse(data)
	require.NoError(t, err)
	nary, ok := parsed.(*Nary)
	require.True(t, ok)
	require.Len(t, nary.Children, 2)
	assert.Equal(t, Category("red"), nary.Children[0].In)
	assert.Equal(t, Default{}, nary.Children[1].In)
}

func TestParseMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no recognizable shape", `{"foo": 1}`},
		{"split without subtrees", `{"feature": 0, "orig_feature": 0, "type": "rational", "relation": ">=", "reference": 3}`},
		{"split with unknown type", `{"feature": 0, "orig_feature": 0, "type": "imaginary", "relation": ">=", "true": {"prediction":0,"loss":0,"complexity":0}, "false": {"prediction":1,"loss":0,"complexity":0}}`},
		{"child without condition", `{"feature": 0, "orig_feature": 0, "type": "rational", "children": [{"then": {"prediction":0,"loss":0,"complexity":0}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedDocument)
		})
	}
}

func totals(doc Node) (leaves int, loss, complexity float64) {
	switch node := doc.(type) {
	case *Leaf:
		return 1, node.Loss, node.Complexity
	case *Split:
		for _, subtree := range []Node{node.False, node.True} {
			l, lo, c := totals(subtree)
			leaves += l
			loss += lo
			complexity += c
		}
	case *Nary:
		for _, child := range node.Children {
			l, lo, c := totals(child.Then)
			leaves += l
			loss += lo
			complexity += c
		}
	}
	return leaves, loss, complexity
}
