/*
Package model provides the decision-tree entity produced by the search
engine: an immutable tree of leaf and split nodes over capture sets,
with a canonical content-derived identity used to recognize structurally
identical subtrees, and the export path that renders a tree to its
interchange document.

Models are read-only after construction except for two one-shot
metadata writes: the identifier a cache assigns on interning and the
translation maps set when a subtree is grafted under a parent built
against a different binary feature encoding. Neither participates in
identity. Hashing, equality and rendering are pure traversals and are
safe to run concurrently on a shared subtree; the caller assigning
metadata is responsible for ordering that write before concurrent
reads.
*/
package model

import (
	"fmt"
	"sort"

	"github.com/ubc-systopia/gosdt-guesses/bitmask"
	"github.com/ubc-systopia/gosdt-guesses/dataset"
	"github.com/ubc-systopia/gosdt-guesses/model/export"
)

/*
Translation maps canonical binary feature indices to an alternate
encoding's indices, negated when the feature sense is inverted.
*/
type Translation = export.Translation

// 64-bit golden ratio constant of the hash-combine step.
const hashConstant = 0x9e3779b97f4a7c15

/*
Model is a node of a decision tree: either a leaf holding a constant
prediction for its capture set, or a split on a binary feature with a
negative (feature false) and a positive (feature true) subtree. Exactly
one of the two shapes is populated.
*/
type Model struct {
	leaf  *leafNode
	split *splitNode

	identifier  *bitmask.Bitmask
	selfMap     Translation
	negativeMap Translation
	positiveMap Translation
}

type leafNode struct {
	prediction int
	loss       float64
	complexity float64
	captures   *bitmask.Bitmask
}

type splitNode struct {
	binaryFeature int
	feature       int
	negative      *Model
	positive      *Model
}

/*
NewLeaf takes the capture set of the rows reaching the leaf and a
dataset and returns a terminal Model holding the dataset's optimal
constant prediction for that subset, its loss, and the configured
per-leaf complexity penalty. The Model takes ownership of the capture
set. It returns an error if the dataset cannot compute summary
statistics for the capture set.
*/
func NewLeaf(captures *bitmask.Bitmask, ds dataset.Dataset) (*Model, error) {
	stats, err := ds.SummaryStatistics(captures)
	if err != nil {
		return nil, fmt.Errorf("building leaf: %v", err)
	}
	return &Model{leaf: &leafNode{
		prediction: stats.Prediction,
		loss:       stats.Loss,
		complexity: ds.Regularization(),
		captures:   captures,
	}}, nil
}

/*
NewSplit takes a binary feature index, the two already-built subtrees
for the feature's false and true outcomes, and a dataset, and returns a
non-terminal Model splitting on that feature. Ownership of the subtrees
transfers to the new Model. It returns an error if the dataset does not
know the binary feature.
*/
func NewSplit(binaryFeature int, negative, positive *Model, ds dataset.Dataset) (*Model, error) {
	original, err := ds.OriginalFeature(binaryFeature)
	if err != nil {
		return nil, fmt.Errorf("building split: %v", err)
	}
	return &Model{split: &splitNode{
		binaryFeature: binaryFeature,
		feature:       original,
		negative:      negative,
		positive:      positive,
	}}, nil
}

// Terminal reports whether the Model is a leaf.
func (m *Model) Terminal() bool {
	return m.leaf != nil
}

// Negative returns the subtree for the split feature's false outcome,
// or nil for a leaf.
func (m *Model) Negative() *Model {
	if m.split == nil {
		return nil
	}
	return m.split.negative
}

// Positive returns the subtree for the split feature's true outcome,
// or nil for a leaf.
func (m *Model) Positive() *Model {
	if m.split == nil {
		return nil
	}
	return m.split.positive
}

/*
Identify assigns the identifier tag given to the Model by the interning
cache. It is a one-shot write owned by the cache.
*/
func (m *Model) Identify(identifier *bitmask.Bitmask) {
	m.identifier = identifier
}

// Identified reports whether an identifier has been assigned.
func (m *Model) Identified() bool {
	return m.identifier != nil
}

// Identifier returns the identifier assigned by the interning cache,
// or nil if the Model has not been interned.
func (m *Model) Identifier() *bitmask.Bitmask {
	return m.identifier
}

/*
TranslateSelf records the translation map describing this subtree's own
binary feature encoding relative to the canonical one.
*/
func (m *Model) TranslateSelf(t Translation) {
	m.selfMap = t
}

/*
TranslateNegatives records the translation map under which the negative
subtree must be rewritten at export time.
*/
func (m *Model) TranslateNegatives(t Translation) {
	m.negativeMap = t
}

/*
TranslatePositives records the translation map under which the positive
subtree must be rewritten at export time.
*/
func (m *Model) TranslatePositives(t Translation) {
	m.positiveMap = t
}

/*
Partitions returns the capture sets of the tree's leaves in canonical
order: the sets are collected by a negative-before-positive depth-first
traversal and then ordered by the lowest row index each one captures,
so that trees denoting the same partition of rows produce the same
sequence regardless of the order their branches were built in.
*/
func (m *Model) Partitions() []*bitmask.Bitmask {
	var captures []*bitmask.Bitmask
	m.partitions(&captures)
	sort.SliceStable(captures, func(i, j int) bool {
		return captures[i].LowestBit() < captures[j].LowestBit()
	})
	return captures
}

func (m *Model) partitions(captures *[]*bitmask.Bitmask) {
	if m.leaf != nil {
		*captures = append(*captures, m.leaf.captures)
		return
	}
	m.split.negative.partitions(captures)
	m.split.positive.partitions(captures)
}

/*
Hash returns the canonical hash of the tree: a pure function of its
leaf capture sets in canonical order. It is consistent with Equals and
never depends on split feature indices, identifiers or translation
maps.
*/
func (m *Model) Hash() uint64 {
	captures := m.Partitions()
	seed := uint64(len(captures))
	for _, c := range captures {
		seed ^= c.Hash() + hashConstant + (seed << 6) + (seed >> 2)
	}
	return seed
}

/*
Equals reports whether the other tree denotes the same canonical leaf
partition: same number of leaves and structurally equal capture sets at
every canonical position. Trees that split on different features but
capture rows identically compare equal.
*/
func (m *Model) Equals(other *Model) bool {
	if other == nil {
		return false
	}
	if m.Hash() != other.Hash() {
		return false
	}
	captures := m.Partitions()
	otherCaptures := other.Partitions()
	if len(captures) != len(otherCaptures) {
		return false
	}
	for i, c := range captures {
		if !c.Equals(otherCaptures[i]) {
			return false
		}
	}
	return true
}

/*
Loss returns the training loss of the tree: the stored loss for a leaf
and the sum of both subtrees' losses for a split. The value is
recomputed on every call.
*/
func (m *Model) Loss() float64 {
	if m.leaf != nil {
		return m.leaf.loss
	}
	return m.split.negative.Loss() + m.split.positive.Loss()
}

/*
Complexity returns the regularization cost of the tree: the stored
penalty for a leaf and the sum of both subtrees' complexities for a
split. The value is recomputed on every call.
*/
func (m *Model) Complexity() float64 {
	if m.leaf != nil {
		return m.leaf.complexity
	}
	return m.split.negative.Complexity() + m.split.positive.Complexity()
}
