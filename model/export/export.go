/*
Package export defines the interchange document a decision tree is
serialized to, and the two rewrites applied to that document: encoding
translation, which reconciles subtrees rendered under different binary
feature encodings, and N-ary promotion, which collapses cascades of
binary splits on one original feature into a single multi-way node.

A document is a tree of three node shapes: Leaf, Split (binary) and
Nary (promoted multi-way). Promotion only ever turns Splits into Narys;
translation only operates on binary documents.
*/
package export

import (
	"github.com/ubc-systopia/gosdt-guesses/feature"
)

/*
DocumentError represents an error related to tree documents.
*/
type DocumentError string

func (de DocumentError) Error() string {
	return string(de)
}

/*
ErrTranslationMismatch is the error returned when a feature or
prediction index cannot be resolved through a pair of translation maps.
It indicates inconsistent encodings between grafted subtrees and is not
recoverable.
*/
const ErrTranslationMismatch = DocumentError("translation mismatch between feature encodings")

/*
ErrMalformedDocument is the error returned when a document node lacks
the fields its shape requires.
*/
const ErrMalformedDocument = DocumentError("malformed tree document")

/*
Translation maps canonical binary feature indices to the indices of an
alternate encoding: position i holds the alternate index for canonical
index i, negated when the feature's true/false sense is inverted
between the two encodings.
*/
type Translation []int

/*
Node is a node of a tree document: a *Leaf, a *Split or a *Nary.
*/
type Node interface {
	node()
}

/*
Leaf is the document form of a terminal node.
*/
type Leaf struct {
	Prediction int
	Loss       float64
	Complexity float64
}

/*
Split is the document form of a binary internal node. Reference holds
the threshold tested when Type is ordered; Category holds the value
tested when Type is categorical.
*/
type Split struct {
	Feature         int
	OriginalFeature int
	Name            string
	Type            feature.Type
	Relation        string
	Reference       float64
	Category        string
	False           Node
	True            Node
}

/*
Nary is the document form of a promoted multi-way node. Its children
carry mutually exclusive conditions on the original feature.
*/
type Nary struct {
	Feature         int
	OriginalFeature int
	Name            string
	Type            feature.Type
	Children        []Child
}

/*
Child is one branch of an Nary node: the condition selecting it and the
subtree below it.
*/
type Child struct {
	In   Condition
	Then Node
}

func (*Leaf) node()  {}
func (*Split) node() {}
func (*Nary) node()  {}

/*
Condition is the condition attached to an Nary child: an *Interval for
ordered features, a Category for categorical ones, or Default for the
categorical rest-branch.
*/
type Condition interface {
	condition()
}

/*
Interval is a numeric condition on an ordered feature: the value lies in
[Lower, Upper). A nil bound is unbounded.
*/
type Interval struct {
	Lower *float64
	Upper *float64
}

/*
Category is an equality condition on a categorical feature.
*/
type Category string

/*
Default is the condition of the categorical branch taken when no
category condition matches.
*/
type Default struct{}

func (*Interval) condition() {}
func (Category) condition()  {}
func (Default) condition()   {}
