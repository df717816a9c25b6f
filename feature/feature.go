/*
Package feature describes the binarized feature space a tree is built
over. Each original dataset feature has a domain type and is expanded by
binarization into one or more binary features; a binary feature keeps a
reference to its original feature together with the threshold or
category it tests.
*/
package feature

import "fmt"

/*
Type is the domain type of an original feature.
*/
type Type int

const (
	// Integral is an ordered feature with integer values.
	Integral Type = iota
	// Rational is an ordered feature with real values.
	Rational
	// Categorical is an unordered feature with a finite set of values.
	Categorical
)

/*
ParseType takes a domain type name and returns the corresponding Type or
an error if the name is unknown.
*/
func ParseType(name string) (Type, error) {
	switch name {
	case "integral":
		return Integral, nil
	case "rational":
		return Rational, nil
	case "categorical":
		return Categorical, nil
	}
	return 0, fmt.Errorf("unknown feature type %q", name)
}

func (t Type) String() string {
	switch t {
	case Integral:
		return "integral"
	case Rational:
		return "rational"
	case Categorical:
		return "categorical"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Ordered reports whether values of the type form an ordered domain.
func (t Type) Ordered() bool {
	return t == Integral || t == Rational
}

/*
Feature is an original, pre-binarization feature.
*/
type Feature struct {
	Name string
	Type Type
}

/*
BinaryFeature is one column of the binarized feature space: a binary
test on an original feature. For ordered features the test is
"value >= Reference"; for categorical features it is "value == Category".
*/
type BinaryFeature struct {
	// Index of the column in the binarized feature space.
	Index int
	// Original is the index of the original feature this column tests.
	Original int
	// Relation is ">=" for ordered features and "==" for categorical ones.
	Relation string
	// Reference is the threshold tested on an ordered feature.
	Reference float64
	// Category is the value tested on a categorical feature.
	Category string
}

/*
Metadata describes a complete binarized feature space: the original
features and every binary feature derived from them.
*/
type Metadata struct {
	Features []Feature
	Binary   []BinaryFeature
}

/*
Validate checks that every binary feature references an existing
original feature and that its relation matches the feature's domain
type. It returns an error describing the first violation found.
*/
func (m *Metadata) Validate() error {
	for _, bf := range m.Binary {
		if bf.Original < 0 || bf.Original >= len(m.Features) {
			return fmt.Errorf("binary feature %d references unknown original feature %d", bf.Index, bf.Original)
		}
		f := m.Features[bf.Original]
		switch {
		case f.Type.Ordered() && bf.Relation != ">=":
			return fmt.Errorf("binary feature %d on ordered feature %s has relation %q, expected \">=\"", bf.Index, f.Name, bf.Relation)
		case f.Type == Categorical && bf.Relation != "==":
			return fmt.Errorf("binary feature %d on categorical feature %s has relation %q, expected \"==\"", bf.Index, f.Name, bf.Relation)
		}
	}
	return nil
}
