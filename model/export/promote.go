package export

import (
	"fmt"

	"github.com/ubc-systopia/gosdt-guesses/feature"
)

/*
Promote rewrites cascades of binary splits on the same original feature
into single multi-way nodes and returns the promoted document. The
rewrite is applied bottom-up: both subtrees are promoted first, then the
node's two branches become condition-tagged children (true branch first)
and any child that is itself a promoted node on the same original
feature has its own children spliced up in its place, with ordered
conditions merged by interval intersection and categorical conditions
kept as-is. Leaves are returned unchanged, and running Promote on an
already promoted document yields the same document.

Promote returns an error wrapping ErrMalformedDocument if a split
carries a domain type that is neither ordered nor categorical.
*/
func Promote(n Node) (Node, error) {
	switch node := n.(type) {
	case *Leaf:
		return node, nil
	case *Nary:
		for i := range node.Children {
			then, err := Promote(node.Children[i].Then)
			if err != nil {
				return nil, err
			}
			node.Children[i].Then = then
		}
		return node, nil
	case *Split:
		return promoteSplit(node)
	}
	return nil, fmt.Errorf("promoting node of type %T: %w", n, ErrMalformedDocument)
}

func promoteSplit(node *Split) (Node, error) {
	positive, err := Promote(node.True)
	if err != nil {
		return nil, err
	}
	negative, err := Promote(node.False)
	if err != nil {
		return nil, err
	}
	var positiveIn, negativeIn Condition
	switch {
	case node.Type.Ordered():
		positiveIn = &Interval{Lower: ref(node.Reference)}
		negativeIn = &Interval{Upper: ref(node.Reference)}
	case node.Type == feature.Categorical:
		positiveIn = Category(node.Category)
		negativeIn = Default{}
	default:
		return nil, fmt.Errorf("promoting split on feature %d with type %v: %w", node.Feature, node.Type, ErrMalformedDocument)
	}
	candidates := []Child{
		{In: positiveIn, Then: positive},
		{In: negativeIn, Then: negative},
	}
	var children []Child
	for _, candidate := range candidates {
		sub, ok := candidate.Then.(*Nary)
		if !ok || sub.OriginalFeature != node.OriginalFeature {
			children = append(children, candidate)
			continue
		}
		for _, grandchild := range sub.Children {
			if node.Type.Ordered() {
				inherited, ok := candidate.In.(*Interval)
				if !ok {
					return nil, fmt.Errorf("promoting split on feature %d: ordered condition is %T: %w", node.Feature, candidate.In, ErrMalformedDocument)
				}
				own, ok := grandchild.In.(*Interval)
				if !ok {
					return nil, fmt.Errorf("promoting split on feature %d: ordered subcondition is %T: %w", node.Feature, grandchild.In, ErrMalformedDocument)
				}
				children = append(children, Child{In: intersect(inherited, own), Then: grandchild.Then})
			} else {
				children = append(children, grandchild)
			}
		}
	}
	return &Nary{
		Feature:         node.Feature,
		OriginalFeature: node.OriginalFeature,
		Name:            node.Name,
		Type:            node.Type,
		Children:        children,
	}, nil
}

/*
intersect merges an inherited interval condition with a spliced
grandchild's own condition: each bound independently takes the tighter
of the two, an unbounded side deferring to the other interval.
*/
func intersect(inherited, own *Interval) *Interval {
	merged := &Interval{}
	switch {
	case inherited.Lower != nil && own.Lower != nil:
		merged.Lower = ref(max(*inherited.Lower, *own.Lower))
	case inherited.Lower != nil:
		merged.Lower = ref(*inherited.Lower)
	case own.Lower != nil:
		merged.Lower = ref(*own.Lower)
	}
	switch {
	case inherited.Upper != nil && own.Upper != nil:
		merged.Upper = ref(min(*inherited.Upper, *own.Upper))
	case inherited.Upper != nil:
		merged.Upper = ref(*inherited.Upper)
	case own.Upper != nil:
		merged.Upper = ref(*own.Upper)
	}
	return merged
}

func ref(v float64) *float64 {
	return &v
}
