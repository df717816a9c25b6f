package export

import (
	"encoding/json"
	"fmt"

	"github.com/ubc-systopia/gosdt-guesses/feature"
)

/*
Marshal serializes a document as JSON. A leaf is an object with
prediction, loss and complexity fields; a binary internal node carries
feature, orig_feature, name, type, relation, reference and true/false
subtrees; a promoted node replaces the binary fields with a children
list of {in, then} objects where in is a [lower, upper] array (null
meaning unbounded), a literal category value or the string "default".
*/
func Marshal(n Node) ([]byte, error) {
	return json.Marshal(n)
}

/*
MarshalIndent serializes a document as JSON indented with the given
prefix and indentation, with the layout described for Marshal.
*/
func MarshalIndent(n Node, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(n, prefix, indent)
}

type jsonLeaf struct {
	Prediction int     `json:"prediction"`
	Loss       float64 `json:"loss"`
	Complexity float64 `json:"complexity"`
}

type jsonSplit struct {
	Feature         int              `json:"feature"`
	OriginalFeature int              `json:"orig_feature"`
	Name            string           `json:"name,omitempty"`
	Type            string           `json:"type"`
	Relation        string           `json:"relation"`
	Reference       *json.RawMessage `json:"reference,omitempty"`
	False           *json.RawMessage `json:"false"`
	True            *json.RawMessage `json:"true"`
}

type jsonNary struct {
	Feature         int         `json:"feature"`
	OriginalFeature int         `json:"orig_feature"`
	Name            string      `json:"name,omitempty"`
	Type            string      `json:"type"`
	Children        []jsonChild `json:"children"`
}

type jsonChild struct {
	In   *json.RawMessage `json:"in"`
	Then *json.RawMessage `json:"then"`
}

// MarshalJSON implements json.Marshaler.
func (l *Leaf) MarshalJSON() ([]byte, error) {
	return json.Marshal(&jsonLeaf{Prediction: l.Prediction, Loss: l.Loss, Complexity: l.Complexity})
}

// MarshalJSON implements json.Marshaler.
func (s *Split) MarshalJSON() ([]byte, error) {
	js := &jsonSplit{
		Feature:         s.Feature,
		OriginalFeature: s.OriginalFeature,
		Name:            s.Name,
		Type:            s.Type.String(),
		Relation:        s.Relation,
	}
	var reference interface{} = s.Reference
	if s.Type == feature.Categorical {
		reference = s.Category
	}
	var err error
	if js.Reference, err = rawMessage(reference); err != nil {
		return nil, err
	}
	if js.False, err = rawMessage(s.False); err != nil {
		return nil, err
	}
	if js.True, err = rawMessage(s.True); err != nil {
		return nil, err
	}
	return json.Marshal(js)
}

// MarshalJSON implements json.Marshaler.
func (n *Nary) MarshalJSON() ([]byte, error) {
	jn := &jsonNary{
		Feature:         n.Feature,
		OriginalFeature: n.OriginalFeature,
		Name:            n.Name,
		Type:            n.Type.String(),
		Children:        []jsonChild{},
	}
	for _, c := range n.Children {
		in, err := rawMessage(c.In)
		if err != nil {
			return nil, err
		}
		then, err := rawMessage(c.Then)
		if err != nil {
			return nil, err
		}
		jn.Children = append(jn.Children, jsonChild{In: in, Then: then})
	}
	return json.Marshal(jn)
}

// MarshalJSON implements json.Marshaler.
func (i *Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]*float64{i.Lower, i.Upper})
}

// MarshalJSON implements json.Marshaler.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

// MarshalJSON implements json.Marshaler.
func (Default) MarshalJSON() ([]byte, error) {
	return json.Marshal("default")
}

func rawMessage(v interface{}) (*json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	rm := json.RawMessage(data)
	return &rm, nil
}

/*
Parse deserializes a document produced by Marshal, detecting each
node's shape by the fields it carries. It returns an error wrapping
ErrMalformedDocument if an object matches no known shape or lacks the
fields its shape requires.
*/
func Parse(data []byte) (Node, error) {
	fields := map[string]*json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parsing tree document: %v", err)
	}
	switch {
	case fields["prediction"] != nil:
		jl := &jsonLeaf{}
		if err := json.Unmarshal(data, jl); err != nil {
			return nil, fmt.Errorf("parsing leaf: %v", err)
		}
		return &Leaf{Prediction: jl.Prediction, Loss: jl.Loss, Complexity: jl.Complexity}, nil
	case fields["children"] != nil:
		return parseNary(data)
	case fields["feature"] != nil:
		return parseSplit(data)
	}
	return nil, fmt.Errorf("parsing node with no recognizable shape: %w", ErrMalformedDocument)
}

func parseSplit(data []byte) (Node, error) {
	js := &jsonSplit{}
	if err := json.Unmarshal(data, js); err != nil {
		return nil, fmt.Errorf("parsing split: %v", err)
	}
	t, err := feature.ParseType(js.Type)
	if err != nil {
		return nil, fmt.Errorf("parsing split on feature %d: %v: %w", js.Feature, err, ErrMalformedDocument)
	}
	s := &Split{
		Feature:         js.Feature,
		OriginalFeature: js.OriginalFeature,
		Name:            js.Name,
		Type:            t,
		Relation:        js.Relation,
	}
	if js.Reference != nil {
		if t == feature.Categorical {
			err = json.Unmarshal(*js.Reference, &s.Category)
		} else {
			err = json.Unmarshal(*js.Reference, &s.Reference)
		}
		if err != nil {
			return nil, fmt.Errorf("parsing split reference on feature %d: %v", js.Feature, err)
		}
	}
	if js.False == nil || js.True == nil {
		return nil, fmt.Errorf("parsing split on feature %d without both subtrees: %w", js.Feature, ErrMalformedDocument)
	}
	if s.False, err = Parse(*js.False); err != nil {
		return nil, err
	}
	if s.True, err = Parse(*js.True); err != nil {
		return nil, err
	}
	return s, nil
}

func parseNary(data []byte) (Node, error) {
	jn := &jsonNary{}
	if err := json.Unmarshal(data, jn); err != nil {
		return nil, fmt.Errorf("parsing promoted node: %v", err)
	}
	t, err := feature.ParseType(jn.Type)
	if err != nil {
		return nil, fmt.Errorf("parsing promoted node on feature %d: %v: %w", jn.Feature, err, ErrMalformedDocument)
	}
	n := &Nary{
		Feature:         jn.Feature,
		OriginalFeature: jn.OriginalFeature,
		Name:            jn.Name,
		Type:            t,
	}
	for i, jc := range jn.Children {
		if jc.In == nil || jc.Then == nil {
			return nil, fmt.Errorf("parsing child %d of promoted node on feature %d: %w", i, jn.Feature, ErrMalformedDocument)
		}
		in, err := parseCondition(*jc.In)
		if err != nil {
			return nil, fmt.Errorf("parsing child %d of promoted node on feature %d: %v", i, jn.Feature, err)
		}
		then, err := Parse(*jc.Then)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, Child{In: in, Then: then})
	}
	return n, nil
}

func parseCondition(data []byte) (Condition, error) {
	var bounds [2]*float64
	if err := json.Unmarshal(data, &bounds); err == nil {
		return &Interval{Lower: bounds[0], Upper: bounds[1]}, nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("parsing condition %s: %w", data, ErrMalformedDocument)
	}
	if value == "default" {
		return Default{}, nil
	}
	return Category(value), nil
}
