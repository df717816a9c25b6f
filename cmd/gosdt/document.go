package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ubc-systopia/gosdt-guesses/model/export"
)

func loadDocument(filepath string) (export.Node, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading tree document from %s: %v", filepath, err)
	}
	doc, err := export.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing tree document from %s: %v", filepath, err)
	}
	return doc, nil
}

func writeDocument(doc export.Node, filepath string) error {
	data, err := export.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding tree document: %v", err)
	}
	if filepath == "" {
		_, err = fmt.Println(string(data))
		return err
	}
	err = os.WriteFile(filepath, data, 0644)
	if err != nil {
		return fmt.Errorf("writing tree document to %s: %v", filepath, err)
	}
	return nil
}

func documentString(doc export.Node) string {
	switch node := doc.(type) {
	case *export.Leaf:
		return fmt.Sprintf("[predict %d loss %g]\n", node.Prediction, node.Loss)
	case *export.Split:
		label := fmt.Sprintf("[%s %s %s]\n", splitName(node.Name, node.Feature), node.Relation, referenceString(node))
		return label + branchesString([]string{"false", "true"}, []export.Node{node.False, node.True})
	case *export.Nary:
		var names, subtrees = []string{}, []export.Node{}
		for _, c := range node.Children {
			names = append(names, conditionString(c.In))
			subtrees = append(subtrees, c.Then)
		}
		return fmt.Sprintf("[%s]\n", splitName(node.Name, node.Feature)) + branchesString(names, subtrees)
	}
	return ""
}

func branchesString(names []string, subtrees []export.Node) string {
	var result string
	for i, subtree := range subtrees {
		rendered := fmt.Sprintf("(%s)\n%s", names[i], documentString(subtree))
		for j, line := range strings.Split(rendered, "\n") {
			if len(line) == 0 {
				continue
			}
			if j == 0 {
				result = fmt.Sprintf("%s|__%s\n", result, line)
			} else if i == len(subtrees)-1 {
				result = fmt.Sprintf("%s   %s\n", result, line)
			} else {
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}

func splitName(name string, feature int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("feature %d", feature)
}

func referenceString(node *export.Split) string {
	if node.Relation == "==" {
		return node.Category
	}
	return fmt.Sprintf("%g", node.Reference)
}

func conditionString(in export.Condition) string {
	switch condition := in.(type) {
	case *export.Interval:
		lower, upper := math.Inf(-1), math.Inf(1)
		if condition.Lower != nil {
			lower = *condition.Lower
		}
		if condition.Upper != nil {
			upper = *condition.Upper
		}
		return fmt.Sprintf("[%g, %g)", lower, upper)
	case export.Category:
		return string(condition)
	case export.Default:
		return "default"
	}
	return "?"
}
