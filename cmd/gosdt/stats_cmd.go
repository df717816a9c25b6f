package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ubc-systopia/gosdt-guesses/model/export"
)

type statsCmdConfig struct {
	*rootCmdConfig
	treeInput string
}

func statsCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &statsCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the totals of a tree document",
		Long:  `Parse an exported tree document and print its leaf count and total loss, complexity and risk`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			doc, err := loadDocument(config.treeInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			leaves, loss, complexity := documentTotals(doc)
			fmt.Printf("leaves: %d\n", leaves)
			fmt.Printf("loss: %g\n", loss)
			fmt.Printf("complexity: %g\n", complexity)
			fmt.Printf("risk: %g\n", loss+complexity)
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree document will be read and parsed as JSON (required)")
	return cmd
}

func (scc *statsCmdConfig) Validate() error {
	if scc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

func documentTotals(doc export.Node) (leaves int, loss, complexity float64) {
	switch node := doc.(type) {
	case *export.Leaf:
		return 1, node.Loss, node.Complexity
	case *export.Split:
		for _, subtree := range []export.Node{node.False, node.True} {
			l, lo, c := documentTotals(subtree)
			leaves += l
			loss += lo
			complexity += c
		}
	case *export.Nary:
		for _, child := range node.Children {
			l, lo, c := documentTotals(child.Then)
			leaves += l
			loss += lo
			complexity += c
		}
	}
	return leaves, loss, complexity
}
