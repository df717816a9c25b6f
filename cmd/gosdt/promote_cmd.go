package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ubc-systopia/gosdt-guesses/model/export"
)

type promoteCmdConfig struct {
	*rootCmdConfig
	treeInput  string
	treeOutput string
}

func promoteCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &promoteCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Promote a binary tree document to N-ary form",
		Long:  `Parse an exported binary tree document, collapse cascades of splits on the same original feature into multi-way nodes, and write the promoted document`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			logger := config.logger()
			defer logger.Sync()
			doc, err := loadDocument(config.treeInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			logger.Debugw("promoting tree document", "path", config.treeInput)
			doc, err = export.Promote(doc)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			err = writeDocument(doc, config.treeOutput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			logger.Infow("promoted tree document", "input", config.treeInput, "output", config.treeOutput)
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree document will be read and parsed as JSON (required)")
	cmd.Flags().StringVarP(&(config.treeOutput), "output", "o", "", "path to a file to which the promoted document will be written (defaults to standard output)")
	return cmd
}

func (pcc *promoteCmdConfig) Validate() error {
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}
