package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose bool
	logFile string
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gosdt",
		Short: "gosdt is a tool to inspect and transform optimal decision tree documents",
		Long:  `A tool to inspect exported decision tree documents, promote binary split cascades into N-ary nodes, and publish documents to a registry`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log debug information")
	rootCmd.PersistentFlags().StringVar(&(config.logFile), "log-file", "", "path to a rotated log file; logs go to stderr when unset")
	rootCmd.AddCommand(versionCmd(), showCmd(config), promoteCmd(config), statsCmd(config), pushCmd(config), fetchCmd(config))
	return rootCmd
}
