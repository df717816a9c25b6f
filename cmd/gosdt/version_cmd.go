package main

import (
	"fmt"

	"github.com/spf13/cobra"
	gosdt "github.com/ubc-systopia/gosdt-guesses"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of gosdt",
		Long:  `All software has versions. This is gosdt's`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gosdt v%s\n", gosdt.Version)
		},
	}
}
