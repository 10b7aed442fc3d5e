package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version = "0.2.0"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the CLI version",
		Example: "registry-cleaner version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version)
		},
	}

	return cmd
}
