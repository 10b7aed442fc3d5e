package main

import (
	"github.com/spf13/cobra"

	"github.com/cleanops/registry-cleaner/pkg/log"
	"github.com/cleanops/registry-cleaner/pkg/settings"
)

func PreRun(cmd *cobra.Command, args []string) {
	if settings.Verbose {
		// debug mode enable
		log.SetDebug()
	}
}
