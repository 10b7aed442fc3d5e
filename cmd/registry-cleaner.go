package main

import (
	"os"

	"github.com/cleanops/registry-cleaner/pkg/action"
	"github.com/cleanops/registry-cleaner/pkg/log"
)

func main() {
	defer log.Sync()

	cfg := new(action.Configuration)
	cmd, err := newRootCmd(cfg, os.Stdout, os.Args[1:])
	if err != nil {
		log.Warn(err.Error())
		os.Exit(1)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
