package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleanops/registry-cleaner/pkg/action"
)

func newReposCmd(cfg *action.Configuration, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repos",
		Short:   "List the repositories in the storage.",
		Example: "registry-cleaner repos",
		PreRun:  PreRun,
		RunE: func(c *cobra.Command, args []string) error {
			store, err := cfg.Store()
			if err != nil {
				return err
			}
			repos, err := store.Repositories()
			if err != nil {
				return err
			}
			for _, repo := range repos {
				_, _ = fmt.Fprintln(out, repo)
			}
			return nil
		},
	}

	return cmd
}
