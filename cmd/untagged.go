package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/cleanops/registry-cleaner/pkg/action"
	"github.com/cleanops/registry-cleaner/pkg/log"
	"github.com/cleanops/registry-cleaner/pkg/settings"
)

const untaggedHelp = `
This command deletes the manifest revisions of a repository that no tag
points at anymore, and the layer links of those revisions unless a
tagged manifest anywhere in the storage still references them.

Examples:

    # Prune untagged revisions of my-app, preview only:
    $ registry-cleaner untagged --repository=my-app --dry-run

    # Prune with four manifest readers:
    $ registry-cleaner untagged --repository=my-app -c=4
`

func newUntaggedCmd(cfg *action.Configuration, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "untagged",
		Short:  "Delete untagged manifest revisions and unreferenced layer links.",
		Long:   untaggedHelp,
		PreRun: PreRun,
		RunE: func(c *cobra.Command, args []string) error {
			cl, err := cfg.Cleaner(out)
			if err != nil {
				return err
			}
			if settings.Verbose {
				defer func() {
					log.Info("Untagged prune result:")
					cl.Report().Render(out)
				}()
			}
			return cl.DeleteUntagged(settings.Repository)
		},
	}

	// required flags
	cmd.Flags().StringVar(&settings.Repository, "repository", "", `e.g., --repository=my-app`)
	_ = cmd.MarkFlagRequired("repository")

	// optional flags
	cmd.Flags().IntVarP(&settings.Concurrency, "concurrency", "c", 1, "e.g., -c=4. Concurrency controls for how many manifests can be read concurrently")

	return cmd
}
