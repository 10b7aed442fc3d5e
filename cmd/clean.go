package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/cleanops/registry-cleaner/pkg/action"
	"github.com/cleanops/registry-cleaner/pkg/log"
	"github.com/cleanops/registry-cleaner/pkg/settings"
)

const cleanHelp = `
This command keeps the most recently tagged images of a repository and
deletes the older tags, then prunes untagged manifest revisions and the
layer links nothing references anymore.

Examples:

    # Keep the 30 most recent tags of my-app, preview only:
    $ registry-cleaner clean --repository=my-app --dry-run

    # Keep the 10 most recent tags, never touching latest or release tags:
    $ registry-cleaner clean \
          --repository=my-app \
          --keep=10 \
          --exclude="latest,release-*"

Tags are ordered by the modification time of their current link, which
is when the tag was last pushed.
`

func newCleanCmd(cfg *action.Configuration, out io.Writer) *cobra.Command {
	defaultKeep := cfg.File.Keep
	if defaultKeep <= 0 {
		defaultKeep = 30
	}

	cmd := &cobra.Command{
		Use:    "clean",
		Short:  "Keep the most recently tagged images of a repository, delete the rest.",
		Long:   cleanHelp,
		PreRun: PreRun,
		RunE: func(c *cobra.Command, args []string) error {
			cl, err := cfg.Cleaner(out)
			if err != nil {
				return err
			}
			if settings.Verbose {
				defer func() {
					log.Info("Clean result:")
					cl.Report().Render(out)
				}()
			}
			return cl.Clean(settings.Repository, settings.Keep, settings.GetExcludes())
		},
	}

	// required flags
	cmd.Flags().StringVar(&settings.Repository, "repository", "", `e.g., --repository=my-app`)
	_ = cmd.MarkFlagRequired("repository")

	// optional flags
	cmd.Flags().IntVarP(&settings.Keep, "keep", "n", defaultKeep, "How many of the most recently tagged images to keep")
	cmd.Flags().StringVar(&settings.Exclude, "exclude", cfg.File.GetExclude(), `e.g., --exclude="latest,release-*". Tags matching any pattern are never deleted`)
	cmd.Flags().IntVarP(&settings.Concurrency, "concurrency", "c", 1, "e.g., -c=4. Concurrency controls for how many manifests can be read concurrently")

	return cmd
}
