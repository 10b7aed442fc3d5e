package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/cleanops/registry-cleaner/pkg/action"
	"github.com/cleanops/registry-cleaner/pkg/log"
	"github.com/cleanops/registry-cleaner/pkg/settings"
)

const deleteHelp = `
This command deletes a single tag from a repository. Manifest revisions
and layer links still referenced by another tag of the repository are
left in place.

Examples:

    # Delete my-app:v1.0.3, preview only:
    $ registry-cleaner delete --repository=my-app --tag=v1.0.3 --dry-run

    # Delete it for real:
    $ registry-cleaner delete --repository=my-app --tag=v1.0.3
`

func newDeleteCmd(cfg *action.Configuration, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "delete",
		Short:  "Delete a tag from a repository.",
		Long:   deleteHelp,
		PreRun: PreRun,
		RunE: func(c *cobra.Command, args []string) error {
			cl, err := cfg.Cleaner(out)
			if err != nil {
				return err
			}
			if settings.Verbose {
				defer func() {
					log.Info("Delete result:")
					cl.Report().Render(out)
				}()
			}
			return cl.DeleteTag(settings.Repository, settings.Tag)
		},
	}

	// required flags
	cmd.Flags().StringVar(&settings.Repository, "repository", "", `e.g., --repository=my-app`)
	cmd.Flags().StringVar(&settings.Tag, "tag", "", `e.g., --tag=v1.0.3`)
	_ = cmd.MarkFlagRequired("repository")
	_ = cmd.MarkFlagRequired("tag")

	return cmd
}
