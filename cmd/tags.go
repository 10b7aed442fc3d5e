package main

import (
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cleanops/registry-cleaner/pkg/action"
	"github.com/cleanops/registry-cleaner/pkg/settings"
)

const tagsHelp = `
This command lists the tags of a repository with the manifest digest
each tag currently points at and the time the tag was last pushed.

Examples:

    $ registry-cleaner tags --repository=my-app

    # Hide release tags:
    $ registry-cleaner tags --repository=my-app --exclude="release-*"
`

func newTagsCmd(cfg *action.Configuration, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "tags",
		Short:  "List the tags of a repository.",
		Long:   tagsHelp,
		PreRun: PreRun,
		RunE: func(c *cobra.Command, args []string) error {
			store, err := cfg.Store()
			if err != nil {
				return err
			}
			tags, err := store.Tags(settings.Repository, settings.GetExcludes())
			if err != nil {
				return err
			}

			data := make([][]string, len(tags))
			for i, tag := range tags {
				data[i] = []string{
					tag.Name, tag.Digest.String(), tag.ModTime.Format(time.RFC3339),
				}
			}

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Tag", "Digest", "Last Pushed"})
			table.SetFooter([]string{"Total", strconv.Itoa(len(tags)), ""})
			table.AppendBulk(data)
			table.Render()
			return nil
		},
	}

	// required flags
	cmd.Flags().StringVar(&settings.Repository, "repository", "", `e.g., --repository=my-app`)
	_ = cmd.MarkFlagRequired("repository")

	// optional flags
	cmd.Flags().StringVar(&settings.Exclude, "exclude", "", `e.g., --exclude="latest,release-*". Tags matching any pattern are not listed`)

	return cmd
}
