package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleanops/registry-cleaner/pkg/action"
	"github.com/cleanops/registry-cleaner/pkg/config"
	"github.com/cleanops/registry-cleaner/pkg/settings"
	"github.com/cleanops/registry-cleaner/pkg/storage"
)

const globalUsage = `A cleaner for Docker Distribution (registry:2) storage directories

Common actions for registry-cleaner:

- registry-cleaner clean:     keep the most recently tagged images of a repository, delete the rest
- registry-cleaner delete:    delete a single tag from a repository
- registry-cleaner untagged:  delete untagged manifest revisions and unreferenced layer links
- registry-cleaner tags:      list the tags of a repository
- registry-cleaner repos:     list the repositories in the storage

The cleaner removes repository-level references only. Run the registry's
own garbage collector afterwards to reclaim blob data.
`

func newRootCmd(cfg *action.Configuration, out io.Writer, args []string) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:          "registry-cleaner",
		Short:        "Clean up a Docker Distribution storage directory.",
		Long:         globalUsage,
		SilenceUsage: true,
	}

	cmd.CompletionOptions.DisableDefaultCmd = true

	// config file defaults, flags still win
	cfg.File = config.LoadDefaultConfigFile(os.Stderr)
	defaultDataDir := cfg.File.DataDir
	if defaultDataDir == "" {
		defaultDataDir = storage.DefaultDataDir
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&settings.Verbose, "verbose", "v", false, "Make the operation more talkative")
	flags.StringVar(&settings.DataDir, "data-dir", defaultDataDir, "Path to the registry v2 storage directory")
	flags.BoolVar(&settings.DryRun, "dry-run", false, "Log what would be deleted without touching the storage")

	cmd.AddCommand(
		newCleanCmd(cfg, out),
		newDeleteCmd(cfg, out),
		newUntaggedCmd(cfg, out),
		newTagsCmd(cfg, out),
		newReposCmd(cfg, out),
		newVersionCmd(),
	)

	return cmd, nil
}
