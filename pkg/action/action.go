package action

import (
	"io"
	"os"

	"github.com/cleanops/registry-cleaner/pkg/cleaner"
	"github.com/cleanops/registry-cleaner/pkg/config"
	"github.com/cleanops/registry-cleaner/pkg/settings"
	"github.com/cleanops/registry-cleaner/pkg/storage"
	"github.com/cleanops/registry-cleaner/pkg/util/termutil"
)

// Configuration is shared by all commands.
type Configuration struct {
	// File carries defaults loaded from the config file.
	File *config.Config

	store *storage.Store
}

// Store opens the storage directory the --data-dir flag points at. The
// store is opened once and reused.
func (c *Configuration) Store() (*storage.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	store, err := storage.New(settings.GetDataDir())
	if err != nil {
		return nil, err
	}
	c.store = store
	return store, nil
}

// Cleaner builds a cleaner from the global settings. The progress bar
// is only drawn on a terminal and when not in verbose mode, where it
// would fight the debug output.
func (c *Configuration) Cleaner(out io.Writer) (*cleaner.Cleaner, error) {
	store, err := c.Store()
	if err != nil {
		return nil, err
	}

	opts := cleaner.Options{
		DryRun:      settings.DryRun,
		Concurrency: settings.Concurrency,
	}
	if f, ok := out.(*os.File); ok && termutil.IsTerminal(f) && !settings.Verbose {
		opts.Progress = out
	}

	return cleaner.New(store, opts), nil
}
