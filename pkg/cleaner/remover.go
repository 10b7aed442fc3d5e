package cleaner

import (
	"os"

	"github.com/cleanops/registry-cleaner/pkg/log"
	"github.com/cleanops/registry-cleaner/pkg/log/logfields"
)

// Remover removes a directory tree from the storage.
type Remover interface {
	Remove(path string) error
}

// NewRemover returns a Remover that deletes, or one that only logs
// what it would delete when dryRun is set.
func NewRemover(dryRun bool) Remover {
	if dryRun {
		return dryRunRemover{}
	}
	return fsRemover{}
}

type fsRemover struct{}

func (fsRemover) Remove(path string) error {
	log.Info("Deleting", logfields.String("path", path))
	return os.RemoveAll(path)
}

type dryRunRemover struct{}

func (dryRunRemover) Remove(path string) error {
	log.Info("DRYRUN: would have deleted", logfields.String("path", path))
	return nil
}
