package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"

	"github.com/cleanops/registry-cleaner/pkg/log"
	"github.com/cleanops/registry-cleaner/pkg/log/logfields"
)

// ReadLink reads a link file and returns the digest it holds.
func ReadLink(path string) (digest.Digest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to read link file")
	}
	dgst, err := digest.Parse(strings.TrimSpace(string(data)))
	if err != nil {
		return "", errors.Wrapf(err, "invalid digest in link file %s", path)
	}
	return dgst, nil
}

// Links walks root and returns the digests of every link file found.
// If filter is non-empty, only link files with a path element equal to
// filter are considered (e.g. "current" restricts the walk to the
// manifests tags currently point at). Unreadable or malformed link
// files are logged and skipped.
func Links(root, filter string) ([]digest.Digest, error) {
	var links []digest.Digest
	sep := string(os.PathSeparator)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != linkFileName {
			return nil
		}
		if filter != "" && !strings.Contains(path, sep+filter+sep) {
			return nil
		}
		dgst, err := ReadLink(path)
		if err != nil {
			log.Warn("Failed to read digest from link", logfields.String("path", path), logfields.Error(err))
			return nil
		}
		links = append(links, dgst)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", root)
	}
	return links, nil
}
