package storage

import (
	"os"
	"path"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"

	"github.com/cleanops/registry-cleaner/pkg/log"
	"github.com/cleanops/registry-cleaner/pkg/log/logfields"
	"github.com/cleanops/registry-cleaner/pkg/util/fileutil"
)

// DefaultDataDir is where a stock registry:2 container keeps its data.
const DefaultDataDir = "/var/lib/registry/docker/registry/v2"

// Store gives read access to a registry v2 storage directory.
type Store struct {
	root string
}

// New opens the storage directory rooted at root.
func New(root string) (*Store, error) {
	fi, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Errorf("storage directory not found: %s", root)
		}
		return nil, errors.Wrapf(err, "failed to stat storage directory %s", root)
	}
	if !fi.IsDir() {
		return nil, errors.Errorf("storage path is not a directory: %s", root)
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string {
	return s.root
}

// Tag is a tag of a repository together with the mtime of its current
// link, which is when the tag was last pushed.
type Tag struct {
	Name    string
	Digest  digest.Digest
	ModTime time.Time
}

// Repositories lists the repositories in the storage, sorted by name.
func (s *Store) Repositories() ([]string, error) {
	repos, err := fileutil.ListVisibleDirNamesWithSort(s.RepositoriesDir(), -1)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list repositories")
	}
	return repos, nil
}

// RepositoryExists reports whether the repository directory is present.
func (s *Store) RepositoryExists(repo string) (bool, error) {
	return fileutil.IsDirExists(s.RepositoryDir(repo))
}

// TagExists reports whether the tag directory is present.
func (s *Store) TagExists(repo, tag string) (bool, error) {
	return fileutil.IsDirExists(s.TagDir(repo, tag))
}

// TagNames lists the tag directories of a repository. A repository
// without a tags directory yields an empty list.
func (s *Store) TagNames(repo string) ([]string, error) {
	names, err := fileutil.ListDirNames(s.TagsDir(repo), -1)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("No tags directory found in repository",
				logfields.String("repository", repo),
				logfields.String("dataDir", s.root))
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to list tags of %s", repo)
	}
	return names, nil
}

// Tags lists the tags of a repository, skipping tags that match any of
// the exclude glob patterns. Tags whose current link is missing or
// unreadable are logged and skipped.
func (s *Store) Tags(repo string, excludes []string) ([]Tag, error) {
	names, err := s.TagNames(repo)
	if err != nil {
		return nil, err
	}

	var tags []Tag
	for _, name := range names {
		if matchesAny(name, excludes) {
			continue
		}
		fi, err := os.Stat(s.CurrentLink(repo, name))
		if err != nil {
			log.Warn("Failed to stat current link of tag",
				logfields.String("repository", repo),
				logfields.String("tag", name),
				logfields.Error(err))
			continue
		}
		dgst, err := ReadLink(s.CurrentLink(repo, name))
		if err != nil {
			log.Warn("Failed to read current link of tag",
				logfields.String("repository", repo),
				logfields.String("tag", name),
				logfields.Error(err))
		}
		tags = append(tags, Tag{Name: name, Digest: dgst, ModTime: fi.ModTime()})
	}
	return tags, nil
}

// Revisions lists the manifest revision digests of a repository. A
// repository without revisions yields an empty list.
func (s *Store) Revisions(repo string) ([]digest.Digest, error) {
	names, err := fileutil.ListDirNames(s.RevisionsDir(repo), -1)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to list revisions of %s", repo)
	}

	var revisions []digest.Digest
	for _, name := range names {
		dgst := digest.NewDigestFromEncoded(digest.SHA256, name)
		if err := dgst.Validate(); err != nil {
			log.Warn("Skipping malformed revision directory",
				logfields.String("repository", repo),
				logfields.String("name", name))
			continue
		}
		revisions = append(revisions, dgst)
	}
	return revisions, nil
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := path.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
