package storage

import (
	"path/filepath"

	"github.com/opencontainers/go-digest"
)

// Path builders for the registry v2 storage layout:
//
//	repositories/<repo>/_layers/sha256/<hex>/link
//	repositories/<repo>/_manifests/revisions/sha256/<hex>/link
//	repositories/<repo>/_manifests/tags/<tag>/current/link
//	repositories/<repo>/_manifests/tags/<tag>/index/sha256/<hex>/link
//	blobs/sha256/<hex[:2]>/<hex>/data

const (
	repositoriesDirName = "repositories"
	blobsDirName        = "blobs"
	manifestsDirName    = "_manifests"
	layersDirName       = "_layers"
	revisionsDirName    = "revisions"
	tagsDirName         = "tags"
	currentDirName      = "current"
	indexDirName        = "index"
	linkFileName        = "link"
	blobDataFileName    = "data"
)

func (s *Store) RepositoriesDir() string {
	return filepath.Join(s.root, repositoriesDirName)
}

func (s *Store) RepositoryDir(repo string) string {
	return filepath.Join(s.RepositoriesDir(), repo)
}

func (s *Store) TagsDir(repo string) string {
	return filepath.Join(s.RepositoryDir(repo), manifestsDirName, tagsDirName)
}

func (s *Store) TagDir(repo, tag string) string {
	return filepath.Join(s.TagsDir(repo), tag)
}

// CurrentLink is the link file holding the digest of the manifest the
// tag currently points at.
func (s *Store) CurrentLink(repo, tag string) string {
	return filepath.Join(s.TagDir(repo, tag), currentDirName, linkFileName)
}

// TagIndexEntryDir is the per-tag index entry for a manifest digest.
func (s *Store) TagIndexEntryDir(repo, tag string, dgst digest.Digest) string {
	return filepath.Join(s.TagDir(repo, tag), indexDirName, string(dgst.Algorithm()), dgst.Encoded())
}

func (s *Store) RevisionsDir(repo string) string {
	return filepath.Join(s.RepositoryDir(repo), manifestsDirName, revisionsDirName, string(digest.SHA256))
}

func (s *Store) RevisionDir(repo string, dgst digest.Digest) string {
	return filepath.Join(s.RevisionsDir(repo), dgst.Encoded())
}

// LayerLinkDir is the repository-level reference to a layer blob.
func (s *Store) LayerLinkDir(repo string, dgst digest.Digest) string {
	return filepath.Join(s.RepositoryDir(repo), layersDirName, string(digest.SHA256), dgst.Encoded())
}

// BlobDataPath is where the blob payload lives in the shared blob store.
func (s *Store) BlobDataPath(dgst digest.Digest) string {
	hex := dgst.Encoded()
	return filepath.Join(s.root, blobsDirName, string(dgst.Algorithm()), hex[:2], hex, blobDataFileName)
}
