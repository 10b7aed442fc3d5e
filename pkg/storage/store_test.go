package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, repositoriesDirName), 0755))
	store, err := New(root)
	require.NoError(t, err)
	return store
}

func writeLink(t *testing.T, path string, dgst digest.Digest) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(dgst.String()), 0644))
}

func writeBlob(t *testing.T, s *Store, dgst digest.Digest, data []byte) {
	path := s.BlobDataPath(dgst)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestNew(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = New(file)
	assert.Error(t, err)

	store, err := New(t.TempDir())
	assert.NoError(t, err)
	assert.NotNil(t, store)
}

func TestReadLink(t *testing.T) {
	dir := t.TempDir()
	dgst := digest.FromString("some manifest")

	path := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(path, []byte(dgst.String()+"\n"), 0644))

	got, err := ReadLink(path)
	require.NoError(t, err)
	assert.Equal(t, dgst, got)

	// malformed content
	require.NoError(t, os.WriteFile(path, []byte("not a digest"), 0644))
	_, err = ReadLink(path)
	assert.Error(t, err)

	// missing file
	_, err = ReadLink(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}

func TestLinks(t *testing.T) {
	root := t.TempDir()
	d1 := digest.FromString("one")
	d2 := digest.FromString("two")
	d3 := digest.FromString("three")

	writeLink(t, filepath.Join(root, "tags", "v1", "current", "link"), d1)
	writeLink(t, filepath.Join(root, "tags", "v1", "index", "sha256", d2.Encoded(), "link"), d2)
	writeLink(t, filepath.Join(root, "revisions", "sha256", d3.Encoded(), "link"), d3)
	// not named "link", must be ignored
	require.NoError(t, os.WriteFile(filepath.Join(root, "tags", "v1", "notalink"), []byte(d1.String()), 0644))

	all, err := Links(root, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []digest.Digest{d1, d2, d3}, all)

	current, err := Links(root, "current")
	require.NoError(t, err)
	assert.Equal(t, []digest.Digest{d1}, current)

	_, err = Links(filepath.Join(root, "nope"), "")
	assert.Error(t, err)
}

func TestLinksSkipsMalformed(t *testing.T) {
	root := t.TempDir()
	d1 := digest.FromString("one")
	writeLink(t, filepath.Join(root, "a", "link"), d1)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b", "link"), []byte("garbage"), 0644))

	links, err := Links(root, "")
	require.NoError(t, err)
	assert.Equal(t, []digest.Digest{d1}, links)
}

func TestManifestLayers(t *testing.T) {
	store := newTestStore(t)

	l1 := digest.FromString("layer one")
	l2 := digest.FromString("layer two")
	cfg := digest.FromString("config blob")

	v2 := []byte(`{
		"schemaVersion": 2,
		"config": {"digest": "` + cfg.String() + `"},
		"layers": [{"digest": "` + l1.String() + `"}, {"digest": "` + l2.String() + `"}]
	}`)
	v2dgst := digest.FromBytes(v2)
	writeBlob(t, store, v2dgst, v2)

	layers, err := store.ManifestLayers(v2dgst)
	require.NoError(t, err)
	assert.Equal(t, []digest.Digest{l1, l2, cfg}, layers)

	v1 := []byte(`{
		"schemaVersion": 1,
		"fsLayers": [{"blobSum": "` + l1.String() + `"}, {"blobSum": "` + l2.String() + `"}]
	}`)
	v1dgst := digest.FromBytes(v1)
	writeBlob(t, store, v1dgst, v1)

	layers, err = store.ManifestLayers(v1dgst)
	require.NoError(t, err)
	assert.Equal(t, []digest.Digest{l1, l2}, layers)
}

func TestManifestLayersErrors(t *testing.T) {
	store := newTestStore(t)

	// missing blob
	_, err := store.ManifestLayers(digest.FromString("missing"))
	assert.Error(t, err)

	// unsupported schema
	bad := []byte(`{"schemaVersion": 3}`)
	badDgst := digest.FromBytes(bad)
	writeBlob(t, store, badDgst, bad)
	_, err = store.ManifestLayers(badDgst)
	assert.Error(t, err)

	// broken json
	broken := []byte(`{`)
	brokenDgst := digest.FromBytes(broken)
	writeBlob(t, store, brokenDgst, broken)
	_, err = store.ManifestLayers(brokenDgst)
	assert.Error(t, err)
}

func TestTags(t *testing.T) {
	store := newTestStore(t)
	const repo = "my-app"

	base := time.Now().Add(-24 * time.Hour)
	names := []string{"v1", "v2", "latest", "release-1"}
	for i, name := range names {
		dgst := digest.FromString("manifest " + name)
		link := store.CurrentLink(repo, name)
		writeLink(t, link, dgst)
		require.NoError(t, os.Chtimes(link, base.Add(time.Duration(i)*time.Hour), base.Add(time.Duration(i)*time.Hour)))
	}

	tags, err := store.Tags(repo, nil)
	require.NoError(t, err)
	require.Len(t, tags, 4)

	tags, err = store.Tags(repo, []string{"latest", "release-*"})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.ElementsMatch(t, []string{"v1", "v2"}, []string{tags[0].Name, tags[1].Name})
	for _, tag := range tags {
		assert.Equal(t, digest.FromString("manifest "+tag.Name), tag.Digest)
		assert.False(t, tag.ModTime.IsZero())
	}
}

func TestTagsMissingRepository(t *testing.T) {
	store := newTestStore(t)

	tags, err := store.Tags("nope", nil)
	assert.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagsSkipsBrokenTag(t *testing.T) {
	store := newTestStore(t)
	const repo = "my-app"

	writeLink(t, store.CurrentLink(repo, "good"), digest.FromString("m"))
	// tag directory without a current link
	require.NoError(t, os.MkdirAll(store.TagDir(repo, "broken"), 0755))

	tags, err := store.Tags(repo, nil)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "good", tags[0].Name)
}

func TestRepositories(t *testing.T) {
	store := newTestStore(t)
	for _, repo := range []string{"zeta", "alpha"} {
		require.NoError(t, os.MkdirAll(store.RepositoryDir(repo), 0755))
	}

	repos, err := store.Repositories()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, repos)

	ok, err := store.RepositoryExists("alpha")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.RepositoryExists("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRevisions(t *testing.T) {
	store := newTestStore(t)
	const repo = "my-app"

	d1 := digest.FromString("rev one")
	d2 := digest.FromString("rev two")
	require.NoError(t, os.MkdirAll(filepath.Join(store.RevisionsDir(repo), d1.Encoded()), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(store.RevisionsDir(repo), d2.Encoded()), 0755))
	// junk entry, must be skipped
	require.NoError(t, os.MkdirAll(filepath.Join(store.RevisionsDir(repo), "not-a-digest"), 0755))

	revisions, err := store.Revisions(repo)
	require.NoError(t, err)
	assert.ElementsMatch(t, []digest.Digest{d1, d2}, revisions)

	revisions, err = store.Revisions("nope")
	assert.NoError(t, err)
	assert.Empty(t, revisions)
}

func TestBlobDataPath(t *testing.T) {
	store := newTestStore(t)
	dgst := digest.FromString("blob")
	hex := dgst.Encoded()

	assert.Equal(t,
		filepath.Join(store.Root(), "blobs", "sha256", hex[:2], hex, "data"),
		store.BlobDataPath(dgst))
}
