package cleaner

import (
	"io"
	"sort"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"

	"github.com/cleanops/registry-cleaner/pkg/log"
	"github.com/cleanops/registry-cleaner/pkg/log/logfields"
	"github.com/cleanops/registry-cleaner/pkg/report"
	"github.com/cleanops/registry-cleaner/pkg/storage"
	"github.com/cleanops/registry-cleaner/pkg/util/fileutil"
)

var (
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrTagNotFound        = errors.New("no image found")
)

type Options struct {
	// DryRun logs what would be deleted without touching the storage.
	DryRun bool

	// Concurrency controls how many manifests are read simultaneously
	// during the protected-layer scan.
	Concurrency int

	// Progress, when non-nil, is where the progress bar of the
	// protected-layer scan is drawn.
	Progress io.Writer
}

// Cleaner prunes tags, manifest revisions and layer links from a
// registry storage directory. Blob payloads under blobs/ are never
// touched; reclaiming them is the job of registry garbage-collect.
type Cleaner struct {
	store       *storage.Store
	remover     Remover
	dryRun      bool
	concurrency int
	progress    io.Writer
	report      *report.Report
}

func New(store *storage.Store, opts Options) *Cleaner {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Cleaner{
		store:       store,
		remover:     NewRemover(opts.DryRun),
		dryRun:      opts.DryRun,
		concurrency: concurrency,
		progress:    opts.Progress,
		report:      report.NewReport(),
	}
}

// Report returns the outcome of the operations run so far.
func (c *Cleaner) Report() *report.Report {
	return c.report
}

// Clean keeps the `keep` most recently tagged images of the repository
// and deletes the rest, skipping tags that match an exclude pattern,
// then prunes untagged revisions and unreferenced layer links.
func (c *Cleaner) Clean(repo string, keep int, excludes []string) error {
	if keep < 0 {
		keep = 0
	}

	tags, err := c.store.Tags(repo, excludes)
	if err != nil {
		return err
	}

	if len(tags) > keep {
		sort.Slice(tags, func(i, j int) bool {
			return tags[i].ModTime.After(tags[j].ModTime)
		})
		for _, t := range tags[keep:] {
			if err := c.DeleteTag(repo, t.Name); err != nil {
				return err
			}
		}
	}

	return c.DeleteUntagged(repo)
}

// DeleteTag deletes a tag from the repository: the tag directory, the
// manifest revisions only this tag references, and the layer links no
// other tag's current manifest references.
func (c *Cleaner) DeleteTag(repo, tag string) error {
	log.Debug("Deleting tag", logfields.String("repository", repo), logfields.String("tag", tag))

	exists, err := c.store.TagExists(repo, tag)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Wrapf(ErrTagNotFound, "%s:%s", repo, tag)
	}

	tagDir := c.store.TagDir(repo, tag)
	manifests, err := storage.Links(tagDir, "")
	if err != nil {
		return err
	}

	otherManifests, otherLayers, err := c.otherTagReferences(repo, tag)
	if err != nil {
		return err
	}

	revisionsToDelete := make(map[digest.Digest]struct{})
	layers := make(map[digest.Digest]struct{})

	for _, dgst := range unique(manifests) {
		log.Debug("Looking up filesystem layers for manifest digest", logfields.Stringer("digest", dgst))

		if _, used := otherManifests[dgst]; used {
			log.Debug("Not deleting since we found another tag using manifest", logfields.Stringer("digest", dgst))
			c.report.AddSkippedResult("revision", repo+"@"+dgst.String(), c.store.RevisionDir(repo, dgst), "in use by another tag")
			continue
		}

		revisionsToDelete[dgst] = struct{}{}
		manifestLayers, err := c.store.ManifestLayers(dgst)
		if err != nil {
			log.Warn("Failed to read layers from manifest blob", logfields.Stringer("digest", dgst), logfields.Error(err))
			continue
		}
		for _, layer := range manifestLayers {
			layers[layer] = struct{}{}
		}
	}

	for layer := range layers {
		if _, used := otherLayers[layer]; used {
			log.Debug("Not deleting since we found another tag using digest", logfields.Stringer("digest", layer))
			c.report.AddSkippedResult("layer", repo, c.store.LayerLinkDir(repo, layer), "in use by another tag")
			continue
		}
		c.remove("layer", repo, c.store.LayerLinkDir(repo, layer))
	}

	for revision := range revisionsToDelete {
		c.deleteRevision(repo, revision)
	}

	c.remove("tag", repo+":"+tag, tagDir)
	return nil
}

// otherTagReferences collects the current manifest digests of every
// other tag of the repository, and the layers those manifests
// reference.
func (c *Cleaner) otherTagReferences(repo, tag string) (manifests, layers map[digest.Digest]struct{}, err error) {
	names, err := c.store.TagNames(repo)
	if err != nil {
		return nil, nil, err
	}

	manifests = make(map[digest.Digest]struct{})
	layers = make(map[digest.Digest]struct{})
	for _, name := range names {
		if name == tag {
			continue
		}
		dgst, err := storage.ReadLink(c.store.CurrentLink(repo, name))
		if err != nil {
			log.Warn("Failed to read current link of tag",
				logfields.String("repository", repo),
				logfields.String("tag", name),
				logfields.Error(err))
			continue
		}
		manifests[dgst] = struct{}{}

		manifestLayers, err := c.store.ManifestLayers(dgst)
		if err != nil {
			log.Warn("Failed to read layers from manifest blob", logfields.Stringer("digest", dgst), logfields.Error(err))
			continue
		}
		for _, layer := range manifestLayers {
			layers[layer] = struct{}{}
		}
	}
	return manifests, layers, nil
}

// deleteRevision removes a manifest revision directory, dropping the
// per-tag index entries pointing at it first.
func (c *Cleaner) deleteRevision(repo string, revision digest.Digest) {
	revDir := c.store.RevisionDir(repo, revision)

	digests, err := storage.Links(revDir, "")
	if err != nil {
		log.Warn("Failed to collect links of revision", logfields.Stringer("revision", revision), logfields.Error(err))
	}

	tagNames, err := c.store.TagNames(repo)
	if err != nil {
		log.Warn("Failed to list tags of repository", logfields.String("repository", repo), logfields.Error(err))
	}

	for _, dgst := range unique(digests) {
		for _, tag := range tagNames {
			entry := c.store.TagIndexEntryDir(repo, tag, dgst)
			if ok, err := fileutil.IsDirExists(entry); err != nil || !ok {
				continue
			}
			c.remove("tag index", repo+":"+tag, entry)
		}
	}

	c.remove("revision", repo+"@"+revision.String(), revDir)
}

func (c *Cleaner) remove(kind, ref, path string) {
	if err := c.remover.Remove(path); err != nil {
		log.Error("Failed to delete directory", logfields.String("path", path), logfields.Error(err))
		c.report.AddFailedResult(kind, ref, path, err.Error())
		return
	}
	msg := "deleted"
	if c.dryRun {
		msg = "dry run"
	}
	c.report.AddDeletedResult(kind, ref, path, msg)
}

func unique(digests []digest.Digest) []digest.Digest {
	seen := make(map[digest.Digest]struct{}, len(digests))
	out := digests[:0]
	for _, dgst := range digests {
		if _, ok := seen[dgst]; ok {
			continue
		}
		seen[dgst] = struct{}{}
		out = append(out, dgst)
	}
	return out
}
