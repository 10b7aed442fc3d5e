package cleaner

import (
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
	"github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"

	"github.com/cleanops/registry-cleaner/pkg/log"
	"github.com/cleanops/registry-cleaner/pkg/log/logfields"
	"github.com/cleanops/registry-cleaner/pkg/storage"
	"github.com/cleanops/registry-cleaner/pkg/util/queueutil"
)

// DeleteUntagged deletes the manifest revisions of the repository that
// no tag currently points at, and the layer links of those revisions
// unless a tagged manifest anywhere in the storage still references
// the layer.
func (c *Cleaner) DeleteUntagged(repo string) error {
	exists, err := c.store.RepositoryExists(repo)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Wrap(ErrRepositoryNotFound, repo)
	}

	// every manifest some tag in the storage points at
	taggedLinks, err := storage.Links(c.store.RepositoriesDir(), "current")
	if err != nil {
		return err
	}
	protected := c.protectedLayers(unique(taggedLinks))

	taggedRevisions, err := storage.Links(c.store.RepositoryDir(repo), "current")
	if err != nil {
		return err
	}
	tagged := make(map[digest.Digest]struct{}, len(taggedRevisions))
	for _, dgst := range taggedRevisions {
		tagged[dgst] = struct{}{}
	}

	revisions, err := c.store.Revisions(repo)
	if err != nil {
		return err
	}

	revisionsToDelete := make(map[digest.Digest]struct{})
	layersToDelete := make(map[digest.Digest]struct{})
	for _, revision := range revisions {
		if _, ok := tagged[revision]; ok {
			continue
		}
		revisionsToDelete[revision] = struct{}{}

		layers, err := c.store.ManifestLayers(revision)
		if err != nil {
			log.Warn("Failed to read layers from manifest blob", logfields.Stringer("digest", revision), logfields.Error(err))
			continue
		}
		for _, layer := range layers {
			if _, ok := protected[layer]; !ok {
				layersToDelete[layer] = struct{}{}
			}
		}
	}

	if len(revisionsToDelete) == 0 && len(layersToDelete) == 0 {
		return nil
	}

	log.Debug("Deleting untagged data from repository", logfields.String("repository", repo))
	for revision := range revisionsToDelete {
		c.deleteRevision(repo, revision)
	}

	for layer := range layersToDelete {
		c.remove("layer", repo, c.store.LayerLinkDir(repo, layer))
	}

	return nil
}

// protectedLayers reads every tagged manifest and collects the layers
// they reference. Manifests are read by a pool of workers; unreadable
// manifests are logged and contribute nothing.
func (c *Cleaner) protectedLayers(manifests []digest.Digest) map[digest.Digest]struct{} {
	protected := make(map[digest.Digest]struct{})
	if len(manifests) == 0 {
		return protected
	}

	var bar *mpb.Bar
	var progress *mpb.Progress
	if c.progress != nil {
		progress = mpb.New(mpb.WithWidth(80), mpb.WithOutput(c.progress))
		const pbName = "Scanning:"
		bar = progress.Add(
			int64(len(manifests)),
			mpb.NewBarFiller(mpb.BarStyle()),
			mpb.PrependDecorators(
				decor.Name(pbName, decor.WC{W: len(pbName) + 1, C: decor.DidentRight}),
				decor.OnComplete(
					decor.AverageETA(decor.ET_STYLE_GO, decor.WC{W: 4}), "Done!",
				),
			),
			mpb.AppendDecorators(
				decor.Counters(0, "%d / %d  "),
				decor.Percentage(),
			),
		)
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		processed int32
	)
	in := make(chan digest.Digest)
	ec := make(chan error, len(manifests))

	wg.Add(c.concurrency)
	for i := 0; i < c.concurrency; i++ {
		go queueutil.Consumer(in, ec, &wg, &processed, func(dgst digest.Digest) error {
			defer func() {
				if bar != nil {
					bar.Increment()
				}
			}()
			layers, err := c.store.ManifestLayers(dgst)
			if err != nil {
				return errors.Wrapf(err, "failed to read tagged manifest %s", dgst)
			}
			mu.Lock()
			for _, layer := range layers {
				protected[layer] = struct{}{}
			}
			mu.Unlock()
			return nil
		})
	}

	queueutil.Producer(manifests, in)
	wg.Wait()
	close(ec)
	for err := range ec {
		log.Warn("Protected layer scan", logfields.Error(err))
	}
	if progress != nil {
		progress.Wait()
	}

	return protected
}
