package storage

import (
	"os"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"

	"github.com/cleanops/registry-cleaner/pkg/util/jsonutil"
)

// manifest covers the two manifest schemas a registry stores: schema 1
// keeps layers in fsLayers[].blobSum, schema 2 in layers[].digest plus
// an optional config blob.
type manifest struct {
	SchemaVersion int `json:"schemaVersion"`
	FSLayers      []struct {
		BlobSum digest.Digest `json:"blobSum"`
	} `json:"fsLayers"`
	Layers []struct {
		Digest digest.Digest `json:"digest"`
	} `json:"layers"`
	Config *struct {
		Digest digest.Digest `json:"digest"`
	} `json:"config"`
}

// ManifestLayers reads the manifest blob for dgst and returns the
// digests of every blob the manifest references (layers, and for
// schema 2 the config blob as well).
func (s *Store) ManifestLayers(dgst digest.Digest) ([]digest.Digest, error) {
	path := s.BlobDataPath(dgst)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest blob %s", dgst)
	}

	var m manifest
	if err := jsonutil.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "failed to parse manifest blob %s", dgst)
	}

	var layers []digest.Digest
	switch m.SchemaVersion {
	case 1:
		for _, entry := range m.FSLayers {
			layers = append(layers, entry.BlobSum)
		}
	case 2:
		for _, entry := range m.Layers {
			layers = append(layers, entry.Digest)
		}
		if m.Config != nil {
			layers = append(layers, m.Config.Digest)
		}
	default:
		return nil, errors.Errorf("unsupported manifest schema version %d in blob %s", m.SchemaVersion, dgst)
	}

	return layers, nil
}
