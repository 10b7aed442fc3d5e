package settings

import (
	"strings"
)

var (
	// Verbose is a flag for output more debug info.
	Verbose bool

	// DryRun logs what would be deleted without touching the storage.
	DryRun bool

	// DataDir is the path to the registry v2 storage directory.
	DataDir string

	// Repository is the repository to operate on.
	Repository string

	// Tag is the tag to operate on.
	Tag string

	// Keep is how many of the most recently tagged images to keep.
	Keep int

	// Exclude is a comma-separated list of glob patterns. Tags matching
	// any pattern are never deleted.
	Exclude string

	// Concurrency controls how many manifests can be read simultaneously.
	Concurrency int
)

func GetDataDir() string {
	return strings.TrimRight(DataDir, "/")
}

// GetExcludes splits Exclude on commas, dropping empty entries.
func GetExcludes() []string {
	var patterns []string
	for _, p := range strings.Split(Exclude, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
