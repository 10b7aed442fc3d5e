package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetExcludes(t *testing.T) {
	Exclude = ""
	assert.Empty(t, GetExcludes())

	Exclude = "latest"
	assert.Equal(t, []string{"latest"}, GetExcludes())

	Exclude = "latest, release-*, ,v1.?"
	assert.Equal(t, []string{"latest", "release-*", "v1.?"}, GetExcludes())
}

func TestGetDataDir(t *testing.T) {
	DataDir = "/var/lib/registry/docker/registry/v2/"
	assert.Equal(t, "/var/lib/registry/docker/registry/v2", GetDataDir())
}
