package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport(t *testing.T) {
	r := NewReport()
	assert.Zero(t, r.TotalCount())

	r.AddDeletedResult("tag", "my-app:v1", "/data/repositories/my-app/_manifests/tags/v1", "deleted")
	r.AddSkippedResult("layer", "my-app", "/data/repositories/my-app/_layers/sha256/abc", "in use by another tag")
	r.AddFailedResult("revision", "my-app@sha256:def", "/data/repositories/my-app/_manifests/revisions/sha256/def", "permission denied")

	assert.Equal(t, 3, r.TotalCount())
	assert.Len(t, r.DeletedResult, 1)
	assert.Len(t, r.SkippedResult, 1)
	assert.Len(t, r.FailedResult, 1)
}

func TestRender(t *testing.T) {
	r := NewReport()
	r.AddDeletedResult("tag", "my-app:v1", "/data/tags/v1", "deleted")
	r.AddSkippedResult("layer", "my-app", "/data/layers/abc", "in use by another tag")

	var buf bytes.Buffer
	r.Render(&buf)

	out := buf.String()
	assert.Contains(t, out, "my-app:v1")
	assert.Contains(t, out, "in use by another tag")
	assert.Contains(t, out, "TOTAL")
}
