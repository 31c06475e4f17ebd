package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	t.Cleanup(restore)
	return &buf
}

func TestSuccess(t *testing.T) {
	buf := capture(t)
	Success("ibeans ready: %d examples", 1034)
	assert.Contains(t, buf.String(), "✓ ibeans ready: 1034 examples")
}

func TestWarning(t *testing.T) {
	buf := capture(t)
	Warning("no examples in %s", "cifar10")
	assert.Contains(t, buf.String(), "warning: no examples in cifar10")
}

func TestStep(t *testing.T) {
	buf := capture(t)
	Step("downloading %s", "archive.zip")
	assert.Contains(t, buf.String(), "→ downloading archive.zip")
}

func TestError(t *testing.T) {
	t.Run("returns error carrying the title", func(t *testing.T) {
		buf := capture(t)
		err := Error("no cached summaries found")
		assert.EqualError(t, err, "no cached summaries found")
		assert.Contains(t, buf.String(), "no cached summaries found")
	})

	t.Run("prints suggestions indented", func(t *testing.T) {
		buf := capture(t)
		err := Error("no cached summaries found",
			"run without --quick to compute them",
			"check the data root in quarry.yml")
		assert.EqualError(t, err, "no cached summaries found")
		assert.Contains(t, buf.String(), "  run without --quick to compute them")
		assert.Contains(t, buf.String(), "  check the data root in quarry.yml")
	})
}
