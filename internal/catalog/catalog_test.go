package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestYAML = `
datasets:
  - name: ibeans
    urls:
      - https://storage.googleapis.com/ibeans/train.zip
      - https://storage.googleapis.com/ibeans/validation.zip
    roots: ["*"]
  - name: boat
    urls: [https://example.com/boat.zip]
`

func TestParse(t *testing.T) {
	t.Run("valid manifest in file order", func(t *testing.T) {
		m, err := Parse([]byte(manifestYAML))
		require.NoError(t, err)
		require.Len(t, m.Datasets, 2)

		assert.Equal(t, "ibeans", m.Datasets[0].Name)
		assert.Len(t, m.Datasets[0].URLs, 2)
		assert.Equal(t, []string{"*"}, m.Datasets[0].Roots)

		assert.Equal(t, "boat", m.Datasets[1].Name)
		assert.Empty(t, m.Datasets[1].Roots)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		_, err := Parse([]byte("datasets: [}"))
		assert.Error(t, err)
	})

	t.Run("rejects empty manifest", func(t *testing.T) {
		_, err := Parse([]byte("datasets: []"))
		assert.Error(t, err)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		_, err := Parse([]byte("datasets:\n  - urls: [x]\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		_, err := Parse([]byte("datasets:\n  - {name: a, urls: [x]}\n  - {name: a, urls: [y]}\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("rejects entry without urls", func(t *testing.T) {
		_, err := Parse([]byte("datasets:\n  - name: a\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "url")
	})
}

func TestLoad(t *testing.T) {
	t.Run("reads a manifest file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yml")
		require.NoError(t, os.WriteFile(path, []byte(manifestYAML), 0o644))

		m, err := Load(path)
		require.NoError(t, err)
		assert.Len(t, m.Datasets, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})
}
