package imageclass

import (
	"context"
	_ "embed"
	"fmt"
	"path"
	"strings"

	"github.com/quarrydata/quarry/internal/catalog"
	"github.com/quarrydata/quarry/pkg/dataset"
)

//go:embed catalog.yml
var builtinCatalog []byte

func init() {
	dataset.Default.SetSummarizer(Kind, Summary)

	m, err := catalog.Parse(builtinCatalog)
	if err != nil {
		panic(fmt.Sprintf("imageclass: built-in catalog is invalid: %v", err))
	}
	RegisterManifest(dataset.Default, m)
	registerLabelFuncSets(dataset.Default)
}

// RegisterManifest registers every manifest entry as a folder-layout
// dataset recipe, in manifest order.
func RegisterManifest(reg *dataset.Registry, m *catalog.Manifest) {
	for _, e := range m.Datasets {
		e := e
		reg.Add(Kind, e.Name, func() (*dataset.Dataset, error) {
			return FromFolders(context.Background(), e.URLs, e.Roots)
		})
	}
}

// registerLabelFuncSets registers the built-in datasets whose labels
// are derived from file names rather than folder layout.
func registerLabelFuncSets(reg *dataset.Registry) {
	addLabelFunc(reg, "dogs-vs-cats",
		"https://www.kaggle.com/dogs-vs-cats:train.zip",
		func(p string) (string, bool) {
			// Files are named like "cat.0.jpg".
			name, _, ok := strings.Cut(path.Base(p), ".")
			return name, ok
		})

	addLabelFunc(reg, "oxford-pets",
		"https://www.kaggle.com/alexisbcook/oxford-pets",
		func(p string) (string, bool) {
			// Breed prefix of files under images/, e.g. "Abyssinian_1.jpg".
			if !strings.Contains(p, "images") {
				return "", false
			}
			name, _, ok := strings.Cut(path.Base(p), "_")
			return strings.ToLower(name), ok
		})

	addLabelFunc(reg, "honey-bee",
		"https://www.kaggle.com/jenny18/honey-bee-annotated-images",
		func(p string) (string, bool) {
			name, _, ok := strings.Cut(path.Base(p), "_")
			return name, ok
		})

	addLabelFunc(reg, "coil-100",
		"https://www.kaggle.com/jessicali9530/coil100",
		func(p string) (string, bool) {
			name, _, ok := strings.Cut(path.Base(p), "__")
			return name, ok
		})
}

func addLabelFunc(reg *dataset.Registry, name, url string, fn LabelFunc) {
	reg.Add(Kind, name, func() (*dataset.Dataset, error) {
		return FromLabelFunc(context.Background(), []string{url}, fn)
	})
}
