// Package imageclass implements the image-classification dataset kind:
// folder-layout crawling (one class per directory), label derivation
// from file paths, the kind's summary schema, and a built-in catalog of
// named datasets registered at load.
package imageclass

import (
	"context"
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/quarrydata/quarry/pkg/dataset"
	"github.com/quarrydata/quarry/pkg/reader"
	"github.com/quarrydata/quarry/pkg/table"
)

// Kind tags image-classification datasets in the registry.
const Kind = "image-classification"

// Row columns of every image-classification dataset.
const (
	ColFilePath  = "file_path"
	ColClassName = "class_name"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
}

func isImage(p string) bool {
	return imageExts[strings.ToLower(path.Ext(p))]
}

// FromFolders builds a dataset whose class labels are directory names.
//
// Each URL (or local path) is resolved through dataset.CreateReader.
// roots are glob patterns selecting, relative to the resolved data, the
// directories whose immediate children are class folders: "." (the
// default) for class folders at the top level, "*" for one wrapping
// directory, "*/train" and friends for split layouts. Every image file
// under <root>/<class>/ becomes one row.
func FromFolders(ctx context.Context, urls, roots []string) (*dataset.Dataset, error) {
	r, err := dataset.CreateReader(ctx, urls, "")
	if err != nil {
		return nil, err
	}
	rows, err := crawl(r, roots)
	if err != nil {
		return nil, err
	}
	return dataset.New(Kind, rows, r, dataset.Col(ColClassName))
}

// LabelFunc derives a label from a file's relative path. Returning
// ok=false marks the file unlabeled; such rows are dropped during
// dataset construction.
type LabelFunc func(p string) (label string, ok bool)

// FromLabelFunc builds a dataset whose labels come from applying fn to
// each image file's relative path.
func FromLabelFunc(ctx context.Context, urls []string, fn LabelFunc) (*dataset.Dataset, error) {
	r, err := dataset.CreateReader(ctx, urls, "")
	if err != nil {
		return nil, err
	}
	files, err := r.List()
	if err != nil {
		return nil, err
	}
	var rows [][]any
	for _, f := range files {
		if !isImage(f) {
			continue
		}
		var label any
		if l, ok := fn(f); ok {
			label = l
		}
		rows = append(rows, []any{f, label})
	}
	tbl, err := table.New([]string{ColFilePath, ColClassName}, rows)
	if err != nil {
		return nil, err
	}
	return dataset.New(Kind, tbl, r, dataset.Col(ColClassName))
}

// crawl lists the reader's files and labels each image by the directory
// it sits in, under any of the root patterns.
func crawl(r reader.Reader, roots []string) (*table.Table, error) {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	files, err := r.List()
	if err != nil {
		return nil, err
	}
	var rows [][]any
	for _, f := range files {
		if !isImage(f) {
			continue
		}
		for _, root := range roots {
			if class, ok := classUnder(f, root); ok {
				rows = append(rows, []any{f, class})
				break
			}
		}
	}
	tbl, err := table.New([]string{ColFilePath, ColClassName}, rows)
	if err != nil {
		return nil, err
	}
	return tbl, nil
}

// classUnder matches a relative file path against a root glob pattern
// and returns the class directory name directly below the matched root.
func classUnder(rel, pattern string) (string, bool) {
	segs := strings.Split(rel, "/")
	var pat []string
	if pattern != "" && pattern != "." {
		pat = strings.Split(path.Clean(pattern), "/")
	}
	// Need the matched root segments, one class segment, and the file.
	if len(segs) < len(pat)+2 {
		return "", false
	}
	for i, p := range pat {
		ok, err := path.Match(p, segs[i])
		if err != nil || !ok {
			return "", false
		}
	}
	return segs[len(pat)], true
}

// Summary is the kind's summary schema: example count, distinct class
// count, files under the reader, and their total size in megabytes.
func Summary(d *dataset.Dataset) (*table.Table, error) {
	labels, err := d.Labels()
	if err != nil {
		return nil, fmt.Errorf("imageclass: summarizing %q: %w", d.Name, err)
	}
	classes := make(map[any]bool, len(labels))
	for _, l := range labels {
		classes[l] = true
	}

	files, err := d.Reader.List()
	if err != nil {
		return nil, fmt.Errorf("imageclass: summarizing %q: %w", d.Name, err)
	}

	var sizeMB float64
	if sizer, ok := d.Reader.(interface{ Size() (int64, error) }); ok {
		size, err := sizer.Size()
		if err != nil {
			return nil, fmt.Errorf("imageclass: summarizing %q: %w", d.Name, err)
		}
		sizeMB = math.Round(float64(size)/(1<<20)*10) / 10
	}

	return table.New(
		[]string{"n_examples", "n_classes", "n_files", "size_mb"},
		[][]any{{d.Len(), len(classes), len(files), sizeMB}},
	)
}
