// Package fetch materializes remote dataset archives on local disk:
// download-if-missing with progress reporting, plus zip and tar.gz
// extraction. Network failures are returned to the caller unchanged;
// retry policy belongs to whoever invokes this package.
package fetch

import (
	"archive/tar"
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/schollz/progressbar/v3"

	"github.com/quarrydata/quarry/internal/printer"
)

// Fetch downloads src into destDir unless destDir already holds data,
// and returns the local path to use. With extract set, zip/tar.gz
// archives are unpacked into destDir and the archive file removed;
// otherwise the downloaded file's path is returned.
func Fetch(ctx context.Context, src, destDir string, extract bool) (string, error) {
	if populated(destDir) {
		return destDir, nil
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("fetch: creating %q: %w", destDir, err)
	}

	archive := filepath.Join(destDir, fileName(src))
	if err := download(ctx, src, archive); err != nil {
		return "", err
	}

	if !extract {
		return archive, nil
	}
	switch {
	case strings.HasSuffix(archive, ".zip"):
		if err := extractZip(archive, destDir); err != nil {
			return "", err
		}
	case strings.HasSuffix(archive, ".tar.gz"), strings.HasSuffix(archive, ".tgz"):
		if err := extractTarGz(archive, destDir); err != nil {
			return "", err
		}
	default:
		// Not an archive; nothing to unpack.
		return archive, nil
	}
	if err := os.Remove(archive); err != nil {
		return "", fmt.Errorf("fetch: removing archive %q: %w", archive, err)
	}
	return destDir, nil
}

// populated reports whether dir exists and contains at least one entry.
func populated(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

func fileName(src string) string {
	base := path.Base(strings.TrimSuffix(src, "/"))
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	if base == "" || base == "." {
		base = "download"
	}
	return base
}

func download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("fetch: building request for %q: %w", url, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: downloading %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch: downloading %q: unexpected status %s", url, resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("fetch: creating %q: %w", dest, err)
	}
	defer out.Close()

	printer.Step("downloading %s", url)
	bar := progressbar.DefaultBytes(resp.ContentLength, fileName(url))
	if _, err := io.Copy(io.MultiWriter(out, bar), resp.Body); err != nil {
		return fmt.Errorf("fetch: writing %q: %w", dest, err)
	}
	return nil
}

func extractZip(archive, destDir string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("fetch: opening zip %q: %w", archive, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		target, err := safeJoin(destDir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("fetch: extracting %q: %w", f.Name, err)
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("fetch: extracting %q: %w", f.Name, err)
		}
		err = writeFile(target, rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func extractTarGz(archive, destDir string) error {
	f, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("fetch: opening %q: %w", archive, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("fetch: reading gzip %q: %w", archive, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("fetch: reading tar %q: %w", archive, err)
		}
		target, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("fetch: extracting %q: %w", hdr.Name, err)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr); err != nil {
				return err
			}
		}
	}
}

// safeJoin joins an archive member name onto destDir, rejecting names
// that would escape it.
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("fetch: archive member %q escapes destination", name)
	}
	return target, nil
}

func writeFile(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("fetch: creating %q: %w", filepath.Dir(target), err)
	}
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("fetch: creating %q: %w", target, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("fetch: writing %q: %w", target, err)
	}
	return nil
}
