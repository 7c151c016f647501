// Package fetch downloads remote audio files so the rest of the pipeline can
// treat URLs and local paths the same way.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
)

// Download fetches a direct audio URL into destDir and returns the local
// path. The file keeps the name from the URL path. A progress bar is shown
// unless quiet is set.
func Download(rawURL, destDir string, quiet bool) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	name := path.Base(parsed.Path)
	if name == "" || name == "/" || name == "." {
		name = "audio"
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}
	destPath := filepath.Join(destDir, name)

	resp, err := http.Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading %s: unexpected status %s", rawURL, resp.Status)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", destPath, err)
	}
	defer out.Close()

	var dst io.Writer = out
	if !quiet {
		bar := progressbar.DefaultBytes(resp.ContentLength, "downloading")
		dst = io.MultiWriter(out, bar)
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("downloading %s: %w", rawURL, err)
	}

	return destPath, nil
}
