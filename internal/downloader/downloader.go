// Package downloader fetches remote SVG files given on the command line.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

const (
	fetchTimeout = 15 * time.Second
	// maxBodySize bounds a downloaded document.
	maxBodySize = 8 << 20
)

// ErrTooLarge is returned for documents over the size limit.
var ErrTooLarge = errors.New("document too large")

var httpClient = &http.Client{Timeout: fetchTimeout}

// IsURL returns true if the argument looks like a URL.
func IsURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

// Title returns the file name of a URL without its extension, or the host
// when the path is empty.
func Title(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	base := path.Base(u.Path)
	if base == "/" || base == "." {
		return u.Host
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// Download saves the document at rawURL to a temp .svg file. The caller
// removes it with cleanup.
func Download(ctx context.Context, rawURL string) (string, func(), error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Accept", "image/svg+xml, application/xml;q=0.9, */*;q=0.5")
	req.Header.Set("User-Agent", "epicycles")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("fetching %s: %s", rawURL, resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); !isDocumentContentType(ct) {
		return "", nil, fmt.Errorf("fetching %s: unexpected content type %q", rawURL, ct)
	}

	tmpFile, err := os.CreateTemp("", "epicycles-*.svg")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	cleanup := func() {
		os.Remove(tmpPath)
	}

	n, err := io.Copy(tmpFile, io.LimitReader(resp.Body, maxBodySize+1))
	if cerr := tmpFile.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > maxBodySize {
		err = ErrTooLarge
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("downloading %s: %w", rawURL, err)
	}
	return tmpPath, cleanup, nil
}

// isDocumentContentType accepts SVG, XML and the text types servers commonly
// use for them. A missing header is allowed.
func isDocumentContentType(contentType string) bool {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.Split(contentType, ";")[0])
	}
	mediaType = strings.ToLower(mediaType)
	switch {
	case mediaType == "image/svg+xml",
		mediaType == "application/xml",
		mediaType == "application/octet-stream",
		strings.HasPrefix(mediaType, "text/"):
		return true
	}
	return false
}
