// Package document extracts path data from SVG documents.
package document

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olivier-w/epicycles/internal/svgpath"
	"golang.org/x/net/html"
)

// ReadPathData returns the d attribute of the first <path> element in the
// document read from r.
func ReadPathData(r io.Reader) (string, error) {
	root, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("reading svg: %w", err)
	}

	n := findPath(root)
	if n == nil {
		return "", &svgpath.PathParseError{Detail: "document has no <path> element"}
	}
	for _, a := range n.Attr {
		if a.Key == "d" && strings.TrimSpace(a.Val) != "" {
			return a.Val, nil
		}
	}
	return "", &svgpath.PathParseError{Detail: "first <path> element has no d attribute"}
}

// ReadFile is ReadPathData on the named file.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	d, err := ReadPathData(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func findPath(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "path" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if p := findPath(c); p != nil {
			return p
		}
	}
	return nil
}
