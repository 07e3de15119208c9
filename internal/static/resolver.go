// Package static maps request paths onto files below a root directory.
package static

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Resolver finds the file to serve for a URL path.
type Resolver struct {
	Root    string
	Indexes []string
}

func NewResolver(root string, indexes []string) *Resolver {
	return &Resolver{Root: root, Indexes: indexes}
}

// Candidates lists the files tried for urlPath, in order. Paths ending in "/"
// try each index file first; the literal path is always tried last.
// The cleaned path never escapes Root.
func (r *Resolver) Candidates(urlPath string) []string {
	if urlPath == "" {
		urlPath = "/"
	}
	clean := path.Clean("/" + urlPath)
	literal := filepath.Join(r.Root, filepath.FromSlash(clean))

	var out []string
	if strings.HasSuffix(urlPath, "/") {
		for _, idx := range r.Indexes {
			out = append(out, filepath.Join(literal, idx))
		}
	}
	return append(out, literal)
}

// Resolve returns the first candidate that is a regular file.
func (r *Resolver) Resolve(urlPath string) (string, bool) {
	for _, c := range r.Candidates(urlPath) {
		fi, err := os.Stat(c)
		if err == nil && fi.Mode().IsRegular() {
			return c, true
		}
	}
	return "", false
}
