package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	RasterPattern   = "**/*.{jpg,jpeg,png}"
	VerbatimPattern = "**/*.{svg,gif,ico}"
)

// FileEntry is one discovered input file.
type FileEntry struct {
	Path    string
	RelPath string
	Kind    Kind
}

// Discover returns the files under inputDir whose slash-separated relative
// path matches pattern. Matching ignores case; results are in lexical order.
func Discover(inputDir, pattern string) ([]FileEntry, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	pattern = strings.ToLower(pattern)

	var entries []FileEntry
	err := doublestar.GlobWalk(os.DirFS(inputDir), "**", func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		ok, err := doublestar.Match(pattern, strings.ToLower(path))
		if err != nil || !ok {
			return err
		}
		entries = append(entries, FileEntry{
			Path:    filepath.Join(inputDir, filepath.FromSlash(path)),
			RelPath: path,
			Kind:    KindOf(path),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error while exploring directory %s: %w", inputDir, err)
	}

	slices.SortFunc(entries, func(a, b FileEntry) int {
		return strings.Compare(a.RelPath, b.RelPath)
	})
	return entries, nil
}
