package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveOutputPath maps inputPath, which must live under inputDir, onto the
// same relative location under outputDir.
func ResolveOutputPath(inputPath, inputDir, outputDir string) (string, error) {
	rel, err := filepath.Rel(inputDir, inputPath)
	if err != nil {
		return "", fmt.Errorf("error resolving %s against %s: %w", inputPath, inputDir, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is not under %s", inputPath, inputDir)
	}
	return filepath.Join(outputDir, rel), nil
}
