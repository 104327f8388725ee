package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// writeFile streams write's output into a temp file next to dst and renames
// it over dst once complete. A failed write leaves dst untouched.
func writeFile(dst string, mode os.FileMode, write func(w io.Writer) error) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".assetpipe-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("error creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return 0, err
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return 0, err
	}
	info, err := tmp.Stat()
	if err != nil {
		_ = tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}

	if err := replaceFile(tmpPath, dst); err != nil {
		return 0, fmt.Errorf("error renaming file: %w", err)
	}
	return info.Size(), nil
}

func replaceFile(tmpPath, dst string) error {
	if err := os.Rename(tmpPath, dst); err == nil {
		return nil
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, dst)
}
