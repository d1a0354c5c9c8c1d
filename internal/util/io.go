package util

import (
	"io"
	"os"
	"path/filepath"
)

// EnsureDir creates path and any parents. An existing directory is fine.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// CopyFile copies src to dst, creating dst's directory first. Used when a
// cached download is handed to a caller-chosen destination.
func CopyFile(src, dst string) error {
	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
