// Package fileutil provides shared file operation helpers and the
// interrupt-cleanup slot used to remove partially written outputs.
package fileutil

import (
	"os"
)

// Exists reports whether a file or directory exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

// IsRegular reports whether path exists and is a regular file.
func IsRegular(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
