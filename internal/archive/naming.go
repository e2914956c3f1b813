package archive

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Extension is appended to compressed files when no output name is given.
const Extension = ".arc"

var ErrNoExtension = errors.New("archive: compressed file name has no " + Extension + " extension")

// CompressedName returns the default output path for compressing path.
func CompressedName(path string) string {
	return path + Extension
}

// DecompressedName strips Extension from path.
func DecompressedName(path string) (string, error) {
	if filepath.Ext(path) != Extension || strings.TrimSuffix(filepath.Base(path), Extension) == "" {
		return "", fmt.Errorf("%w: %q", ErrNoExtension, path)
	}
	return strings.TrimSuffix(path, Extension), nil
}
