package testing

import (
	"os"
	"path/filepath"
	"strings"
)

const DefaultTestDirRoot = "trajmix-test"

// DefaultTestDir is a stable scratch root shared by tests.
func DefaultTestDir() string {
	return filepath.Join(os.TempDir(), DefaultTestDirRoot)
}

// ScratchDir empties and recreates DefaultTestDir()/name.
// Slashes in name, eg. from subtest names, are flattened.
func ScratchDir(name string) (dir string, cleanup func(), err error) {
	dir = filepath.Join(DefaultTestDir(), strings.ReplaceAll(name, "/", "_"))
	if err := os.RemoveAll(dir); err != nil {
		return "", nil, err
	}
	if err := os.MkdirAll(dir, 0770); err != nil {
		return "", nil, err
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}
