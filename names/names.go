package names

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// SourcePrefixLen is the length of the numeric id leading every source filename.
const SourcePrefixLen = 6

// ComboSeparator joins source prefixes into a combination name.
const ComboSeparator = "-"

// HasNumericPrefix reports whether name starts with n ASCII digits.
func HasNumericPrefix(name string, n int) bool {
	if len(name) < n {
		return false
	}
	for i := 0; i < n; i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}

// SourcePrefix returns the identifying prefix of a source filename.
// Shorter names are returned whole.
func SourcePrefix(filename string) string {
	if len(filename) <= SourcePrefixLen {
		return filename
	}
	return filename[:SourcePrefixLen]
}

// ComboName joins the prefixes of the files, in order.
func ComboName(filenames []string) string {
	prefixes := make([]string, len(filenames))
	for i, f := range filenames {
		prefixes[i] = SourcePrefix(f)
	}
	return strings.Join(prefixes, ComboSeparator)
}

// TrimExt strips ext from name if present, otherwise the last filepath extension.
func TrimExt(name, ext string) string {
	if ext != "" && strings.HasSuffix(name, ext) {
		return strings.TrimSuffix(name, ext)
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// SceneFileName names a cropped sub-scene, eg. "20000_12.json".
func SceneFileName(duration int64, count int, ext string) string {
	return fmt.Sprintf("%d_%d%s", duration, count, ext)
}

// ParseSceneStem parses "{duration}_{count}".
// Anything but exactly two underscore separated integers is not a scene.
func ParseSceneStem(stem string) (duration int64, count int, ok bool) {
	parts := strings.Split(stem, "_")
	if len(parts) != 2 {
		return 0, 0, false
	}
	duration, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	count, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return duration, count, true
}
