package app

import "strings"

// IsTestPath reports whether a file path looks like a test file by naming
// convention: a "test"/"tests" directory segment, a "test_" filename prefix,
// or a "_test" stem suffix. This is the default policy only — the domain
// model takes the flag per file, so callers with different conventions can
// substitute their own predicate.
func IsTestPath(path string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(path, "\\", "/"))
	parts := strings.Split(normalized, "/")
	for _, part := range parts[:len(parts)-1] {
		if part == "test" || part == "tests" {
			return true
		}
	}
	filename := parts[len(parts)-1]
	stem := filename
	if i := strings.LastIndex(filename, "."); i > 0 {
		stem = filename[:i]
	}
	return strings.HasPrefix(stem, "test_") || strings.HasSuffix(stem, "_test")
}
