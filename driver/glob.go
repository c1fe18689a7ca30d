package driver

import "path/filepath"

// matchName reports whether a test name matches a glob pattern, using
// filepath.Match's shell-style syntax. No example repo in the corpus ships
// a dedicated glob library, so this one concern stays on the standard
// library. An empty pattern matches everything.
func matchName(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	ok, err := filepath.Match(pattern, name)
	if err != nil {
		return false
	}
	return ok
}
