package source

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreFileName is read from the source root when present.
const IgnoreFileName = ".pvignore"

// Hidden files and directories are never offered.
var builtinIgnores = []string{".*"}

type ignoreRule struct {
	glob     string
	fullPath bool // match the slash-separated relative path instead of the basename
}

// IgnoreMatcher decides which files of the source are not offered for import.
// A pattern containing '/' is matched against the path relative to the source
// root; any other pattern is matched against the basename.
type IgnoreMatcher struct {
	rules []ignoreRule
}

// NewIgnoreMatcher builds a matcher from the built-in rules plus patterns.
// Blank patterns and '#' comments are dropped.
func NewIgnoreMatcher(patterns []string) *IgnoreMatcher {
	m := &IgnoreMatcher{}
	for _, raw := range append(append([]string(nil), builtinIgnores...), patterns...) {
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		m.rules = append(m.rules, ignoreRule{glob: raw, fullPath: strings.Contains(raw, "/")})
	}
	return m
}

// Match reports whether rel, a path relative to the source root, is ignored.
func (m *IgnoreMatcher) Match(rel string) bool {
	slashed := filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, r := range m.rules {
		subject := base
		if r.fullPath {
			subject = slashed
		}
		// Malformed globs never match.
		if ok, err := filepath.Match(r.glob, subject); err == nil && ok {
			return true
		}
	}
	return false
}

// ReadIgnoreFile returns the lines of an ignore file, or nil when it does not exist.
func ReadIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ignore file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return lines, nil
}
