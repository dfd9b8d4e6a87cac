package archive

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog/log"
)

/* Patterns support * and ** wildcards:
- * matches within a single path element
- ** matches across path elements
*/

// DefaultExcludes is applied to every packaging run: version-control and
// housekeeping directories, hidden files, and the archive output itself.
var DefaultExcludes = []string{
	".git",
	"__pycache__",
	"venv",
	".*",
	Name,
}

// excludeMatcher decides which relative paths stay out of the archive.
// A path is excluded when a pattern matches the full slash-separated
// relative path or any single path element, so ".git" prunes the directory
// at any depth without needing a "**/.git/**" spelling.
type excludeMatcher struct {
	globs []glob.Glob
}

func newExcludeMatcher(patterns []string) *excludeMatcher {
	all := make([]string, 0, len(DefaultExcludes)+len(patterns))
	all = append(all, DefaultExcludes...)
	all = append(all, patterns...)

	globs := make([]glob.Glob, 0, len(all))
	for _, pattern := range all {
		normalized := strings.TrimPrefix(pattern, "/")

		// Validate pattern - only * and ** wildcards are supported
		if containsUnsupportedWildcards(normalized) {
			log.Warn().Str("pattern", pattern).Msg("pattern contains unsupported wildcard characters, only * and ** are supported")
			continue
		}

		g, err := glob.Compile(normalized, '/')
		if err != nil {
			log.Warn().Str("pattern", pattern).Err(err).Msg("skipping unparseable exclude pattern")
			continue
		}

		globs = append(globs, g)
	}

	return &excludeMatcher{globs: globs}
}

// Excluded reports whether the slash-separated relative path matches any
// exclusion pattern.
func (m *excludeMatcher) Excluded(relPath string) bool {
	path := strings.TrimPrefix(relPath, "/")

	for _, g := range m.globs {
		if g.Match(path) {
			return true
		}
	}

	for _, segment := range strings.Split(path, "/") {
		for _, g := range m.globs {
			if g.Match(segment) {
				return true
			}
		}
	}

	return false
}

// containsUnsupportedWildcards checks if pattern contains unsupported wildcard characters
// Only * and ** are supported. Characters like ?, [, ], {, } are not supported.
func containsUnsupportedWildcards(pattern string) bool {
	unsupportedChars := []rune{'?', '[', ']', '{', '}'}

	for _, char := range unsupportedChars {
		if strings.ContainsRune(pattern, char) {
			return true
		}
	}

	return false
}
