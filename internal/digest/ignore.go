package digest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// IgnoreRules manages gitignore-style pattern matching for file
// exclusion. It supports negation (!) and directory-only patterns (/),
// which is enough for module trees: the interesting exclusions are
// interpreter caches and build output, not deep gitignore semantics.
type IgnoreRules struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	pattern  string
	glob     glob.Glob
	negate   bool
	dirOnly  bool
	hasSlash bool
}

// IgnoreFileName is the optional per-module ignore file.
const IgnoreFileName = ".modkitignore"

// DefaultRules returns rules excluding interpreter droppings, VCS
// bookkeeping, the build venv, and the output directory itself.
func DefaultRules() *IgnoreRules {
	rules := &IgnoreRules{}
	defaults := []string{
		".git/",
		".venv/",
		"dist/",
		"build/",
		"__pycache__/",
		"*.pyc",
		"*.pyo",
		"*.egg-info/",
		".DS_Store",
		"*.swp",
		"*~",
	}
	for _, p := range defaults {
		// Default patterns are static and known-valid.
		_ = rules.AddPattern(p)
	}
	return rules
}

// LoadFromModule returns the default rules extended with any patterns
// found in root/.modkitignore.
func LoadFromModule(root string) (*IgnoreRules, error) {
	rules := DefaultRules()
	if err := rules.LoadFromFile(filepath.Join(root, IgnoreFileName)); err != nil {
		return nil, err
	}
	return rules, nil
}

// LoadFromFile adds patterns from an ignore file. A missing file is not
// an error.
func (r *IgnoreRules) LoadFromFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open ignore file %s: %w", filename, err)
	}
	defer f.Close()
	return r.LoadFromReader(f)
}

// LoadFromReader adds patterns from an io.Reader, one per line.
func (r *IgnoreRules) LoadFromReader(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := r.AddPattern(line); err != nil {
			return fmt.Errorf("invalid pattern on line %d: %w", lineNum, err)
		}
	}
	return scanner.Err()
}

// AddPattern compiles and registers a single pattern.
func (r *IgnoreRules) AddPattern(pattern string) error {
	p := ignorePattern{pattern: pattern}
	if strings.HasPrefix(pattern, "!") {
		p.negate = true
		pattern = pattern[1:]
	}
	if strings.HasSuffix(pattern, "/") {
		p.dirOnly = true
		pattern = strings.TrimSuffix(pattern, "/")
	}
	p.hasSlash = strings.Contains(pattern, "/")

	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return fmt.Errorf("failed to compile pattern %q: %w", p.pattern, err)
	}
	p.glob = g
	r.patterns = append(r.patterns, p)
	return nil
}

// Match reports whether relPath should be excluded. Later patterns win,
// so a negation can re-include a file excluded by an earlier rule.
func (r *IgnoreRules) Match(relPath string, isDir bool) bool {
	relPath = filepath.ToSlash(relPath)
	base := filepath.Base(relPath)

	excluded := false
	for _, p := range r.patterns {
		if p.dirOnly && !isDir {
			// Directory-only patterns still exclude files beneath a
			// matching directory component.
			if !matchesParent(p, relPath) {
				continue
			}
		} else if !matches(p, relPath, base) {
			continue
		}
		excluded = !p.negate
	}
	return excluded
}

func matches(p ignorePattern, relPath, base string) bool {
	if p.hasSlash {
		return p.glob.Match(relPath)
	}
	return p.glob.Match(base) || p.glob.Match(relPath)
}

func matchesParent(p ignorePattern, relPath string) bool {
	parts := strings.Split(relPath, "/")
	for i := range parts {
		prefix := strings.Join(parts[:i+1], "/")
		if matches(p, prefix, parts[i]) {
			return true
		}
	}
	return false
}
