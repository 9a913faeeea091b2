// Package digest provides deterministic content digests for module
// source trees and produced archives. Reload consumers use the tree
// digest as a cache key to decide whether a pushed archive actually
// changed anything; the CLI exposes it for support diagnostics.
//
// Hashing is deterministic across platforms: files are walked in sorted
// order, paths are slash-separated, and ignore rules filter out
// interpreter droppings and build output before hashing.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/zeebo/blake3"
)

// Options configures digest calculation.
type Options struct {
	// Algorithm selects the hash: "blake3" (default) or "sha256".
	Algorithm string
	// Rules filters files out of tree digests. Nil means DefaultRules.
	Rules *IgnoreRules
}

// Validate checks the options.
func (o *Options) Validate() error {
	switch o.Algorithm {
	case "", "blake3", "sha256":
		return nil
	default:
		return fmt.Errorf("unsupported algorithm: %s", o.Algorithm)
	}
}

// FileEntry records one hashed file inside a tree digest.
type FileEntry struct {
	Path string `json:"path"`
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// Digest is the result of a tree digest calculation.
type Digest struct {
	Hash      string      `json:"hash"`
	Algorithm string      `json:"algorithm"`
	FileCount int         `json:"file_count"`
	TotalSize int64       `json:"total_size"`
	Files     []FileEntry `json:"files"`
}

func newHasher(algorithm string) hash.Hash {
	if algorithm == "sha256" {
		return sha256.New()
	}
	return blake3.New()
}

func algorithmName(algorithm string) string {
	if algorithm == "sha256" {
		return "sha256"
	}
	return "blake3"
}

// File hashes a single file.
func File(path string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := newHasher(opts.Algorithm)
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Tree hashes every file under root that passes the ignore rules.
// Files are processed in sorted path order so the combined digest is
// deterministic regardless of filesystem iteration order.
func Tree(root string, opts Options) (*Digest, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return rerr
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if rules.Match(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if rules.Match(rel, false) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	result := &Digest{Algorithm: algorithmName(opts.Algorithm)}
	combined := newHasher(opts.Algorithm)
	for _, rel := range paths {
		full := filepath.Join(root, rel)
		info, err := os.Stat(full)
		if err != nil {
			return nil, err
		}
		fileHash, err := File(full, opts)
		if err != nil {
			return nil, err
		}
		entry := FileEntry{Path: filepath.ToSlash(rel), Hash: fileHash, Size: info.Size()}
		result.Files = append(result.Files, entry)
		result.TotalSize += entry.Size
		// path + size + hash per line keeps the combined digest stable
		fmt.Fprintf(combined, "%s\n%d\n%s\n", entry.Path, entry.Size, entry.Hash)
	}
	result.FileCount = len(result.Files)
	result.Hash = hex.EncodeToString(combined.Sum(nil))
	return result, nil
}

// Tag computes a short (12-char) tree digest tag suitable for naming
// reload pushes.
func Tag(root string, opts Options) (string, error) {
	d, err := Tree(root, opts)
	if err != nil {
		return "", err
	}
	if len(d.Hash) < 12 {
		return "", fmt.Errorf("digest too short")
	}
	return d.Hash[:12], nil
}
