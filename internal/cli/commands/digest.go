package commands

import (
	"fmt"
	"os"

	"modkit/internal/digest"
	"modkit/internal/pack"
)

// Digest calculates and prints module digests. The tree digest is what
// watch uses to tag reload pushes; the archive digest identifies a
// finished build. Both are handy when debugging why a reload consumer
// thinks nothing changed.
func Digest(args []string) error {
	cfg := parseDigestFlags(args)
	if cfg.showHelp {
		showDigestHelp()
		return nil
	}
	if err := cfg.options.Validate(); err != nil {
		return err
	}

	if cfg.archive {
		return digestArchive(&cfg)
	}
	return digestTree(&cfg)
}

type digestConfig struct {
	rootDir   string
	showFiles bool
	archive   bool
	showHelp  bool
	options   digest.Options
}

func parseDigestFlags(args []string) digestConfig {
	cfg := digestConfig{rootDir: "."}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			cfg.showHelp = true
		case "--files":
			cfg.showFiles = true
		case "--archive":
			cfg.archive = true
		case "--algorithm":
			if i+1 < len(args) {
				cfg.options.Algorithm = args[i+1]
				i++
			}
		case "--root", "-C":
			if i+1 < len(args) {
				cfg.rootDir = args[i+1]
				i++
			}
		}
	}
	return cfg
}

func digestTree(cfg *digestConfig) error {
	rules, err := digest.LoadFromModule(cfg.rootDir)
	if err != nil {
		return err
	}
	cfg.options.Rules = rules

	d, err := digest.Tree(cfg.rootDir, cfg.options)
	if err != nil {
		return err
	}

	fmt.Printf("🔐 Digest: %s\n", d.Hash[:16])
	fmt.Printf("📁 Files: %d\n", d.FileCount)
	fmt.Printf("Algorithm: %s\n", d.Algorithm)
	fmt.Printf("Total Size: %s\n", formatFileSize(d.TotalSize))

	if cfg.showFiles {
		fmt.Println("\nFiles included in digest:")
		for _, f := range d.Files {
			fmt.Printf("  %s (%s) - %s\n", f.Path, formatFileSize(f.Size), f.Hash[:12])
		}
	}
	return nil
}

func digestArchive(cfg *digestConfig) error {
	path := pack.ArchivePath(cfg.rootDir)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no archive at %s (run modkit pack first): %w", path, err)
	}
	hash, err := digest.File(path, cfg.options)
	if err != nil {
		return err
	}
	fmt.Printf("🔐 Archive: %s\n", path)
	fmt.Printf("Hash: %s\n", hash)
	return nil
}

// formatFileSize formats a byte count as a human-readable string.
func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

func showDigestHelp() {
	fmt.Println(`modkit digest - Calculate and inspect module digests

USAGE:
    modkit digest [OPTIONS]

OPTIONS:
    -h, --help          Show this help message
    --files             List all files included in the tree digest
    --archive           Hash dist/archive.tar.gz instead of the tree
    --algorithm ALGO    Hash algorithm: blake3 (default), sha256
    --root DIR          Module root directory (default: current directory)

EXAMPLES:
    modkit digest                       # digest of the module source tree
    modkit digest --files               # show every file that contributes
    modkit digest --archive             # hash the built archive
    modkit digest --algorithm sha256    # use SHA-256 instead of BLAKE3

The tree digest respects .modkitignore and the built-in ignore rules, so
it changes exactly when the packaged content would change.`)
}
