// Package archive creates and inspects the tar.gz distribution archives
// produced by the packager. Archives are written through a temporary
// file in the destination directory and renamed into place, so the
// canonical archive path never holds a half-written file.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	e "modkit/pkg/errors"
)

// Create bundles the given members into a tar.gz at outPath. Members are
// paths relative to root; each must be a regular file. Member order is
// preserved as given so archive layout stays deterministic.
func Create(outPath, root string, members []string) error {
	if len(members) == 0 {
		return e.New(e.ErrArchiveFailed, "Refusing to create an empty archive").
			WithContext("path", outPath)
	}

	dir := filepath.Dir(outPath)
	tmp, err := os.CreateTemp(dir, ".archive-*.tar.gz")
	if err != nil {
		return e.Wrap(err, e.ErrFilesystem, "Failed to create temporary archive").
			WithContext("dir", dir)
	}
	tmpName := tmp.Name()
	// Remove the temp file on any failure path; harmless after rename.
	defer os.Remove(tmpName)

	if err := writeMembers(tmp, root, members); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return e.Wrap(err, e.ErrFilesystem, "Failed to finalize archive")
	}
	if err := os.Rename(tmpName, outPath); err != nil {
		return e.Wrap(err, e.ErrFilesystem, "Failed to publish archive").
			WithContext("path", outPath)
	}
	return nil
}

func writeMembers(w io.Writer, root string, members []string) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	for _, rel := range members {
		if err := addFile(tw, root, rel); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return e.Wrap(err, e.ErrArchiveFailed, "Failed to close tar stream")
	}
	if err := gz.Close(); err != nil {
		return e.Wrap(err, e.ErrArchiveFailed, "Failed to close gzip stream")
	}
	return nil
}

func addFile(tw *tar.Writer, root, rel string) error {
	full := filepath.Join(root, rel)
	info, err := os.Stat(full)
	if err != nil {
		return e.Wrap(err, e.ErrFileNotFound, fmt.Sprintf("Archive member missing: %s", rel)).
			WithContext("path", full)
	}
	if !info.Mode().IsRegular() {
		return e.New(e.ErrArchiveFailed, fmt.Sprintf("Archive member is not a regular file: %s", rel))
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return e.Wrap(err, e.ErrArchiveFailed, "Failed to build tar header")
	}
	// Always store slash-separated relative paths.
	hdr.Name = filepath.ToSlash(rel)

	if err := tw.WriteHeader(hdr); err != nil {
		return e.Wrap(err, e.ErrArchiveFailed, "Failed to write tar header")
	}
	f, err := os.Open(full)
	if err != nil {
		return e.Wrap(err, e.ErrFilesystem, fmt.Sprintf("Failed to open %s", rel))
	}
	defer f.Close()
	if _, err := io.Copy(tw, f); err != nil {
		return e.Wrap(err, e.ErrArchiveFailed, fmt.Sprintf("Failed to archive %s", rel))
	}
	return nil
}

// List returns the member names of a tar.gz archive in stored order.
func List(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, e.Wrap(err, e.ErrFileNotFound, "Failed to open archive").
			WithContext("path", path)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, e.Wrap(err, e.ErrArchiveFailed, "Archive is not gzip-compressed")
	}
	defer gz.Close()

	var names []string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, e.Wrap(err, e.ErrArchiveFailed, "Failed to read archive")
		}
		names = append(names, hdr.Name)
	}
	return names, nil
}
