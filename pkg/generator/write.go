package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/blimu-dev/schemagen/pkg/errors"
)

// pendingFile is one rendered artifact waiting to be written.
type pendingFile struct {
	path    string
	content []byte
}

// stagedFile is a fully written temp file next to its final path.
type stagedFile struct {
	tmp  string
	path string
}

// stageFile writes content to a temp file in the directory of path. The
// caller owns the temp file and must rename or remove it.
func stageFile(path string, content []byte) (staged stagedFile, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return stagedFile{}, fmt.Errorf("ensure target directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-schemagen-*")
	if err != nil {
		return stagedFile{}, fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(content); err != nil {
		return stagedFile{}, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return stagedFile{}, fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		return stagedFile{}, fmt.Errorf("set file permissions: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return stagedFile{}, fmt.Errorf("close temp file: %w", err)
	}
	return stagedFile{tmp: tmpPath, path: path}, nil
}

// writeAll stages every file first and renames them into place only once all
// of them are staged. A staging failure removes the temp files and leaves
// every target path untouched.
func writeAll(files []pendingFile) error {
	staged := make([]stagedFile, 0, len(files))
	discard := func(from int) {
		for _, s := range staged[from:] {
			os.Remove(s.tmp)
		}
	}

	for _, f := range files {
		s, err := stageFile(f.path, f.content)
		if err != nil {
			discard(0)
			return errors.Mark(errors.Wrapf(err, "write %s", f.path), errors.ErrIO)
		}
		staged = append(staged, s)
	}

	for i, s := range staged {
		if err := os.Rename(s.tmp, s.path); err != nil {
			discard(i)
			return errors.Mark(
				errors.Wrapf(err, "atomic rename %s to %s", s.tmp, s.path),
				errors.ErrIO)
		}
	}
	return nil
}

// WriteFile atomically writes content to path, creating parent directories.
func WriteFile(path string, content []byte) error {
	return writeAll([]pendingFile{{path: path, content: content}})
}
