package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const checksumSuffix = ".checksum"

// FileSlot keeps one file per key under a directory, with a sha256 checksum sidecar.
// On the OS filesystem writes are serialized across processes with an flock.
type FileSlot struct {
	fs  afero.Fs
	dir string
	ext string
}

// NewFileSlot returns a file slot rooted at dir. A nil fs means the OS filesystem.
func NewFileSlot(fsys afero.Fs, dir string) (*FileSlot, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if dir == "" {
		dir = "."
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &FileSlot{fs: fsys, dir: dir, ext: FormatJSON}, nil
}

// WithExtension sets the file extension used for keys (json, yaml or toml).
func (s *FileSlot) WithExtension(ext string) *FileSlot {
	if ext = strings.TrimPrefix(ext, "."); ext != "" {
		s.ext = ext
	}
	return s
}

// Path returns the file backing key.
func (s *FileSlot) Path(key string) string {
	return filepath.Join(s.dir, key+"."+s.ext)
}

// Get reads the value for key. A checksum mismatch yields ErrCorrupt. A missing
// checksum file is tolerated so hand-written files can still be loaded.
func (s *FileSlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := s.Path(key)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read data file %s: %w", path, err)
	}

	want, err := afero.ReadFile(s.fs, path+checksumSuffix)
	switch {
	case err == nil:
		if got := calculateChecksum(data); got != strings.TrimSpace(string(want)) {
			return nil, true, fmt.Errorf("%w: checksum mismatch for %s", ErrCorrupt, path)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, true, fmt.Errorf("error checking checksum file %s: %w", path+checksumSuffix, err)
	}
	return data, true, nil
}

// Put writes value and its checksum through temporary files and renames them into place.
func (s *FileSlot) Put(_ context.Context, key string, value []byte) error {
	path := s.Path(key)

	if _, ok := s.fs.(*afero.OsFs); ok {
		lock := flock.New(path + ".lock")
		if err := lock.Lock(); err != nil {
			return fmt.Errorf("failed to lock %s: %w", path, err)
		}
		defer func() { _ = lock.Unlock() }()
	}

	tmp := path + ".tmp"
	checksumPath := path + checksumSuffix
	tmpChecksum := checksumPath + ".tmp"
	defer func() { _ = s.fs.Remove(tmp) }()
	defer func() { _ = s.fs.Remove(tmpChecksum) }()

	if err := afero.WriteFile(s.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary data file %s: %w", tmp, err)
	}
	if err := afero.WriteFile(s.fs, tmpChecksum, []byte(calculateChecksum(value)), 0o644); err != nil {
		return fmt.Errorf("failed to write temporary checksum file %s: %w", tmpChecksum, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace data file %s: %w", path, err)
	}
	if err := s.fs.Rename(tmpChecksum, checksumPath); err != nil {
		return fmt.Errorf("failed to replace checksum file %s: %w", checksumPath, err)
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (s *FileSlot) Close() error { return nil }

func calculateChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
