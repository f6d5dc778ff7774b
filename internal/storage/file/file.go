package file

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drakos74/svm2cv/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// File is a local file acting as both model source and document sink.
type File struct {
	path string
}

// New creates a new file reference for the given path.
func New(path string) *File {
	return &File{path: path}
}

// Path returns the location of the file.
func (f *File) Path() string {
	return f.path
}

// Lines reads the whole file and splits it into lines.
func (f *File) Lines() ([]string, error) {
	return ReadLines(f.path)
}

// Store writes the payload atomically to the file location.
func (f *File) Store(payload []byte) error {
	return Save(f.path, payload)
}

// ReadLines loads the file at the given path in one go and returns its lines,
// without the line terminators.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read file '%s': %v: %w", path, err, storage.NotFoundErr)
		}
		return nil, fmt.Errorf("could not read file '%s': %v: %w", path, err, storage.CouldNotLoadErr)
	}

	lines := make([]string, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	// support vector lines can get long for high dimensional models
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not split file '%s': %v: %w", path, err, storage.CouldNotLoadErr)
	}

	log.Debug().Str("path", path).Int("lines", len(lines)).Msg("loaded file")
	return lines, nil
}

// Save writes the payload into a temporary file next to the target and renames it
// over the target only after the write completed.
// On any failure the temporary file is removed and the target is left untouched.
func Save(path string, payload []byte) (err error) {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("could not find dir '%s': %v: %w", dir, err, storage.CouldNotStoreErr)
	} else if !info.IsDir() {
		return fmt.Errorf("path given is not a dir: %s: %w", dir, storage.CouldNotStoreErr)
	}

	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.New().String())
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not create file '%s': %v: %w", tmp, err, storage.CouldNotStoreErr)
	}
	defer func() {
		if err != nil {
			f.Close()
			if rmErr := os.Remove(tmp); rmErr != nil && !os.IsNotExist(rmErr) {
				log.Warn().Err(rmErr).Str("path", tmp).Msg("could not clean up temp file")
			}
		}
	}()

	if _, err = f.Write(payload); err != nil {
		return fmt.Errorf("could not write bytes to file '%s': %v: %w", tmp, err, storage.CouldNotStoreErr)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("could not sync file '%s': %v: %w", tmp, err, storage.CouldNotStoreErr)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("could not close file '%s': %v: %w", tmp, err, storage.CouldNotStoreErr)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("could not move '%s' to '%s': %v: %w", tmp, path, err, storage.CouldNotStoreErr)
	}

	log.Debug().Str("path", path).Int("bytes", len(payload)).Msg("stored file")
	return nil
}
