package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrMissingFile is returned when a document path does not resolve to a regular file.
var ErrMissingFile = errors.New("document is not a file")

// Document is a note on disk addressed by its absolute path.
type Document struct {
	path string
}

// Open returns a handle for the note at path. The file is not touched until used.
func Open(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Document{path: abs}, nil
}

// Path returns the absolute path of the note.
func (d *Document) Path() string {
	return d.path
}

// Resolve checks that the note still exists as a regular file.
func (d *Document) Resolve() (fs.FileInfo, error) {
	info, err := os.Stat(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", d.path, ErrMissingFile)
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", d.path, ErrMissingFile)
	}
	return info, nil
}

// Read returns the current text of the note.
func (d *Document) Read() (string, error) {
	if _, err := d.Resolve(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Process reads the note, passes its text to fn and writes the result back.
// The write goes through a temporary file in the same directory followed by a
// rename, so readers never observe a partially written note. Nothing is written
// when fn leaves the text unchanged.
func (d *Document) Process(ctx context.Context, fn func(text string) (string, error)) (string, error) {
	info, err := d.Resolve()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text := string(data)
	updated, err := fn(text)
	if err != nil {
		return "", err
	}
	if updated == text {
		return text, nil
	}
	if err := writeAtomic(d.path, []byte(updated), info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("write %s: %w", d.path, err)
	}
	return updated, nil
}

func writeAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
