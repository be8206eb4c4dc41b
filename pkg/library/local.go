package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

var _ Storage = (*Local)(nil)

// Local stores the library on the filesystem.
type Local struct {
	root string
}

func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create library root: %w", err)
	}
	return &Local{root: root}, nil
}

// Root is the directory served under /biblioteca.
func (l *Local) Root() string {
	return l.root
}

func (l *Local) abs(p string) (string, string, error) {
	rel, err := Clean(p)
	if err != nil {
		return "", "", err
	}
	return rel, filepath.Join(l.root, filepath.FromSlash(rel)), nil
}

func (l *Local) Tree(ctx context.Context) ([]Entry, error) {
	return l.walk(ctx, l.root, "")
}

func (l *Local) walk(ctx context.Context, dir, rel string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, err
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		childRel := rel + "/" + item.Name()
		if item.IsDir() {
			children, err := l.walk(ctx, filepath.Join(dir, item.Name()), childRel)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Name: item.Name(), Type: TypeDirectory, Path: childRel, Children: children})
			continue
		}
		entries = append(entries, Entry{Name: item.Name(), Type: TypeFile, Path: childRel})
	}
	sortEntries(entries)
	return entries, nil
}

func (l *Local) Save(ctx context.Context, folder, name string, r io.Reader) (string, error) {
	name, err := CleanName(name)
	if err != nil {
		return "", err
	}
	rel, dir, err := l.abs(folder)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", rel, err)
	}

	// write then rename so a failed upload never leaves a partial document
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	if rel == "" {
		return "/" + name, nil
	}
	return "/" + rel + "/" + name, nil
}

func (l *Local) Remove(_ context.Context, p string) error {
	rel, full, err := l.abs(p)
	if err != nil {
		return err
	}
	if rel == "" {
		return ErrInvalidPath
	}
	if _, err := os.Lstat(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return os.RemoveAll(full)
}

func (l *Local) Mkdir(_ context.Context, p string) error {
	rel, full, err := l.abs(p)
	if err != nil {
		return err
	}
	if rel == "" {
		return ErrExists
	}
	if _, err := os.Stat(full); err == nil {
		return ErrExists
	}
	return os.MkdirAll(full, 0o755)
}

func (l *Local) Read(_ context.Context, p string) ([]byte, error) {
	_, full, err := l.abs(p)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrNotFound
	}
	return os.ReadFile(full)
}

func (l *Local) Exists(_ context.Context, p string) (bool, error) {
	_, full, err := l.abs(p)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
