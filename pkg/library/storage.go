package library

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path"
	"sort"
	"strings"
)

var (
	ErrInvalidPath = errors.New("path escapes the library root")
	ErrNotFound    = errors.New("library entry not found")
	ErrExists      = errors.New("library entry already exists")
)

const (
	TypeDirectory = "directory"
	TypeFile      = "file"
)

// Entry is a node of the library tree. Path is relative to the root and
// starts with "/".
type Entry struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Path     string  `json:"path"`
	Children []Entry `json:"children,omitempty"`
}

// MarshalJSON always emits children for directories, even empty ones.
func (e Entry) MarshalJSON() ([]byte, error) {
	type plain Entry
	if e.Type != TypeDirectory {
		return json.Marshal(plain(e))
	}
	children := e.Children
	if children == nil {
		children = []Entry{}
	}
	return json.Marshal(struct {
		Name     string  `json:"name"`
		Type     string  `json:"type"`
		Path     string  `json:"path"`
		Children []Entry `json:"children"`
	}{e.Name, e.Type, e.Path, children})
}

type Storage interface {
	// Tree lists the whole library, entries sorted by name at every level.
	Tree(ctx context.Context) ([]Entry, error)
	// Save writes r to folder/name, creating folder when missing, and
	// returns the stored path.
	Save(ctx context.Context, folder, name string, r io.Reader) (string, error)
	// Remove deletes a file, or a directory with everything below it.
	Remove(ctx context.Context, p string) error
	// Mkdir creates a folder and its parents. ErrExists when present.
	Mkdir(ctx context.Context, p string) error
	Read(ctx context.Context, p string) ([]byte, error)
	Exists(ctx context.Context, p string) (bool, error)
}

// Clean normalizes a client supplied library path into a slash separated
// path relative to the root, without a leading slash. The empty string is
// the root itself. Paths that climb above the root are rejected.
func Clean(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.ContainsRune(p, 0) {
		return "", ErrInvalidPath
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", ErrInvalidPath
		}
	}
	cleaned := path.Clean("/" + p)
	return strings.TrimPrefix(cleaned, "/"), nil
}

// CleanName validates a single path segment such as an uploaded file name.
func CleanName(name string) (string, error) {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "" || name == "." || name == ".." || name == "/" {
		return "", ErrInvalidPath
	}
	return name, nil
}

// Files flattens a tree into its file entries, depth first.
func Files(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Type == TypeFile {
			out = append(out, e)
			continue
		}
		out = append(out, Files(e.Children)...)
	}
	return out
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
}
