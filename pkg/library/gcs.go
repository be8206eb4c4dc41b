package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// keepObject marks a folder in the bucket; object stores have no
// directories of their own.
const keepObject = ".keep"

var _ Storage = (*GCS)(nil)

// GCS stores the library in a Cloud Storage bucket below an optional
// prefix.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCS opens a client with application default credentials.
func NewGCS(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCS, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs library: bucket name is required")
	}
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCS{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}, nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}

func (g *GCS) key(rel string) string {
	if g.prefix == "" {
		return rel
	}
	if rel == "" {
		return g.prefix
	}
	return g.prefix + "/" + rel
}

func (g *GCS) dirPrefix(rel string) string {
	k := g.key(rel)
	if k == "" {
		return ""
	}
	return k + "/"
}

func (g *GCS) list(ctx context.Context, prefix string, limit int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	var out []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, attrs.Name)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (g *GCS) Tree(ctx context.Context) ([]Entry, error) {
	prefix := g.dirPrefix("")
	keys, err := g.list(ctx, prefix, 0)
	if err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}
	rels := make([]string, 0, len(keys))
	for _, k := range keys {
		rels = append(rels, strings.TrimPrefix(k, prefix))
	}
	return buildTree(rels), nil
}

func (g *GCS) Save(ctx context.Context, folder, name string, r io.Reader) (string, error) {
	name, err := CleanName(name)
	if err != nil {
		return "", err
	}
	rel, err := Clean(folder)
	if err != nil {
		return "", err
	}
	rel = path.Join(rel, name)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	w := g.client.Bucket(g.bucket).Object(g.key(rel)).NewWriter(ctx)
	if ct := ContentType(name); ct != "" {
		w.ContentType = ct
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return "/" + rel, nil
}

func (g *GCS) Remove(ctx context.Context, p string) error {
	rel, err := Clean(p)
	if err != nil {
		return err
	}
	if rel == "" {
		return ErrInvalidPath
	}

	keys, err := g.list(ctx, g.dirPrefix(rel), 0)
	if err != nil {
		return err
	}
	isFile := len(keys) == 0
	if isFile {
		keys = []string{g.key(rel)}
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	for _, k := range keys {
		err := g.client.Bucket(g.bucket).Object(k).Delete(ctx)
		if errors.Is(err, storage.ErrObjectNotExist) {
			if isFile {
				return ErrNotFound
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to delete GCS object %q: %w", k, err)
		}
	}
	return nil
}

func (g *GCS) Mkdir(ctx context.Context, p string) error {
	rel, err := Clean(p)
	if err != nil {
		return err
	}
	ok, err := g.Exists(ctx, rel)
	if err != nil {
		return err
	}
	if ok {
		return ErrExists
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	w := g.client.Bucket(g.bucket).Object(g.dirPrefix(rel) + keepObject).NewWriter(ctx)
	if err := w.Close(); err != nil {
		return fmt.Errorf("create folder %s: %w", rel, err)
	}
	return nil
}

func (g *GCS) Read(ctx context.Context, p string) ([]byte, error) {
	rel, err := Clean(p)
	if err != nil {
		return nil, err
	}
	if rel == "" {
		return nil, ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	r, err := g.client.Bucket(g.bucket).Object(g.key(rel)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open GCS reader: %w", err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (g *GCS) Exists(ctx context.Context, p string) (bool, error) {
	rel, err := Clean(p)
	if err != nil {
		return false, err
	}
	if rel == "" {
		return true, nil
	}

	actx, cancel := context.WithTimeout(ctx, 30*time.Second)
	_, err = g.client.Bucket(g.bucket).Object(g.key(rel)).Attrs(actx)
	cancel()
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, storage.ErrObjectNotExist) {
		return false, err
	}

	keys, err := g.list(ctx, g.dirPrefix(rel), 1)
	if err != nil {
		return false, err
	}
	return len(keys) > 0, nil
}

// buildTree turns flat object names into a nested tree. Folder placeholders
// make their folder appear but are not listed themselves.
func buildTree(names []string) []Entry {
	type node struct {
		entry    Entry
		children map[string]*node
	}
	root := &node{children: map[string]*node{}}

	for _, name := range names {
		segs := strings.Split(strings.Trim(name, "/"), "/")
		cur := root
		rel := ""
		for i, seg := range segs {
			if seg == "" {
				continue
			}
			last := i == len(segs)-1
			if last && seg == keepObject {
				break
			}
			rel += "/" + seg
			child, ok := cur.children[seg]
			if !ok {
				typ := TypeDirectory
				if last {
					typ = TypeFile
				}
				child = &node{entry: Entry{Name: seg, Type: typ, Path: rel}, children: map[string]*node{}}
				cur.children[seg] = child
			}
			if !last {
				child.entry.Type = TypeDirectory
			}
			cur = child
		}
	}

	var flatten func(n *node) []Entry
	flatten = func(n *node) []Entry {
		out := make([]Entry, 0, len(n.children))
		for _, c := range n.children {
			e := c.entry
			if e.Type == TypeDirectory {
				e.Children = flatten(c)
			}
			out = append(out, e)
		}
		sortEntries(out)
		return out
	}
	return flatten(root)
}

// ContentType guesses a MIME type from a document name.
func ContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".doc":
		return "application/msword"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".md":
		return "text/markdown; charset=utf-8"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return ""
	}
}
