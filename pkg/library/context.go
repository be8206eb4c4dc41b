package library

import (
	"context"
	"fmt"
	"strings"
)

// MaxContextDocuments bounds how many documents feed a plan prompt.
const MaxContextDocuments = 2

// RelevantFiles returns up to limit files whose names contain any of the
// given terms, case-insensitively. Empty terms are ignored.
func RelevantFiles(tree []Entry, limit int, terms ...string) []Entry {
	var lowered []string
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			lowered = append(lowered, t)
		}
	}

	var out []Entry
	for _, f := range Files(tree) {
		name := strings.ToLower(f.Name)
		for _, t := range lowered {
			if strings.Contains(name, t) {
				out = append(out, f)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

// PlanContext extracts the official documents matching a subject or class
// and joins them into the block quoted in the plan prompt. Documents that
// fail to read or parse are skipped.
func PlanContext(ctx context.Context, s Storage, disciplina, classe string) (string, error) {
	tree, err := s.Tree(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, f := range RelevantFiles(tree, MaxContextDocuments, disciplina, classe) {
		data, err := s.Read(ctx, f.Path)
		if err != nil {
			continue
		}
		text, err := ExtractText(f.Name, data)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "\n--- CONTEÚDO DO DOCUMENTO OFICIAL: %s ---\n%s\n", f.Name, text)
	}
	return sb.String(), nil
}
