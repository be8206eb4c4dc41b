package library

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

const DocsFolder = "Centrais de Documentos"

const programasFolder = "Programas do Ensino Primário"

// Classes are the school years, in teaching order.
var Classes = []string{"Iniciação", "1ª Classe", "2ª Classe", "3ª Classe", "4ª Classe", "5ª Classe", "6ª Classe"}

// DocsFolders are the document centre categories. Only the programmes
// folder is split by class.
var DocsFolders = []string{
	programasFolder,
	"Cadernos de Avaliação",
	"Calendário Escolar",
	"Constituição da República",
	"Currículo por Níveis",
	"Decretos Presidenciais",
	"Diário da República",
	"Dosificação",
	"Estatuto da Carreira Docente",
	"Estatuto da Carreira do Ministério da Educação",
	"Leis de Bases",
	"Regulamento Escolar",
	"Outros Documentos",
}

// legacyFolders are removed on start-up.
var legacyFolders = []string{"Central_Documentos"}

// CanonicalFolders returns every folder of the canonical structure,
// parents before children.
func CanonicalFolders() []string {
	out := append([]string{}, Classes...)
	out = append(out, DocsFolder)
	for _, f := range DocsFolders {
		p := path.Join(DocsFolder, f)
		out = append(out, p)
		if f == programasFolder {
			for _, c := range Classes {
				out = append(out, path.Join(p, c))
			}
		}
	}
	return out
}

// Init creates the canonical structure and removes legacy folders. It is
// idempotent.
func Init(ctx context.Context, s Storage) error {
	for _, legacy := range legacyFolders {
		if err := removeIfExists(ctx, s, legacy); err != nil {
			return err
		}
	}

	for _, folder := range CanonicalFolders() {
		if err := s.Mkdir(ctx, folder); err != nil && !errors.Is(err, ErrExists) {
			return fmt.Errorf("create %s: %w", folder, err)
		}
	}

	// a document centre nested inside the programmes folder, any case
	tree, err := s.Tree(ctx)
	if err != nil {
		return err
	}
	for _, e := range nestedDocsFolders(tree) {
		if err := removeIfExists(ctx, s, e); err != nil {
			return err
		}
	}
	return nil
}

func nestedDocsFolders(tree []Entry) []string {
	var out []string
	for _, top := range tree {
		if top.Name != DocsFolder {
			continue
		}
		for _, prog := range top.Children {
			if prog.Name != programasFolder {
				continue
			}
			for _, child := range prog.Children {
				if child.Type == TypeDirectory && strings.EqualFold(child.Name, DocsFolder) {
					out = append(out, strings.TrimPrefix(child.Path, "/"))
				}
			}
		}
	}
	return out
}

func removeIfExists(ctx context.Context, s Storage, p string) error {
	ok, err := s.Exists(ctx, p)
	if err != nil || !ok {
		return err
	}
	if err := s.Remove(ctx, p); err != nil {
		return fmt.Errorf("remove %s: %w", p, err)
	}
	return nil
}
