// Package curriculum converts the curriculum tree between its YAML form
// (classe, disciplina, tema, subtema, list of sumarios) and the flat rows
// kept in the database, and seeds the table from the embedded tree.
package curriculum

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

//go:embed seed.yml
var seedYAML []byte

// Default returns the embedded curriculum.
func Default() ([]model.CurriculumEntry, error) {
	return Parse(seedYAML)
}

// Parse reads a curriculum tree, keeping document order. A tema may map
// directly to a list of sumarios, which yields a row with an empty subtema.
func Parse(data []byte) ([]model.CurriculumEntry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse curriculum: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: curriculum must be a mapping of classes", root.Line)
	}

	var out []model.CurriculumEntry
	err := eachPair(root, "classe", func(classe string, disciplinas *yaml.Node) error {
		return eachPair(disciplinas, "disciplina", func(disciplina string, temas *yaml.Node) error {
			return eachPair(temas, "tema", func(tema string, node *yaml.Node) error {
				if node.Kind == yaml.SequenceNode {
					e, err := entry(classe, disciplina, tema, "", node)
					if err != nil {
						return err
					}
					out = append(out, e)
					return nil
				}
				return eachPair(node, "subtema", func(subtema string, sumarios *yaml.Node) error {
					e, err := entry(classe, disciplina, tema, subtema, sumarios)
					if err != nil {
						return err
					}
					out = append(out, e)
					return nil
				})
			})
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func eachPair(n *yaml.Node, level string, fn func(key string, value *yaml.Node) error) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of %s entries", n.Line, level)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: %s name must be a string", k.Line, level)
		}
		if err := fn(k.Value, v); err != nil {
			return err
		}
	}
	return nil
}

func entry(classe, disciplina, tema, subtema string, n *yaml.Node) (model.CurriculumEntry, error) {
	e := model.CurriculumEntry{Classe: classe, Disciplina: disciplina, Tema: tema, Subtema: subtema}
	var list []string
	if n.Kind != yaml.SequenceNode && !(n.Kind == yaml.ScalarNode && n.Tag == "!!null") {
		return e, fmt.Errorf("line %d: sumarios of %s/%s/%s must be a list", n.Line, classe, disciplina, tema)
	}
	if err := n.Decode(&list); err != nil {
		return e, fmt.Errorf("line %d: %w", n.Line, err)
	}
	e.SetSumarios(list)
	return e, nil
}

// Export writes rows back as a tree. Rows are grouped in order of first
// appearance.
func Export(entries []model.CurriculumEntry) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for i := range entries {
		e := &entries[i]
		classe := child(root, e.Classe)
		disciplina := child(classe, e.Disciplina)
		tema := child(disciplina, e.Tema)
		list := &yaml.Node{Kind: yaml.SequenceNode}
		for _, s := range e.SumarioList() {
			list.Content = append(list.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: s})
		}
		tema.Content = append(tema.Content, scalar(e.Subtema), list)
	}
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	return yaml.Marshal(doc)
}

func scalar(v string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: v}
	if v == "" {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

// child returns the mapping under key in m, creating it when missing.
func child(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	v := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, scalar(key), v)
	return v
}

// Seed loads the embedded curriculum when the table is empty and returns
// the number of rows written.
func Seed(st store.CurriculumStore) (int, error) {
	n, err := st.Count()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	entries, err := Default()
	if err != nil {
		return 0, err
	}
	if err := st.ReplaceAll(entries); err != nil {
		return 0, fmt.Errorf("seed curriculum: %w", err)
	}
	return len(entries), nil
}

// Load replaces the stored curriculum with the tree in data.
func Load(st store.CurriculumStore, data []byte) (int, error) {
	entries, err := Parse(data)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("curriculum file holds no entries")
	}
	if err := st.ReplaceAll(entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}
