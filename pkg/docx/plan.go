package docx

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const Footer = "Gerado por Portal Pedagógico Angola (PPA) - Qualidade INIDE"

// PlanHeader carries the informative block printed above a lesson plan.
type PlanHeader struct {
	Escola     string
	Professor  string
	Provincia  string
	Municipio  string
	Disciplina string
	Classe     string
	Trimestre  string
	AulaNumero string
	Tempo      string
	// Template selects the letterhead: Pública, Luanda, Benguela, Huambo.
	Template string
}

func headerText(template string) string {
	if template == "Pública" {
		return "MINISTÉRIO DA EDUCAÇÃO"
	}
	return "REPÚBLICA DE ANGOLA"
}

func subHeaderText(template string) string {
	switch template {
	case "Luanda":
		return "GOVERNO PROVINCIAL DE LUANDA"
	case "Benguela":
		return "GOVERNO PROVINCIAL DE BENGUELA"
	case "Huambo":
		return "GOVERNO PROVINCIAL DO HUAMBO"
	}
	return ""
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func field(label, value string) Paragraph {
	return Paragraph{Runs: []Run{{Text: label + ": ", Bold: true}, {Text: value}}}
}

// RenderPlan lays a generated plan out on the official template.
func RenderPlan(h PlanHeader, plano string) *Document {
	d := New()
	d.Add(Paragraph{Style: StyleHeading1, Align: AlignCenter, Runs: []Run{{Text: headerText(h.Template)}}})
	if sub := subHeaderText(h.Template); sub != "" {
		d.Add(Paragraph{Align: AlignCenter, Runs: []Run{{Text: sub}}})
	}

	d.Add(
		Text(""),
		Paragraph{Align: AlignCenter, Runs: []Run{{Text: "ESCOLA: " + strings.ToUpper(h.Escola), Bold: true, Size: 24}}},
		Text(""),
		Paragraph{Align: AlignCenter, BorderBottom: true, Runs: []Run{{Text: "PLANO DE AULA", Bold: true, Size: 28}}},
		Text(""),
		Paragraph{Runs: []Run{{Text: "DADOS INFORMATIVOS", Bold: true}}},
		field("Professor", h.Professor),
		field("Província", orDefault(h.Provincia, "Não definida")),
		field("Município", orDefault(h.Municipio, "Não definido")),
		field("Disciplina", h.Disciplina),
		field("Classe", h.Classe),
		field("Trimestre", h.Trimestre),
		field("Aula nº", h.AulaNumero),
		field("Tempo", h.Tempo+" min"),
		Text(""),
		Paragraph{BorderBottom: true, Runs: []Run{{Text: "DESENVOLVIMENTO DO PLANO", Bold: true}}},
		Text(""),
	)

	d.Add(PlanBody(plano)...)

	d.Add(
		Text(""),
		Paragraph{Align: AlignCenter, Runs: []Run{{Text: "________________________________", Bold: true}}},
		Paragraph{Align: AlignCenter, Runs: []Run{{Text: "O Professor", Size: 20}}},
		Text(""),
		Paragraph{Align: AlignRight, Runs: []Run{{Text: Footer, Italic: true, Color: "888888", Size: 16}}},
	)
	return d
}

// PlanBody converts plan markdown line by line: "# " lines become Heading 2,
// "## " lines Heading 3, everything else a paragraph with inline emphasis
// kept as bold or italic runs.
func PlanBody(plano string) []Paragraph {
	md := goldmark.New()
	lines := strings.Split(strings.ReplaceAll(plano, "\r\n", "\n"), "\n")
	out := make([]Paragraph, 0, len(lines))
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "# "):
			out = append(out, Paragraph{Style: StyleHeading2, Runs: []Run{{Text: plainInline(md, strings.TrimPrefix(line, "# "))}}})
		case strings.HasPrefix(line, "## "):
			out = append(out, Paragraph{Style: StyleHeading3, Runs: []Run{{Text: plainInline(md, strings.TrimPrefix(line, "## "))}}})
		default:
			out = append(out, lineParagraph(md, line))
		}
	}
	return out
}

func plainInline(md goldmark.Markdown, s string) string {
	var sb strings.Builder
	for _, r := range inlineRuns(md, s) {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

func lineParagraph(md goldmark.Markdown, line string) Paragraph {
	if strings.TrimSpace(line) == "" {
		return Text("")
	}
	source := []byte(line)
	doc := md.Parser().Parse(text.NewReader(source))
	if _, ok := doc.FirstChild().(*ast.ThematicBreak); ok {
		return Paragraph{BorderBottom: true, Runs: []Run{{Text: ""}}}
	}
	runs := collectRuns(doc, source)
	if len(runs) == 0 {
		runs = []Run{{Text: strings.TrimSpace(line)}}
	}
	return Paragraph{Runs: runs}
}

func inlineRuns(md goldmark.Markdown, s string) []Run {
	source := []byte(s)
	runs := collectRuns(md.Parser().Parse(text.NewReader(source)), source)
	if len(runs) == 0 {
		return []Run{{Text: strings.TrimSpace(s)}}
	}
	return runs
}

// collectRuns walks the inline nodes of a parsed line. Strong emphasis
// becomes bold, single emphasis italic, list items keep their marker.
func collectRuns(doc ast.Node, source []byte) []Run {
	var runs []Run
	bold, italic := 0, 0

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Emphasis:
			if node.Level >= 2 {
				bold += delta(entering)
			} else {
				italic += delta(entering)
			}
		case *ast.ListItem:
			if entering {
				runs = append(runs, Run{Text: listMarker(node)})
			}
		case *ast.Heading:
			bold += delta(entering)
		case *ast.Text:
			if entering {
				t := string(node.Segment.Value(source))
				if node.SoftLineBreak() || node.HardLineBreak() {
					t += " "
				}
				runs = append(runs, Run{Text: t, Bold: bold > 0, Italic: italic > 0})
			}
		case *ast.String:
			if entering {
				runs = append(runs, Run{Text: string(node.Value), Bold: bold > 0, Italic: italic > 0})
			}
		case *ast.AutoLink:
			if entering {
				runs = append(runs, Run{Text: string(node.Label(source)), Bold: bold > 0, Italic: italic > 0})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return mergeRuns(runs)
}

func delta(entering bool) int {
	if entering {
		return 1
	}
	return -1
}

func listMarker(item *ast.ListItem) string {
	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return "• "
	}
	n := list.Start
	for sib := item.PreviousSibling(); sib != nil; sib = sib.PreviousSibling() {
		n++
	}
	return strconv.Itoa(n) + ". "
}

// mergeRuns joins neighbouring runs with identical formatting.
func mergeRuns(runs []Run) []Run {
	var out []Run
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		if last := len(out) - 1; last >= 0 && out[last].Bold == r.Bold && out[last].Italic == r.Italic {
			out[last].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}
