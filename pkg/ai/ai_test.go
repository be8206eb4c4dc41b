package ai

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNews(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{"empty", "", 0, false},
		{"plain array", `[{"title":"Calendário","content":"c","category":"MED","source":"med.gov.ao"}]`, 1, false},
		{"fenced", "```json\n[{\"title\":\"A\",\"content\":\"\",\"category\":\"Aviso\",\"source\":\"x\"}]\n```", 1, false},
		{"drops untitled", `[{"title":" "},{"title":"B"}]`, 1, false},
		{"garbage", "not json", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ParseNews(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.want)
		})
	}
}

func TestBuildPlanPrompt(t *testing.T) {
	req := PlanRequest{
		Escola:     "Escola 12",
		Professor:  "Ana",
		Disciplina: "Matemática",
		Classe:     "2ª Classe",
		Trimestre:  "I",
		Tempo:      "45",
		AulaNumero: "3",
		Tema:       "Números",
		Subtema:    "Contagem",
		Sumario:    "Números até 20",
	}

	p := BuildPlanPrompt(req, "Luanda", "Viana", "")
	assert.Contains(t, p, noLibraryNote)
	assert.Contains(t, p, "LAYOUT OFICIAL ANGOLA - MINISTÉRIO DA EDUCAÇÃO")
	assert.Contains(t, p, "Província: Luanda\nMunicípio: Viana\n")
	assert.Contains(t, p, "Unidade temática: Números\nSubtema: Contagem\nSumário: Números até 20\n")
	assert.Contains(t, p, "8. Procedimentos (O passo a passo detalhado):")
	assert.Contains(t, p, `"Gerado por Portal Pedagógico Angola (PPA) - Qualidade INIDE"`)
	assert.Contains(t, p, `"RECOMENDAÇÕES DA IA PARA O PROFESSOR"`)
	assert.True(t, strings.HasSuffix(p, "Formate a resposta em Markdown rico."))

	withDocs := BuildPlanPrompt(req, "Luanda", "Viana", "\n--- CONTEÚDO DO DOCUMENTO OFICIAL: prog.pdf ---\ntexto\n")
	assert.NotContains(t, withDocs, noLibraryNote)
	assert.Contains(t, withDocs, "manuais oficiais do INIDE como base principal")
	assert.Contains(t, withDocs, "CONTEÚDO DO DOCUMENTO OFICIAL: prog.pdf")
}

func TestBuildQuestionsPrompt(t *testing.T) {
	p := BuildQuestionsPrompt("Português", "4ª Classe", "Verbos", 10)
	assert.True(t, strings.HasPrefix(p, "Gere um banco de 10 questões de prova para a disciplina de Português, 4ª Classe, sobre o tema: Verbos."))
	assert.Contains(t, p, "Forneça também as soluções.")
}

func TestUnconfigured(t *testing.T) {
	_, err := Unconfigured{}.GenerateText(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = Unconfigured{}.SearchNews(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewGemini(context.Background(), "", "m")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	var req PlanRequest
	require.NoError(t, json.Unmarshal([]byte(`{"aula_numero": 3, "tempo": "45"}`), &req))
	assert.Equal(t, Number("3"), req.AulaNumero)
	assert.Equal(t, Number("45"), req.Tempo)

	require.NoError(t, json.Unmarshal([]byte(`{"aula_numero": null}`), &req))
	assert.Equal(t, Number(""), req.AulaNumero)

	assert.Error(t, json.Unmarshal([]byte(`{"aula_numero": [1]}`), &req))
}
