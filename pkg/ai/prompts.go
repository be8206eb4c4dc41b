package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const NewsPrompt = "Pesquise as notícias mais recentes (últimas 24h) sobre o Ministério da Educação de Angola (MED), " +
	"Governo de Angola e sindicatos da educação em Angola. Retorne uma lista de notícias em formato JSON. " +
	"Cada notícia deve ter: title, content, category (MED, Pedagogia ou Aviso), source (nome do site oficial). " +
	"Verifique a credibilidade das fontes (apenas sites oficiais .gov.ao ou jornais de renome)."

// Number is a form field the web client sends either as a JSON number or
// as a string.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("expected number or string: %w", err)
	}
	*n = Number(num.String())
	return nil
}

// PlanRequest is the lesson plan form.
type PlanRequest struct {
	Escola     string `json:"escola" validate:"required"`
	Professor  string `json:"professor" validate:"required"`
	Disciplina string `json:"disciplina" validate:"required"`
	Classe     string `json:"classe" validate:"required"`
	Trimestre  string `json:"trimestre"`
	Tempo      Number `json:"tempo"`
	AulaNumero Number `json:"aula_numero"`
	Tema       string `json:"tema"`
	Subtema    string `json:"subtema"`
	Sumario    string `json:"sumario"`
}

const noLibraryNote = "Nota: Não foram encontrados manuais específicos na biblioteca local, use seu conhecimento interno sobre o currículo de Angola."

// BuildPlanPrompt renders the INIDE lesson plan prompt. libraryContext is
// the extracted text of matching official documents and may be empty.
func BuildPlanPrompt(req PlanRequest, provincia, municipio, libraryContext string) string {
	source := noLibraryNote
	if libraryContext != "" {
		source = "Use as seguintes informações extraídas dos manuais oficiais do INIDE como base principal para o conteúdo pedagógico:\n" + libraryContext
	}

	var b strings.Builder
	b.WriteString("\nVocê é um especialista em educação angolana. Gere um plano de aula completo e rigoroso baseado no currículo oficial do INIDE (Angola).\n\n")
	b.WriteString(source)
	b.WriteString("\n\nLAYOUT OFICIAL ANGOLA - MINISTÉRIO DA EDUCAÇÃO\n")
	b.WriteString("--------------------------------------------------\n")
	fmt.Fprintf(&b, "Escola: %s\n", req.Escola)
	fmt.Fprintf(&b, "Professor: %s\n", req.Professor)
	fmt.Fprintf(&b, "Província: %s\n", provincia)
	fmt.Fprintf(&b, "Município: %s\n", municipio)
	fmt.Fprintf(&b, "Disciplina: %s\n", req.Disciplina)
	fmt.Fprintf(&b, "Classe: %s\n", req.Classe)
	fmt.Fprintf(&b, "Trimestre: %s\n", req.Trimestre)
	fmt.Fprintf(&b, "Tempo: %s\n", req.Tempo)
	fmt.Fprintf(&b, "Aula nº: %s\n", req.AulaNumero)
	fmt.Fprintf(&b, "Unidade temática: %s\n", req.Tema)
	fmt.Fprintf(&b, "Subtema: %s\n", req.Subtema)
	fmt.Fprintf(&b, "Sumário: %s\n", req.Sumario)
	b.WriteString(planInstructions)
	return b.String()
}

const planInstructions = `
Se o subtema for amplo, divida em mais de uma aula de 45 minutos.

ESTRUTURA OBRIGATÓRIA DO PLANO:
1. Objetivo Geral do tema (baseado no programa do INIDE)
2. Objetivos da Aula (Operacionalizados)
3. Conteúdo (Fiel aos manuais do INIDE)
4. Material Didáctico
5. Metodologia (Ativa e participativa)
6. Actividades Chave
7. Tipo de Avaliação
8. Procedimentos (O passo a passo detalhado):
    - Introdução (Acolhimento e apresentação ou motivação)
    - Desenvolvimento (Explicação clara e exemplos práticos)
    - Atividades ou exercícios (Para os alunos resolverem)
    - Consolidação (Resumo dos pontos principais)
    - Avaliação (Verificação rápida da aprendizagem)
    - Tarefa para Casa

Linguagem formal pedagógica angolana.
Adicione uma marca d'água textual no final: "Gerado por Portal Pedagógico Angola (PPA) - Qualidade INIDE"

IMPORTANTE: No final do plano, após a marca d'água, adicione uma seção chamada "RECOMENDAÇÕES DA IA PARA O PROFESSOR" com 3 a 5 dicas práticas de como aplicar este plano específico (ex: revisar 3 vezes antes da aula, preparar material X com antecedência, etc).

Formate a resposta em Markdown rico.`

// BuildQuestionsPrompt renders the question bank prompt.
func BuildQuestionsPrompt(subject, classe, topic string, count int) string {
	return fmt.Sprintf("Gere um banco de %d questões de prova para a disciplina de %s, %s, sobre o tema: %s. \n"+
		"Inclua questões de múltipla escolha e de resposta curta. Forneça também as soluções. \n"+
		"Formate em Markdown elegante.", count, subject, classe, topic)
}
