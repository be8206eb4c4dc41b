package store

import (
	"errors"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
)

// ErrInvalidLevel is returned for an unknown curriculum level
var ErrInvalidLevel = errors.New("invalid curriculum level")

// Curriculum levels accepted by Rename.
const (
	LevelDisciplina = "disciplina"
	LevelTema       = "tema"
	LevelSubtema    = "subtema"
	LevelSumario    = "sumario"
)

// CurriculumRef addresses a node of the curriculum tree. Subtema is "" for
// temas without sub-units.
type CurriculumRef struct {
	Classe     string
	Disciplina string
	Tema       string
	Subtema    string
	Sumario    string
}

// CurriculumStore abstracts curriculum tree storage
type CurriculumStore interface {
	List() ([]model.CurriculumEntry, error)
	Count() (int64, error)

	// AddSumario appends ref.Sumario, when set, to the matching row, creating the row
	// when missing. Duplicates are ignored.
	AddSumario(ref CurriculumRef) error

	// Rename changes the node at level to name.
	// Returns ErrInvalidLevel for unknown levels.
	Rename(level string, ref CurriculumRef, name string) error

	// Remove deletes the most specific node ref names.
	Remove(ref CurriculumRef) error

	// ReplaceAll swaps the whole tree for entries.
	ReplaceAll(entries []model.CurriculumEntry) error
}
