package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

// Ensure CurriculumStore implements store.CurriculumStore
var _ store.CurriculumStore = (*CurriculumStore)(nil)

// CurriculumStore implements store.CurriculumStore using GORM
type CurriculumStore struct {
	db *gorm.DB
}

// NewCurriculumStore creates a new CurriculumStore
func NewCurriculumStore(db *gorm.DB) *CurriculumStore {
	return &CurriculumStore{db: db}
}

// List returns every curriculum row in insertion order
func (s *CurriculumStore) List() ([]model.CurriculumEntry, error) {
	var entries []model.CurriculumEntry
	if err := s.db.Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of curriculum rows
func (s *CurriculumStore) Count() (int64, error) {
	var n int64
	err := s.db.Model(&model.CurriculumEntry{}).Count(&n).Error
	return n, err
}

func (s *CurriculumStore) findRow(tx *gorm.DB, ref store.CurriculumRef) (*model.CurriculumEntry, error) {
	var entry model.CurriculumEntry
	err := tx.Where("classe = ? AND disciplina = ? AND tema = ? AND subtema = ?",
		ref.Classe, ref.Disciplina, ref.Tema, ref.Subtema).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// AddSumario merges ref.Sumario into its row, creating the row if needed
func (s *CurriculumStore) AddSumario(ref store.CurriculumRef) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		entry, err := s.findRow(tx, ref)
		if err != nil {
			return err
		}

		if entry == nil {
			entry = &model.CurriculumEntry{
				Classe:     ref.Classe,
				Disciplina: ref.Disciplina,
				Tema:       ref.Tema,
				Subtema:    ref.Subtema,
			}
			var list []string
			if ref.Sumario != "" {
				list = []string{ref.Sumario}
			}
			entry.SetSumarios(list)
			return tx.Create(entry).Error
		}

		if ref.Sumario == "" || entry.HasSumario(ref.Sumario) {
			return nil
		}
		entry.SetSumarios(append(entry.SumarioList(), ref.Sumario))
		return tx.Model(entry).Update("sumarios", entry.Sumarios).Error
	})
}

// Rename changes the name of a disciplina, tema, subtema or sumario
func (s *CurriculumStore) Rename(level string, ref store.CurriculumRef, name string) error {
	q := s.db.Model(&model.CurriculumEntry{})
	switch level {
	case store.LevelDisciplina:
		return q.Where("classe = ? AND disciplina = ?", ref.Classe, ref.Disciplina).
			Update("disciplina", name).Error
	case store.LevelTema:
		return q.Where("classe = ? AND disciplina = ? AND tema = ?", ref.Classe, ref.Disciplina, ref.Tema).
			Update("tema", name).Error
	case store.LevelSubtema:
		return q.Where("classe = ? AND disciplina = ? AND tema = ? AND subtema = ?",
			ref.Classe, ref.Disciplina, ref.Tema, ref.Subtema).
			Update("subtema", name).Error
	case store.LevelSumario:
		return s.db.Transaction(func(tx *gorm.DB) error {
			entry, err := s.findRow(tx, ref)
			if err != nil || entry == nil {
				return err
			}
			list := entry.SumarioList()
			for i, v := range list {
				if v == ref.Sumario {
					list[i] = name
					entry.SetSumarios(list)
					return tx.Model(entry).Update("sumarios", entry.Sumarios).Error
				}
			}
			return nil
		})
	}
	return store.ErrInvalidLevel
}

// Remove deletes the most specific node named by ref
func (s *CurriculumStore) Remove(ref store.CurriculumRef) error {
	switch {
	case ref.Sumario != "":
		return s.db.Transaction(func(tx *gorm.DB) error {
			entry, err := s.findRow(tx, ref)
			if err != nil || entry == nil {
				return err
			}
			kept := make([]string, 0, len(entry.SumarioList()))
			for _, v := range entry.SumarioList() {
				if v != ref.Sumario {
					kept = append(kept, v)
				}
			}
			entry.SetSumarios(kept)
			return tx.Model(entry).Update("sumarios", entry.Sumarios).Error
		})
	case ref.Subtema != "":
		return s.db.Where("classe = ? AND disciplina = ? AND tema = ? AND subtema = ?",
			ref.Classe, ref.Disciplina, ref.Tema, ref.Subtema).Delete(&model.CurriculumEntry{}).Error
	case ref.Tema != "":
		return s.db.Where("classe = ? AND disciplina = ? AND tema = ?",
			ref.Classe, ref.Disciplina, ref.Tema).Delete(&model.CurriculumEntry{}).Error
	case ref.Disciplina != "":
		return s.db.Where("classe = ? AND disciplina = ?",
			ref.Classe, ref.Disciplina).Delete(&model.CurriculumEntry{}).Error
	}
	return nil
}

// ReplaceAll deletes the tree and inserts entries
func (s *CurriculumStore) ReplaceAll(entries []model.CurriculumEntry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.CurriculumEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.CreateInBatches(entries, 200).Error
	})
}
