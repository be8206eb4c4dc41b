package model

import "encoding/json"

// CurriculumEntry is one classe/disciplina/tema/subtema row. Sumarios holds a
// JSON array of strings.
type CurriculumEntry struct {
	ID         int64  `gorm:"column:id;primaryKey" json:"id"`
	Classe     string `gorm:"column:classe" json:"classe"`
	Disciplina string `gorm:"column:disciplina" json:"disciplina"`
	Tema       string `gorm:"column:tema" json:"tema"`
	Subtema    string `gorm:"column:subtema" json:"subtema"`
	Sumarios   string `gorm:"column:sumarios" json:"sumarios"`
}

func (CurriculumEntry) TableName() string {
	return "curriculum"
}

// SumarioList decodes Sumarios. Malformed text yields an empty list.
func (c *CurriculumEntry) SumarioList() []string {
	var list []string
	if err := json.Unmarshal([]byte(c.Sumarios), &list); err != nil || list == nil {
		return []string{}
	}
	return list
}

// SetSumarios encodes list into Sumarios.
func (c *CurriculumEntry) SetSumarios(list []string) {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	c.Sumarios = string(b)
}

// HasSumario reports whether s is already listed.
func (c *CurriculumEntry) HasSumario(s string) bool {
	for _, v := range c.SumarioList() {
		if v == s {
			return true
		}
	}
	return false
}
