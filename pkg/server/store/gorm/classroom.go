package gorm

import (
	"gorm.io/gorm"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

var (
	_ store.StudentsStore  = (*StudentsStore)(nil)
	_ store.CalendarStore  = (*CalendarStore)(nil)
	_ store.QuestionsStore = (*QuestionsStore)(nil)
)

// deleteOwned removes the row with id, restricted to userID unless it is
// store.AnyOwner.
func deleteOwned(db *gorm.DB, m interface{}, id, userID int64) error {
	q := db.Where("id = ?", id)
	if userID != store.AnyOwner {
		q = q.Where("user_id = ?", userID)
	}
	tx := q.Delete(m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotOwned
	}
	return nil
}

// StudentsStore implements store.StudentsStore using GORM
type StudentsStore struct {
	db *gorm.DB
}

// NewStudentsStore creates a new StudentsStore
func NewStudentsStore(db *gorm.DB) *StudentsStore {
	return &StudentsStore{db: db}
}

func (s *StudentsStore) List(userID int64) ([]model.Student, error) {
	var students []model.Student
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (s *StudentsStore) Add(student *model.Student) error {
	return s.db.Create(student).Error
}

func (s *StudentsStore) Delete(id, userID int64) error {
	return deleteOwned(s.db, &model.Student{}, id, userID)
}

// CalendarStore implements store.CalendarStore using GORM
type CalendarStore struct {
	db *gorm.DB
}

// NewCalendarStore creates a new CalendarStore
func NewCalendarStore(db *gorm.DB) *CalendarStore {
	return &CalendarStore{db: db}
}

func (s *CalendarStore) List(userID int64) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	if err := s.db.Where("user_id = ?", userID).Order("start_date ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (s *CalendarStore) Add(event *model.CalendarEvent) error {
	return s.db.Create(event).Error
}

func (s *CalendarStore) Delete(id, userID int64) error {
	return deleteOwned(s.db, &model.CalendarEvent{}, id, userID)
}

// QuestionsStore implements store.QuestionsStore using GORM
type QuestionsStore struct {
	db *gorm.DB
}

// NewQuestionsStore creates a new QuestionsStore
func NewQuestionsStore(db *gorm.DB) *QuestionsStore {
	return &QuestionsStore{db: db}
}

func (s *QuestionsStore) List(userID int64) ([]model.Question, error) {
	var questions []model.Question
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *QuestionsStore) Save(question *model.Question) error {
	return s.db.Create(question).Error
}
