package endpoints

import (
	"errors"
	"net/http"

	"github.com/ppa-angola/portal-pedagogico/pkg/ai"
	"github.com/ppa-angola/portal-pedagogico/pkg/identity"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

const (
	msgStudentAddFailed   = "Erro ao adicionar aluno"
	msgCalendarAddFailed  = "Erro ao agendar aula"
	msgQuestionSaveFailed = "Erro ao salvar questões"
	msgRecordNotFound     = "Registo não encontrado"
	defaultQuestionCount  = 10
)

// StudentRequest is the body of POST /api/students/add
type StudentRequest struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name" validate:"required"`
	Classe string `json:"classe"`
}

// CalendarRequest is the body of POST /api/calendar/add
type CalendarRequest struct {
	UserID    int64  `json:"userId"`
	Title     string `json:"title" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"`
	PlanID    *int64 `json:"plan_id"`
}

// QuestionsRequest is the body of POST /api/questions/save
type QuestionsRequest struct {
	UserID  int64  `json:"userId"`
	Subject string `json:"subject"`
	Classe  string `json:"classe"`
	Content string `json:"content"`
}

// GenerateQuestionsRequest is the body of POST /api/questions/generate
type GenerateQuestionsRequest struct {
	Subject string `json:"subject" validate:"required"`
	Classe  string `json:"classe" validate:"required"`
	Topic   string `json:"topic" validate:"required"`
	Count   int    `json:"count" validate:"omitempty,min=1,max=50"`
}

// RegisterClassroomEndpoints registers students, calendar and question bank
func RegisterClassroomEndpoints(s *server.Server) {
	log := s.Log.With("component", "classroom")

	s.Router.Handle("/api/students/add", s.Protected(handleAddStudent(s.StudentsStore, log))).Methods("POST")
	s.Router.Handle("/api/students/{userId:[0-9]+}", s.Protected(handleListStudents(s.StudentsStore))).Methods("GET")
	s.Router.Handle("/api/students/{id:[0-9]+}", s.Protected(handleDeleteOwned(s.StudentsStore.Delete))).Methods("DELETE")

	s.Router.Handle("/api/calendar/add", s.Protected(handleAddEvent(s.CalendarStore, log))).Methods("POST")
	s.Router.Handle("/api/calendar/{userId:[0-9]+}", s.Protected(handleListEvents(s.CalendarStore))).Methods("GET")
	s.Router.Handle("/api/calendar/{id:[0-9]+}", s.Protected(handleDeleteOwned(s.CalendarStore.Delete))).Methods("DELETE")

	s.Router.Handle("/api/questions/save", s.Protected(handleSaveQuestions(s.QuestionsStore, log))).Methods("POST")
	s.Router.Handle("/api/questions/generate", s.Protected(handleGenerateQuestions(s.QuestionsStore, s.AI, log))).Methods("POST")
	s.Router.Handle("/api/questions/{userId:[0-9]+}", s.Protected(handleListQuestions(s.QuestionsStore))).Methods("GET")
}

// ownerUserID reads {userId} and checks the caller may see it.
func ownerUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := pathInt64(r, "userId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, msgInvalidBody)
		return 0, false
	}
	return userID, allowUser(w, r, userID)
}

func handleListStudents(students store.StudentsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ownerUserID(w, r)
		if !ok {
			return
		}
		list, err := students.List(userID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		if list == nil {
			list = []model.Student{}
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleAddStudent(students store.StudentsStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StudentRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if !allowUser(w, r, req.UserID) {
			return
		}
		if msg := validationMessage(req); msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}

		if err := students.Add(&model.Student{UserID: req.UserID, Name: req.Name, Classe: req.Classe}); err != nil {
			log.Error("failed to add student", "user_id", req.UserID, "error", err)
			respondWithError(w, http.StatusInternalServerError, msgStudentAddFailed)
			return
		}
		respondSuccess(w)
	}
}

// ownerFilter is the user id deletes are restricted to; administrators may
// remove any row.
func ownerFilter(id *identity.Identity) int64 {
	if id.IsAdmin {
		return store.AnyOwner
	}
	return id.UserID
}

func handleDeleteOwned(del func(id, userID int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt64(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		if err := del(id, ownerFilter(caller(r))); err != nil {
			if errors.Is(err, store.ErrNotOwned) {
				respondWithError(w, http.StatusNotFound, msgRecordNotFound)
				return
			}
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		respondSuccess(w)
	}
}

func handleListEvents(calendar store.CalendarStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ownerUserID(w, r)
		if !ok {
			return
		}
		events, err := calendar.List(userID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		if events == nil {
			events = []model.CalendarEvent{}
		}
		respondWithJSON(w, http.StatusOK, events)
	}
}

func handleAddEvent(calendar store.CalendarStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CalendarRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if !allowUser(w, r, req.UserID) {
			return
		}
		if msg := validationMessage(req); msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}

		event := &model.CalendarEvent{
			UserID:    req.UserID,
			Title:     req.Title,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			PlanID:    req.PlanID,
		}
		if err := calendar.Add(event); err != nil {
			log.Error("failed to add calendar event", "user_id", req.UserID, "error", err)
			respondWithError(w, http.StatusInternalServerError, msgCalendarAddFailed)
			return
		}
		respondSuccess(w)
	}
}

func handleListQuestions(questions store.QuestionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ownerUserID(w, r)
		if !ok {
			return
		}
		list, err := questions.List(userID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		if list == nil {
			list = []model.Question{}
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleSaveQuestions(questions store.QuestionsStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QuestionsRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if !allowUser(w, r, req.UserID) {
			return
		}

		q := &model.Question{UserID: req.UserID, Subject: req.Subject, Classe: req.Classe, Content: req.Content}
		if err := questions.Save(q); err != nil {
			log.Error("failed to save questions", "user_id", req.UserID, "error", err)
			respondWithError(w, http.StatusInternalServerError, msgQuestionSaveFailed)
			return
		}
		respondSuccess(w)
	}
}

func handleGenerateQuestions(questions store.QuestionsStore, gen ai.Generator, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GenerateQuestionsRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if msg := validationMessage(req); msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}
		if req.Count == 0 {
			req.Count = defaultQuestionCount
		}

		content, err := gen.GenerateText(r.Context(), ai.BuildQuestionsPrompt(req.Subject, req.Classe, req.Topic, req.Count))
		if err != nil {
			log.Error("question generation failed", "error", err)
			respondWithError(w, http.StatusBadGateway, msgAIFailed)
			return
		}

		userID := caller(r).UserID
		q := &model.Question{UserID: userID, Subject: req.Subject, Classe: req.Classe, Content: content}
		if err := questions.Save(q); err != nil {
			log.Error("failed to save generated questions", "user_id", userID, "error", err)
			respondWithError(w, http.StatusInternalServerError, msgQuestionSaveFailed)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"content": content})
	}
}
