package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/orienta/internal/evidence"
	"github.com/spigell/orienta/internal/logger"
	"github.com/spigell/orienta/internal/results"
	"github.com/spigell/orienta/internal/session"
)

const maxBodyBytes = 1 << 16

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

type answerRequest struct {
	RequestID  string `json:"requestId" validate:"required,max=128"`
	QuestionID string `json:"questionId" validate:"max=128"`
	Answer     string `json:"answer" validate:"required,max=2000"`
	Edit       bool   `json:"edit"`
}

type sessionView struct {
	ID              string                   `json:"id"`
	State           session.State            `json:"state"`
	CurrentIndex    int                      `json:"currentIndex"`
	TotalQuestions  int                      `json:"totalQuestions"`
	Question        *session.Question        `json:"question,omitempty"`
	Answers         []session.AnswerRecord   `json:"answers"`
	Taxonomy        session.Taxonomy         `json:"taxonomy"`
	TopDomains      []evidence.Ranked        `json:"topDomains,omitempty"`
	Recommendations []results.Recommendation `json:"recommendations,omitempty"`
}

type resultsView struct {
	SessionID       string                   `json:"sessionId"`
	Recommendations []results.Recommendation `json:"recommendations"`
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerOf(r)
	if err != nil {
		writeError(w, err, nil)
		return
	}

	resp, err := s.svc.Start(r.Context(), owner)
	if err != nil {
		s.fail(w, r, "start session", err)
		return
	}

	status := http.StatusCreated
	if resp.Resumed {
		status = http.StatusOK
	}
	writeJSON(w, status, resp)
}

func (s *Server) submitAnswer(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerOf(r)
	if err != nil {
		writeError(w, err, nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid json", session.ErrInvalidArgument), nil)
		return
	}
	if req.RequestID == "" {
		req.RequestID = strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	}
	if err := getValidator().Struct(req); err != nil {
		writeError(w, fmt.Errorf("%w: validation failed", session.ErrInvalidArgument), validationDetails(err))
		return
	}

	resp, err := s.svc.SubmitAnswer(r.Context(), session.AnswerRequest{
		SessionID:  chi.URLParam(r, "id"),
		OwnerID:    owner,
		RequestID:  req.RequestID,
		QuestionID: req.QuestionID,
		AnswerText: req.Answer,
		Edit:       req.Edit,
	})
	if err != nil {
		s.fail(w, r, "submit answer", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerOf(r)
	if err != nil {
		writeError(w, err, nil)
		return
	}

	sess, err := s.svc.State(r.Context(), chi.URLParam(r, "id"), owner)
	if err != nil {
		s.fail(w, r, "get session", err)
		return
	}

	view := sessionView{
		ID:              sess.ID,
		State:           sess.State,
		CurrentIndex:    sess.CurrentIndex,
		TotalQuestions:  s.svc.TotalQuestions(),
		Question:        sess.CurrentQuestion(),
		Answers:         sess.Answers,
		Taxonomy:        session.Taxonomy{Area: sess.Area, SubArea: sess.SubArea, Role: sess.Role},
		Recommendations: sess.Recommendations,
	}
	if sess.State == session.StateCompleted {
		view.TopDomains = sess.Evidence.Top(3)
	}
	if view.Answers == nil {
		view.Answers = []session.AnswerRecord{}
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) finalize(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerOf(r)
	if err != nil {
		writeError(w, err, nil)
		return
	}

	id := chi.URLParam(r, "id")
	recs, err := s.svc.Finalize(r.Context(), id, owner)
	if err != nil {
		s.fail(w, r, "finalize session", err)
		return
	}

	writeJSON(w, http.StatusOK, resultsView{SessionID: id, Recommendations: recs})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if status, _ := classify(err); status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", zap.Error(err),
			zap.String(logger.FieldSession, chi.URLParam(r, "id")),
			zap.String(logger.FieldOwner, r.Header.Get(OwnerHeader)),
		)
	}
	writeError(w, err, nil)
}

func ownerOf(r *http.Request) (string, error) {
	owner := strings.TrimSpace(r.Header.Get(OwnerHeader))
	if owner == "" {
		return "", fmt.Errorf("%w: %s header is required", session.ErrInvalidArgument, OwnerHeader)
	}
	return owner, nil
}

func validationDetails(err error) map[string]string {
	details := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details[strings.ToLower(fe.Field())] = fe.Tag()
		}
	}
	return details
}
