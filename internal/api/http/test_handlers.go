package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	authmw "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/exam"
	"github.com/mind-engage/mindengage-quiz/internal/rbac"
)

type submitReq struct {
	UserID  string              `json:"userId"`
	TestID  string              `json:"testId"`
	Answers map[string][]string `json:"answers"`
}

type submitResp struct {
	UserID string  `json:"userId"`
	TestID string  `json:"testId"`
	Score  float64 `json:"score"`
}

// GET /tests
func ListTestsHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListTests(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /tests/{testID}
// Students never see isCorrect or correctAnswers.
func GetTestHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := svc.GetTest(r.Context(), chi.URLParam(r, "testID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

// POST /tests
func PublishTestHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t exam.Test
		if !decodeJSON(w, r, &t) {
			return
		}
		if err := svc.PublishTest(r.Context(), t); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, t.Summary())
	}
}

// POST /submit-test
// userId defaults to the token subject; only admins may submit for someone else.
func SubmitTestHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitReq
		if !decodeJSON(w, r, &req) {
			return
		}
		sub := authmw.SubjectFromContext(r.Context())
		userID := strings.TrimSpace(req.UserID)
		if userID == "" {
			userID = sub
		}
		if userID != sub && rbac.RoleFromContext(r.Context()) != "admin" {
			writeMessage(w, http.StatusForbidden, "cannot submit for another user")
			return
		}
		testID := strings.TrimSpace(req.TestID)
		if testID == "" {
			writeMessage(w, http.StatusBadRequest, "testId required")
			return
		}

		s, err := svc.SubmitTest(r.Context(), userID, testID, req.Answers)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, submitResp{UserID: s.UserID, TestID: s.TestID, Score: s.Score})
	}
}

// GET /submissions?userId=
// Callers see their own submissions. Holders of submission:view-all may
// pass userId to pick a user, or omit it to list everyone's.
func ListSubmissionsHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authmw.SubjectFromContext(r.Context())
		if rbac.Can(r.Context(), "submission:view-all") {
			userID = strings.TrimSpace(r.URL.Query().Get("userId"))
		}
		list, err := svc.ListSubmissions(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if list == nil {
			list = []exam.Submission{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}
