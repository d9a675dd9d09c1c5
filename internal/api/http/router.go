package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authmw "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/exam"
	"github.com/mind-engage/mindengage-quiz/internal/rbac"
	"github.com/mind-engage/mindengage-quiz/internal/users"
)

type Deps struct {
	Exams          *exam.Service
	Users          *users.Service
	Auth           *authmw.AuthService
	RoleFor        func(email string) string
	CORSOrigins    []string
	RequestTimeout time.Duration
}

func NewRouter(d Deps) http.Handler {
	if d.RoleFor == nil {
		d.RoleFor = func(string) string { return "student" }
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(d.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/welcome", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusOK, "API successfully called")
	})
	r.Post("/api/signup", SignupHandler(d.Users))
	r.Post("/api/login", LoginHandler(d.Users, d.Auth, d.RoleFor))

	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(d.Auth))

		pr.With(rbac.Require("user:edit_phone")).
			Put("/api/edit/phonenumber", EditPhoneHandler(d.Users))

		pr.With(rbac.Require("test:view")).Get("/tests", ListTestsHandler(d.Exams))
		pr.With(rbac.Require("test:view")).Get("/tests/{testID}", GetTestHandler(d.Exams))
		pr.With(rbac.Require("test:create")).Post("/tests", PublishTestHandler(d.Exams))

		pr.With(rbac.Require("test:submit")).Post("/submit-test", SubmitTestHandler(d.Exams))
		pr.With(rbac.RequireAny("submission:view-own", "submission:view-all")).Get("/submissions", ListSubmissionsHandler(d.Exams))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	return r
}
