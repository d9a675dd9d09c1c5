package http

import (
	"net/http"

	authmw "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/users"
)

type signupReq struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	AccessToken string `json:"access_token,omitempty"`
}

// POST /api/signup
func SignupHandler(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupReq
		if !decodeJSON(w, r, &req) {
			return
		}
		if _, err := svc.Signup(r.Context(), req.Name, req.Email, req.Password, req.PhoneNumber); err != nil {
			writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "Signed up successfully")
	}
}

// POST /api/login
// roleFor decides the token role from the account email.
func LoginHandler(svc *users.Service, a *authmw.AuthService, roleFor func(email string) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if !decodeJSON(w, r, &req) {
			return
		}
		u, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}
		tok, err := a.IssueJWT(u.ID, roleFor(u.Email))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, loginResp{Success: true, Message: "Logged in successfully", AccessToken: tok})
	}
}

// PUT /api/edit/phonenumber
func EditPhoneHandler(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PhoneNumber string `json:"phone_number"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := svc.UpdatePhone(r.Context(), authmw.SubjectFromContext(r.Context()), req.PhoneNumber); err != nil {
			writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "Phone number changed / added successfully")
	}
}
