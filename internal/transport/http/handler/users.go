package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-contacts-api/internal/application/auth"
	"github.com/go-contacts-api/internal/application/user"
	"github.com/go-contacts-api/internal/domain"
	"github.com/go-contacts-api/internal/pkg/validate"
	"github.com/go-contacts-api/internal/transport/http/middleware"
)

const maxAvatarBytes = 10 << 20 // 10 MiB

// UserHandler handles registration, login, current-user and avatar endpoints.
type UserHandler struct {
	users user.Service
	auth  auth.Service
}

func NewUserHandler(users user.Service, authSvc auth.Service) *UserHandler {
	return &UserHandler{users: users, auth: authSvc}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	u, err := h.users.Register(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// Token handles login. It accepts either a JSON body or an OAuth2-style
// form submission with username/password fields.
func (h *UserHandler) Token(w http.ResponseWriter, r *http.Request) {
	username, pass, ok := loginCredentials(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "username and password required")
		return
	}
	token, err := h.auth.Login(r.Context(), username, pass)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenEnvelope{AccessToken: token, TokenType: "bearer"})
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field required")
		return
	}
	defer file.Close()

	url, err := h.users.UpdateAvatar(r.Context(), u.Username, header.Filename, file)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AvatarEnvelope{AvatarURL: url})
}

func loginCredentials(r *http.Request) (username, pass string, ok bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", "", false
		}
		username, pass = req.Username, req.Password
	} else {
		if err := r.ParseForm(); err != nil {
			return "", "", false
		}
		username, pass = r.PostFormValue("username"), r.PostFormValue("password")
	}
	return username, pass, username != "" && pass != ""
}
