package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-contacts-api/internal/application/contact"
	"github.com/go-contacts-api/internal/domain"
	"github.com/go-contacts-api/internal/pkg/validate"
	"github.com/go-contacts-api/internal/transport/http/middleware"
)

// ContactHandler handles contact CRUD, search and birthday endpoints.
// Every operation is scoped to the authenticated user.
type ContactHandler struct {
	svc contact.Service
}

func NewContactHandler(svc contact.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	req, ok := decodeContactRequest(w, r)
	if !ok {
		return
	}
	c, err := h.svc.Create(r.Context(), u.ID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	contacts, err := h.svc.List(r.Context(), u.ID, skip, limit)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, contactID, ok := contactScope(w, r)
	if !ok {
		return
	}
	c, err := h.svc.Get(r.Context(), u.ID, contactID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, contactID, ok := contactScope(w, r)
	if !ok {
		return
	}
	req, ok := decodeContactRequest(w, r)
	if !ok {
		return
	}
	c, err := h.svc.Update(r.Context(), u.ID, contactID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, contactID, ok := contactScope(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), u.ID, contactID); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "contact deleted"})
}

func (h *ContactHandler) Search(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	q := r.URL.Query()
	contacts, err := h.svc.Search(r.Context(), u.ID, domain.ContactFilter{
		FirstName: q.Get("first_name"),
		LastName:  q.Get("last_name"),
		Email:     q.Get("email"),
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) UpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	contacts, err := h.svc.UpcomingBirthdays(r.Context(), u.ID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func contactScope(w http.ResponseWriter, r *http.Request) (*domain.CachedUser, int64, bool) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, 0, false
	}
	contactID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return nil, 0, false
	}
	return u, contactID, true
}

func decodeContactRequest(w http.ResponseWriter, r *http.Request) (domain.CreateContactRequest, bool) {
	var req domain.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return req, false
	}
	return req, true
}
