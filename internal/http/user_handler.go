package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"grafeio-data/internal/service"
)

type UsersHandler struct {
	svc    service.UserService
	logger *zap.Logger
}

func NewUsersHandler(svc service.UserService, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{svc: svc, logger: logger}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to list users"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": users}))
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var payload struct {
		Role     string `json:"role"`
		IsActive bool   `json:"is_active"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	if err := h.svc.UpdateUser(r.Context(), actorID(r), id, payload.Role, payload.IsActive); err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"user_id": id}))
}

// RecordLogin stamps last_login_at / last_login_ip after the gateway has
// authenticated the session.
func (h *UsersHandler) RecordLogin(w http.ResponseWriter, r *http.Request, id string) {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.RemoteAddr
	}
	if err := h.svc.RecordLogin(r.Context(), id, ip); err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to record login"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"user_id": id}))
}
