package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"grafeio-data/internal/domain"
	"grafeio-data/internal/repository"
	"grafeio-data/internal/service"
)

type RequestsHandler struct {
	svc    service.RequestService
	logger *zap.Logger
}

func NewRequestsHandler(svc service.RequestService, logger *zap.Logger) *RequestsHandler {
	return &RequestsHandler{svc: svc, logger: logger}
}

func (h *RequestsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.svc.ListRequests(r.Context(), service.ListRequestsRequest{
		Filters: repository.RequestFilters{
			Search:              q.Get("search"),
			Status:              q.Get("status"),
			RequestType:         q.Get("request_type"),
			CitizenID:           q.Get("citizen_id"),
			MilitaryPersonnelID: q.Get("military_personnel_id"),
			SendFrom:            parseDate(q.Get("send_from")),
			SendTo:              parseDate(q.Get("send_to")),
		},
		Page: parseInt(q.Get("page"), 1),
		Size: parseInt(q.Get("size"), 0),
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to list requests"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *RequestsHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	req, err := h.svc.GetRequest(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("request not found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(req))
}

func (h *RequestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.Request
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	id, err := h.svc.CreateRequest(r.Context(), actorID(r), &req)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"request_id": id}))
}

func (h *RequestsHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var req domain.Request
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	if err := h.svc.UpdateRequest(r.Context(), id, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"request_id": id}))
}

func (h *RequestsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.DeleteRequest(r.Context(), id); err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to delete request"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"request_id": id}))
}
