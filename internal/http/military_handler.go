package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"grafeio-data/internal/domain"
	"grafeio-data/internal/repository"
	"grafeio-data/internal/service"
)

type MilitaryHandler struct {
	svc    service.MilitaryService
	logger *zap.Logger
}

func NewMilitaryHandler(svc service.MilitaryService, logger *zap.Logger) *MilitaryHandler {
	return &MilitaryHandler{svc: svc, logger: logger}
}

func militaryFiltersFromQuery(r *http.Request) repository.MilitaryFilters {
	q := r.URL.Query()
	return repository.MilitaryFilters{
		Search:     q.Get("search"),
		EssoYear:   q.Get("esso_year"),
		EssoLetter: q.Get("esso_letter"),
		Rank:       q.Get("rank"),
	}
}

func (h *MilitaryHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.ListMilitary(r.Context(), service.ListMilitaryRequest{
		Filters: militaryFiltersFromQuery(r),
		Page:    parseInt(r.URL.Query().Get("page"), 1),
		Size:    parseInt(r.URL.Query().Get("size"), 0),
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to list military personnel"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *MilitaryHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	m, err := h.svc.GetMilitary(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("military personnel not found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(m))
}

func (h *MilitaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var m domain.MilitaryPersonnel
	if err := readBodyJSON(r, 1<<20, &m); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	id, err := h.svc.CreateMilitary(r.Context(), actorID(r), &m)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"military_id": id}))
}

func (h *MilitaryHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var m domain.MilitaryPersonnel
	if err := readBodyJSON(r, 1<<20, &m); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	if err := h.svc.UpdateMilitary(r.Context(), id, &m); err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"military_id": id}))
}

func (h *MilitaryHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.DeleteMilitary(r.Context(), id); err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to delete military personnel"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"military_id": id}))
}

func (h *MilitaryHandler) Export(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.ListMilitary(r.Context(), service.ListMilitaryRequest{
		Filters: militaryFiltersFromQuery(r),
		Page:    1,
		Size:    exportPageSize,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to export military personnel"))
		return
	}
	payload, err := GenerateMilitaryExport(resp.Items)
	if err != nil {
		h.logger.Error("military export failed", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to export military personnel"))
		return
	}
	writeXLSX(w, "military_personnel.xlsx", payload)
}
