package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"grafeio-data/internal/domain"
	"grafeio-data/internal/repository"
	"grafeio-data/internal/service"
)

type CitizensHandler struct {
	svc    service.CitizenService
	logger *zap.Logger
}

func NewCitizensHandler(svc service.CitizenService, logger *zap.Logger) *CitizensHandler {
	return &CitizensHandler{svc: svc, logger: logger}
}

func citizenFiltersFromQuery(r *http.Request) repository.CitizenFilters {
	q := r.URL.Query()
	return repository.CitizenFilters{
		Search:             q.Get("search"),
		Municipality:       q.Get("municipality"),
		ElectoralDistrict:  q.Get("electoral_district"),
		RecommendationFrom: q.Get("recommendation_from"),
		CreatedFrom:        parseDate(q.Get("created_from")),
		CreatedTo:          parseDate(q.Get("created_to")),
	}
}

func (h *CitizensHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.ListCitizens(r.Context(), service.ListCitizensRequest{
		Filters: citizenFiltersFromQuery(r),
		Page:    parseInt(r.URL.Query().Get("page"), 1),
		Size:    parseInt(r.URL.Query().Get("size"), 0),
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to list citizens"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *CitizensHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	citizen, err := h.svc.GetCitizen(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("citizen not found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(citizen))
}

func (h *CitizensHandler) Create(w http.ResponseWriter, r *http.Request) {
	var citizen domain.Citizen
	if err := readBodyJSON(r, 1<<20, &citizen); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	id, err := h.svc.CreateCitizen(r.Context(), actorID(r), &citizen)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"citizen_id": id}))
}

func (h *CitizensHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var citizen domain.Citizen
	if err := readBodyJSON(r, 1<<20, &citizen); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	if err := h.svc.UpdateCitizen(r.Context(), id, &citizen); err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"citizen_id": id}))
}

func (h *CitizensHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.DeleteCitizen(r.Context(), id); err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to delete citizen"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"citizen_id": id}))
}

// Export streams the filtered roster as an .xlsx workbook.
func (h *CitizensHandler) Export(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.ListCitizens(r.Context(), service.ListCitizensRequest{
		Filters: citizenFiltersFromQuery(r),
		Page:    1,
		Size:    exportPageSize,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to export citizens"))
		return
	}
	payload, err := GenerateCitizensExport(resp.Items)
	if err != nil {
		h.logger.Error("citizens export failed", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to export citizens"))
		return
	}
	writeXLSX(w, "citizens.xlsx", payload)
}
