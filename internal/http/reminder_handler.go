package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"grafeio-data/internal/domain"
	"grafeio-data/internal/repository"
	"grafeio-data/internal/service"
)

type RemindersHandler struct {
	svc    service.ReminderService
	logger *zap.Logger
}

func NewRemindersHandler(svc service.ReminderService, logger *zap.Logger) *RemindersHandler {
	return &RemindersHandler{svc: svc, logger: logger}
}

func (h *RemindersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	buckets, err := h.svc.ListReminders(r.Context(), repository.ReminderFilters{
		Type:     q.Get("type"),
		OnlyOpen: q.Get("only_open") == "true",
		DateFrom: parseDate(q.Get("date_from")),
		DateTo:   parseDate(q.Get("date_to")),
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to list reminders"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(buckets))
}

func (h *RemindersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rem domain.Reminder
	if err := readBodyJSON(r, 1<<20, &rem); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	id, err := h.svc.CreateReminder(r.Context(), actorID(r), &rem)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"reminder_id": id}))
}

func (h *RemindersHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var rem domain.Reminder
	if err := readBodyJSON(r, 1<<20, &rem); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	if err := h.svc.UpdateReminder(r.Context(), id, &rem); err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"reminder_id": id}))
}

func (h *RemindersHandler) Toggle(w http.ResponseWriter, r *http.Request, id string) {
	var payload struct {
		IsCompleted bool `json:"is_completed"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	if err := h.svc.ToggleReminder(r.Context(), id, payload.IsCompleted); err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to toggle reminder"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"reminder_id": id, "is_completed": payload.IsCompleted}))
}

func (h *RemindersHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.DeleteReminder(r.Context(), id); err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to delete reminder"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"reminder_id": id}))
}

// SeedHolidays fills in the holiday reminders for one year, defaulting to
// the current one.
func (h *RemindersHandler) SeedHolidays(w http.ResponseWriter, r *http.Request) {
	year := parseInt(r.URL.Query().Get("year"), time.Now().Year())
	created, err := h.svc.SeedHolidayReminders(r.Context(), actorID(r), year)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"year": year, "created": created}))
}

func (h *RemindersHandler) SeedOverdue(w http.ResponseWriter, r *http.Request) {
	created, err := h.svc.SeedOverdueRequestReminders(r.Context(), actorID(r))
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to seed overdue request reminders"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"created": created}))
}
