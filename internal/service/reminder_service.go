package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"grafeio-data/internal/domain"
	"grafeio-data/internal/reference"
	"grafeio-data/internal/repository"
	"grafeio-data/internal/store"
)

// ReminderService reminders plus the two seeding routines: the yearly
// holiday calendar and overdue pending requests.
type ReminderService interface {
	ListReminders(ctx context.Context, filters repository.ReminderFilters) (*ReminderBuckets, error)
	CreateReminder(ctx context.Context, actorID string, rem *domain.Reminder) (string, error)
	UpdateReminder(ctx context.Context, reminderID string, rem *domain.Reminder) error
	ToggleReminder(ctx context.Context, reminderID string, completed bool) error
	DeleteReminder(ctx context.Context, reminderID string) error
	SeedHolidayReminders(ctx context.Context, actorID string, year int) (int, error)
	SeedOverdueRequestReminders(ctx context.Context, actorID string) (int, error)
}

// EnrichedReminder a reminder with its linked request resolved when the
// link is still valid; nothing is attached for a dangling link.
type EnrichedReminder struct {
	*domain.Reminder
	RequestType   string `json:"request_type,omitempty"`
	RequestStatus string `json:"request_status,omitempty"`
}

// ReminderBuckets today / upcoming / completed, each ordered by date.
type ReminderBuckets struct {
	Today     []*EnrichedReminder `json:"today"`
	Upcoming  []*EnrichedReminder `json:"upcoming"`
	Completed []*EnrichedReminder `json:"completed"`
}

type reminderService struct {
	reminders repository.RemindersRepository
	requests  repository.RequestsRepository
	kv        store.KV
	logger    *zap.Logger
	now       func() time.Time
}

func NewReminderService(
	reminders repository.RemindersRepository,
	requests repository.RequestsRepository,
	kv store.KV,
	logger *zap.Logger,
) ReminderService {
	return &reminderService{
		reminders: reminders,
		requests:  requests,
		kv:        kv,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *reminderService) ListReminders(ctx context.Context, filters repository.ReminderFilters) (*ReminderBuckets, error) {
	items, err := s.reminders.ListReminders(ctx, filters)
	if err != nil {
		s.logger.Error("list reminders failed", zap.Error(err))
		return nil, err
	}

	now := s.now()
	buckets := &ReminderBuckets{
		Today:     []*EnrichedReminder{},
		Upcoming:  []*EnrichedReminder{},
		Completed: []*EnrichedReminder{},
	}
	for _, rem := range items {
		e := s.enrichReminder(ctx, rem)
		switch {
		case rem.IsCompleted:
			buckets.Completed = append(buckets.Completed, e)
		case rem.DueToday(now):
			buckets.Today = append(buckets.Today, e)
		default:
			buckets.Upcoming = append(buckets.Upcoming, e)
		}
	}
	return buckets, nil
}

// enrichReminder attaches the linked request's type and status. Lookup
// failures only drop the enrichment, never the reminder.
func (s *reminderService) enrichReminder(ctx context.Context, rem *domain.Reminder) *EnrichedReminder {
	e := &EnrichedReminder{Reminder: rem}
	if rem.RelatedRequestID == "" {
		return e
	}
	req, err := s.requests.GetRequest(ctx, rem.RelatedRequestID)
	if err != nil {
		return e
	}
	e.RequestType = req.RequestType
	e.RequestStatus = req.Status
	return e
}

func (s *reminderService) CreateReminder(ctx context.Context, actorID string, rem *domain.Reminder) (string, error) {
	if rem == nil {
		return "", fmt.Errorf("reminder is required")
	}
	if rem.ReminderType != "" && !domain.ValidReminderType(rem.ReminderType) {
		return "", fmt.Errorf("invalid reminder type: %q", rem.ReminderType)
	}
	rem.CreatedBy = actorID

	id, err := s.reminders.CreateReminder(ctx, rem)
	if err != nil {
		s.logger.Error("create reminder failed", zap.Error(err))
		return "", err
	}
	invalidateDashboard(ctx, s.kv, s.logger)
	return id, nil
}

func (s *reminderService) UpdateReminder(ctx context.Context, reminderID string, rem *domain.Reminder) error {
	if rem == nil {
		return fmt.Errorf("reminder is required")
	}
	if rem.ReminderType != "" && !domain.ValidReminderType(rem.ReminderType) {
		return fmt.Errorf("invalid reminder type: %q", rem.ReminderType)
	}
	if err := s.reminders.UpdateReminder(ctx, reminderID, rem); err != nil {
		s.logger.Error("update reminder failed", zap.String("reminder_id", reminderID), zap.Error(err))
		return err
	}
	invalidateDashboard(ctx, s.kv, s.logger)
	return nil
}

func (s *reminderService) ToggleReminder(ctx context.Context, reminderID string, completed bool) error {
	if err := s.reminders.SetReminderCompleted(ctx, reminderID, completed); err != nil {
		return err
	}
	invalidateDashboard(ctx, s.kv, s.logger)
	return nil
}

func (s *reminderService) DeleteReminder(ctx context.Context, reminderID string) error {
	if err := s.reminders.DeleteReminder(ctx, reminderID); err != nil {
		return err
	}
	invalidateDashboard(ctx, s.kv, s.logger)
	return nil
}

// SeedHolidayReminders inserts a ΕΟΡΤΗ reminder for every holiday of the
// year that does not already carry one. Returns the number created.
func (s *reminderService) SeedHolidayReminders(ctx context.Context, actorID string, year int) (int, error) {
	holidays := reference.HolidaysForYear(year)
	if holidays == nil {
		return 0, fmt.Errorf("no holiday calendar for year %d", year)
	}

	existing, err := s.reminders.HolidayDatesForYear(ctx, year)
	if err != nil {
		s.logger.Error("holiday seed lookup failed", zap.Error(err))
		return 0, err
	}

	created := 0
	for _, h := range holidays {
		if existing[h.Date.Format("2006-01-02")] {
			continue
		}
		_, err := s.reminders.CreateReminder(ctx, &domain.Reminder{
			Title:        h.Name,
			Description:  fmt.Sprintf("Αργία: %s", h.Name),
			ReminderDate: h.Date,
			ReminderType: domain.ReminderHoliday,
			CreatedBy:    actorID,
		})
		if err != nil {
			s.logger.Error("holiday seed insert failed", zap.String("holiday", h.Name), zap.Error(err))
			return created, err
		}
		created++
	}

	if created > 0 {
		invalidateDashboard(ctx, s.kv, s.logger)
	}
	s.logger.Info("holiday reminders seeded", zap.Int("year", year), zap.Int("created", created))
	return created, nil
}

// SeedOverdueRequestReminders creates an ΑΙΤΗΜΑ reminder for every overdue
// pending request that has no open one yet. Returns the number created.
func (s *reminderService) SeedOverdueRequestReminders(ctx context.Context, actorID string) (int, error) {
	now := s.now()
	cutoff := now.AddDate(0, 0, -domain.OverdueAfterDays)

	overdue, err := s.requests.ListOverduePending(ctx, cutoff)
	if err != nil {
		s.logger.Error("overdue seed request lookup failed", zap.Error(err))
		return 0, err
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	covered, err := s.reminders.OpenRequestReminderIDs(ctx)
	if err != nil {
		s.logger.Error("overdue seed reminder lookup failed", zap.Error(err))
		return 0, err
	}

	created := 0
	for _, req := range overdue {
		if covered[req.RequestID] {
			continue
		}
		days := int(now.Sub(*req.SendDate).Hours() / 24)
		_, err := s.reminders.CreateReminder(ctx, &domain.Reminder{
			Title:            fmt.Sprintf("Εκκρεμές αίτημα - %s", req.RequestType),
			Description:      fmt.Sprintf("Το αίτημα εκκρεμεί εδώ και %d ημέρες", days),
			ReminderDate:     now,
			ReminderType:     domain.ReminderRequest,
			RelatedRequestID: req.RequestID,
			CreatedBy:        actorID,
		})
		if err != nil {
			s.logger.Error("overdue seed insert failed", zap.String("request_id", req.RequestID), zap.Error(err))
			return created, err
		}
		created++
	}

	if created > 0 {
		invalidateDashboard(ctx, s.kv, s.logger)
	}
	s.logger.Info("overdue request reminders seeded", zap.Int("created", created))
	return created, nil
}
