package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"grafeio-data/internal/domain"
	"grafeio-data/internal/repository"
)

type fakeRemindersRepo struct {
	reminders    []*domain.Reminder
	holidayDates map[string]bool
	openRequest  map[string]bool
	created      []*domain.Reminder
}

func (f *fakeRemindersRepo) GetReminder(ctx context.Context, id string) (*domain.Reminder, error) {
	for _, r := range f.reminders {
		if r.ReminderID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("reminder not found")
}

func (f *fakeRemindersRepo) ListReminders(ctx context.Context, filters repository.ReminderFilters) ([]*domain.Reminder, error) {
	return f.reminders, nil
}

func (f *fakeRemindersRepo) HolidayDatesForYear(ctx context.Context, year int) (map[string]bool, error) {
	if f.holidayDates == nil {
		return map[string]bool{}, nil
	}
	return f.holidayDates, nil
}

func (f *fakeRemindersRepo) OpenRequestReminderIDs(ctx context.Context) (map[string]bool, error) {
	if f.openRequest == nil {
		return map[string]bool{}, nil
	}
	return f.openRequest, nil
}

func (f *fakeRemindersRepo) CreateReminder(ctx context.Context, rem *domain.Reminder) (string, error) {
	id := fmt.Sprintf("rem-%d", len(f.created)+1)
	rem.ReminderID = id
	f.created = append(f.created, rem)
	return id, nil
}

func (f *fakeRemindersRepo) UpdateReminder(ctx context.Context, id string, rem *domain.Reminder) error {
	return nil
}

func (f *fakeRemindersRepo) SetReminderCompleted(ctx context.Context, id string, completed bool) error {
	return nil
}

func (f *fakeRemindersRepo) DeleteReminder(ctx context.Context, id string) error { return nil }

func newReminderServiceAt(reminders *fakeRemindersRepo, requests *fakeRequestsRepo, now time.Time) *reminderService {
	return &reminderService{
		reminders: reminders,
		requests:  requests,
		logger:    zap.NewNop(),
		now:       func() time.Time { return now },
	}
}

func TestListReminders_Buckets(t *testing.T) {
	now := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	reminders := &fakeRemindersRepo{reminders: []*domain.Reminder{
		{ReminderID: "a", Title: "Σήμερα", ReminderDate: time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)},
		{ReminderID: "b", Title: "Αύριο", ReminderDate: time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)},
		{ReminderID: "c", Title: "Έγινε", ReminderDate: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), IsCompleted: true},
	}}

	svc := newReminderServiceAt(reminders, &fakeRequestsRepo{}, now)
	buckets, err := svc.ListReminders(context.Background(), repository.ReminderFilters{})

	require.NoError(t, err)
	require.Len(t, buckets.Today, 1)
	require.Len(t, buckets.Upcoming, 1)
	require.Len(t, buckets.Completed, 1)
	assert.Equal(t, "a", buckets.Today[0].ReminderID)
	assert.Equal(t, "b", buckets.Upcoming[0].ReminderID)
	assert.Equal(t, "c", buckets.Completed[0].ReminderID)
}

func TestListReminders_EnrichesLinkedRequest(t *testing.T) {
	now := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	reminders := &fakeRemindersRepo{reminders: []*domain.Reminder{
		{ReminderID: "a", ReminderType: domain.ReminderRequest, RelatedRequestID: "r1", ReminderDate: now},
		{ReminderID: "b", ReminderType: domain.ReminderRequest, RelatedRequestID: "gone", ReminderDate: now},
	}}
	requests := &fakeRequestsRepo{requests: map[string]*domain.Request{
		"r1": {RequestID: "r1", RequestType: "ΜΕΤΑΘΕΣΗ", Status: domain.RequestPending},
	}}

	svc := newReminderServiceAt(reminders, requests, now)
	buckets, err := svc.ListReminders(context.Background(), repository.ReminderFilters{})

	require.NoError(t, err)
	require.Len(t, buckets.Today, 2)
	assert.Equal(t, "ΜΕΤΑΘΕΣΗ", buckets.Today[0].RequestType)
	assert.Equal(t, domain.RequestPending, buckets.Today[0].RequestStatus)
	// dangling link keeps the reminder, drops the enrichment
	assert.Empty(t, buckets.Today[1].RequestType)
}

func TestSeedHolidayReminders_SkipsExistingDates(t *testing.T) {
	reminders := &fakeRemindersRepo{holidayDates: map[string]bool{
		"2025-01-01": true,
		"2025-01-06": true,
	}}

	svc := newReminderServiceAt(reminders, &fakeRequestsRepo{}, time.Now())
	created, err := svc.SeedHolidayReminders(context.Background(), "u1", 2025)

	require.NoError(t, err)
	assert.Equal(t, 11, created, "13 holidays in 2025, 2 already seeded")
	for _, rem := range reminders.created {
		assert.Equal(t, domain.ReminderHoliday, rem.ReminderType)
		assert.Equal(t, "u1", rem.CreatedBy)
		assert.NotEqual(t, "2025-01-01", rem.ReminderDate.Format("2006-01-02"))
	}
}

func TestSeedHolidayReminders_UnknownYear(t *testing.T) {
	svc := newReminderServiceAt(&fakeRemindersRepo{}, &fakeRequestsRepo{}, time.Now())
	_, err := svc.SeedHolidayReminders(context.Background(), "u1", 1999)
	assert.Error(t, err)
}

func TestSeedOverdueRequestReminders_SkipsCovered(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	oldSend := now.AddDate(0, 0, -40)
	olderSend := now.AddDate(0, 0, -60)
	freshSend := now.AddDate(0, 0, -5)

	requests := &fakeRequestsRepo{requests: map[string]*domain.Request{
		"r1": {RequestID: "r1", RequestType: "ΜΕΤΑΘΕΣΗ", Status: domain.RequestPending, SendDate: &oldSend},
		"r2": {RequestID: "r2", RequestType: "ΒΕΒΑΙΩΣΗ", Status: domain.RequestPending, SendDate: &olderSend},
		"r3": {RequestID: "r3", RequestType: "ΑΛΛΟ", Status: domain.RequestPending, SendDate: &freshSend},
	}}
	reminders := &fakeRemindersRepo{openRequest: map[string]bool{"r2": true}}

	svc := newReminderServiceAt(reminders, requests, now)
	created, err := svc.SeedOverdueRequestReminders(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, 1, created, "r2 already covered, r3 not overdue")

	require.Len(t, reminders.created, 1)
	rem := reminders.created[0]
	assert.Equal(t, "r1", rem.RelatedRequestID)
	assert.Equal(t, domain.ReminderRequest, rem.ReminderType)
	assert.Equal(t, "Εκκρεμές αίτημα - ΜΕΤΑΘΕΣΗ", rem.Title)
	assert.Contains(t, rem.Description, "40")
}

func TestCreateReminder_RejectsUnknownType(t *testing.T) {
	svc := newReminderServiceAt(&fakeRemindersRepo{}, &fakeRequestsRepo{}, time.Now())
	_, err := svc.CreateReminder(context.Background(), "u1", &domain.Reminder{
		Title:        "κάτι",
		ReminderType: "ΚΑΤΙ ΑΛΛΟ",
	})
	assert.Error(t, err)
}
