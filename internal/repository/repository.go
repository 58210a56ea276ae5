package repository

import (
	"context"
	"time"

	"grafeio-data/internal/domain"
)

// CitizensRepository data access for citizen records.
// Strongly typed domain models, no map[string]any.
type CitizensRepository interface {
	GetCitizen(ctx context.Context, citizenID string) (*domain.Citizen, error)
	// GetCitizensByIDs batch point lookup used by request enrichment.
	// Missing IDs are simply absent from the result map.
	GetCitizensByIDs(ctx context.Context, ids []string) (map[string]*domain.Citizen, error)
	ListCitizens(ctx context.Context, filters CitizenFilters, page, size int) ([]*domain.Citizen, int, error)
	CreateCitizen(ctx context.Context, citizen *domain.Citizen) (string, error)
	UpdateCitizen(ctx context.Context, citizenID string, citizen *domain.Citizen) error
	DeleteCitizen(ctx context.Context, citizenID string) error
}

// MilitaryRepository data access for conscript records.
type MilitaryRepository interface {
	GetMilitary(ctx context.Context, militaryID string) (*domain.MilitaryPersonnel, error)
	GetMilitaryByIDs(ctx context.Context, ids []string) (map[string]*domain.MilitaryPersonnel, error)
	ListMilitary(ctx context.Context, filters MilitaryFilters, page, size int) ([]*domain.MilitaryPersonnel, int, error)
	CreateMilitary(ctx context.Context, m *domain.MilitaryPersonnel) (string, error)
	UpdateMilitary(ctx context.Context, militaryID string, m *domain.MilitaryPersonnel) error
	DeleteMilitary(ctx context.Context, militaryID string) error
}

// RequestsRepository data access for service requests.
type RequestsRepository interface {
	GetRequest(ctx context.Context, requestID string) (*domain.Request, error)
	ListRequests(ctx context.Context, filters RequestFilters, page, size int) ([]*domain.Request, int, error)
	// ListOverduePending returns pending requests with send_date on or before
	// cutoff, for the reminder engine. No pagination: the set is small.
	ListOverduePending(ctx context.Context, cutoff time.Time) ([]*domain.Request, error)
	CreateRequest(ctx context.Context, req *domain.Request) (string, error)
	UpdateRequest(ctx context.Context, requestID string, req *domain.Request) error
	DeleteRequest(ctx context.Context, requestID string) error
}

// RemindersRepository data access for reminders.
type RemindersRepository interface {
	GetReminder(ctx context.Context, reminderID string) (*domain.Reminder, error)
	ListReminders(ctx context.Context, filters ReminderFilters) ([]*domain.Reminder, error)
	// HolidayDatesForYear returns the dates that already carry a ΕΟΡΤΗ
	// reminder in the given year, so seeding can skip them.
	HolidayDatesForYear(ctx context.Context, year int) (map[string]bool, error)
	// OpenRequestReminderIDs returns the related_request_ids that already
	// have an uncompleted ΑΙΤΗΜΑ reminder.
	OpenRequestReminderIDs(ctx context.Context) (map[string]bool, error)
	CreateReminder(ctx context.Context, rem *domain.Reminder) (string, error)
	UpdateReminder(ctx context.Context, reminderID string, rem *domain.Reminder) error
	SetReminderCompleted(ctx context.Context, reminderID string, completed bool) error
	DeleteReminder(ctx context.Context, reminderID string) error
}

// UsersRepository data access for back-office user profiles.
type UsersRepository interface {
	GetUser(ctx context.Context, userID string) (*domain.UserProfile, error)
	ListUsers(ctx context.Context) ([]*domain.UserProfile, error)
	UpdateUser(ctx context.Context, userID string, role string, isActive bool) error
	RecordLogin(ctx context.Context, userID, ip string, at time.Time) error
}

// GroupCount one bucket of a grouped statistic.
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// StatsRepository aggregate queries backing the dashboard.
type StatsRepository interface {
	Totals(ctx context.Context) (Totals, error)
	CitizensByMunicipality(ctx context.Context) ([]GroupCount, error)
	CitizensByDistrict(ctx context.Context) ([]GroupCount, error)
	MilitaryByRank(ctx context.Context) ([]GroupCount, error)
	MilitaryByEsso(ctx context.Context) ([]GroupCount, error)
	RequestsByStatus(ctx context.Context) ([]GroupCount, error)
	// RecentActivity counts rows created on or after since (closed bound);
	// completed requests are counted by completion_date.
	RecentActivity(ctx context.Context, since time.Time) (Activity, error)
}

// Totals headline dashboard counters.
type Totals struct {
	Citizens        int `json:"citizens"`
	Military        int `json:"military"`
	Requests        int `json:"requests"`
	PendingRequests int `json:"pending_requests"`
	OpenReminders   int `json:"open_reminders"`
}

// Activity windowed deltas for the recent-activity panel.
type Activity struct {
	NewCitizens       int `json:"new_citizens"`
	NewMilitary       int `json:"new_military"`
	NewRequests       int `json:"new_requests"`
	CompletedRequests int `json:"completed_requests"`
}

// CitizenFilters citizen list query filters. Zero values are inactive;
// active filters are ANDed together.
type CitizenFilters struct {
	// Search matches surname, name, mobile_phone or email (ILIKE, OR-composed)
	Search string
	// Equality filters
	Municipality      string
	ElectoralDistrict string
	// RecommendationFrom substring match
	RecommendationFrom string
	// Inclusive created_at range
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// MilitaryFilters conscript list query filters.
type MilitaryFilters struct {
	// Search matches name, surname, rank or esso (ILIKE, OR-composed)
	Search string
	// Equality filters on the class parts
	EssoYear   string
	EssoLetter string
	// Rank substring match
	Rank string
}

// RequestFilters request list query filters.
type RequestFilters struct {
	// Search matches request_type or description (ILIKE, OR-composed)
	Search string
	// Status equality (ΕΚΚΡΕΜΕΙ / ΟΛΟΚΛΗΡΩΘΗΚΕ / ΑΠΟΡΡΙΦΘΗΚΕ)
	Status string
	// RequestType substring match
	RequestType string
	// Requester point filters
	CitizenID           string
	MilitaryPersonnelID string
	// Inclusive send_date range
	SendFrom *time.Time
	SendTo   *time.Time
}

// ReminderFilters reminder list query filters.
type ReminderFilters struct {
	Type     string
	OnlyOpen bool
	DateFrom *time.Time
	DateTo   *time.Time
}
