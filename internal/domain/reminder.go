package domain

import "time"

// Reminder types.
const (
	ReminderHoliday = "ΕΟΡΤΗ"
	ReminderRequest = "ΑΙΤΗΜΑ"
	ReminderGeneral = "ΓΕΝΙΚΗ"
)

// Reminder is a dated note, optionally linked to a request (reminders table).
type Reminder struct {
	ReminderID       string    `json:"reminder_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	ReminderDate     time.Time `json:"reminder_date"`
	ReminderType     string    `json:"reminder_type"`
	RelatedRequestID string    `json:"related_request_id,omitempty"`
	IsCompleted      bool      `json:"is_completed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	CreatedBy        string    `json:"created_by,omitempty"`
}

// ValidReminderType reports whether s is one of the three canonical types.
func ValidReminderType(s string) bool {
	return s == ReminderHoliday || s == ReminderRequest || s == ReminderGeneral
}

// DueToday reports whether the reminder falls on the calendar day of now.
func (r *Reminder) DueToday(now time.Time) bool {
	y1, m1, d1 := r.ReminderDate.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
