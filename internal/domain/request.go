package domain

import (
	"fmt"
	"time"
)

// Request statuses (stored verbatim, Greek values are canonical).
const (
	RequestPending   = "ΕΚΚΡΕΜΕΙ"
	RequestCompleted = "ΟΛΟΚΛΗΡΩΘΗΚΕ"
	RequestRejected  = "ΑΠΟΡΡΙΦΘΗΚΕ"
)

// OverdueAfterDays is the age at which a pending request counts as overdue.
// The bound is closed: a request sent exactly this many days ago is overdue.
const OverdueAfterDays = 25

// UnknownRequester is attached to a request whose citizen or military
// reference no longer resolves.
const UnknownRequester = "Άγνωστος αιτών"

// Request is a service request filed by a citizen or a conscript
// (requests table). At most one of CitizenID / MilitaryPersonnelID is set;
// both empty means an anonymous walk-in.
type Request struct {
	RequestID           string     `json:"request_id"`
	CitizenID           string     `json:"citizen_id,omitempty"`
	MilitaryPersonnelID string     `json:"military_personnel_id,omitempty"`
	RequestType         string     `json:"request_type"`
	Description         string     `json:"description,omitempty"`
	Status              string     `json:"status"`
	SendDate            *time.Time `json:"send_date,omitempty"`
	CompletionDate      *time.Time `json:"completion_date,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	CreatedBy           string     `json:"created_by,omitempty"`
}

// ValidRequestStatus reports whether s is one of the three canonical statuses.
func ValidRequestStatus(s string) bool {
	return s == RequestPending || s == RequestCompleted || s == RequestRejected
}

// ValidateRequesterRefs rejects a request that points at both a citizen and
// a conscript. Neither set is allowed.
func (r *Request) ValidateRequesterRefs() error {
	if r.CitizenID != "" && r.MilitaryPersonnelID != "" {
		return fmt.Errorf("request cannot reference both a citizen and military personnel")
	}
	return nil
}

// ApplyStatus moves the request to status, maintaining completion_date:
// entering ΟΛΟΚΛΗΡΩΘΗΚΕ stamps it (now, unless already set), leaving it
// clears it.
func (r *Request) ApplyStatus(status string, now time.Time) error {
	if !ValidRequestStatus(status) {
		return fmt.Errorf("invalid request status: %q", status)
	}
	if status == RequestCompleted {
		if r.CompletionDate == nil {
			t := now
			r.CompletionDate = &t
		}
	} else {
		r.CompletionDate = nil
	}
	r.Status = status
	return nil
}

// OverdueAt reports whether the request is pending and its send date lies
// OverdueAfterDays or more before now.
func (r *Request) OverdueAt(now time.Time) bool {
	if r.Status != RequestPending || r.SendDate == nil {
		return false
	}
	cutoff := now.AddDate(0, 0, -OverdueAfterDays)
	return !r.SendDate.After(cutoff)
}
