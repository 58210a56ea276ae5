package domain

import "time"

// MilitaryPersonnel is a conscript record (military_personnel table).
// Esso is derived from EssoYear + EssoLetter and kept materialized so the
// list query can filter on it directly.
type MilitaryPersonnel struct {
	MilitaryID  string     `json:"military_id"`
	Surname     string     `json:"surname"`
	Name        string     `json:"name"`
	Rank        string     `json:"rank,omitempty"`
	ServiceUnit string     `json:"service_unit,omitempty"`
	Wish        string     `json:"wish,omitempty"`
	SendDate    *time.Time `json:"send_date,omitempty"`
	Comments    string     `json:"comments,omitempty"`
	// RegistryNumber is the army registry number (στρατιωτικός αριθμός).
	RegistryNumber string    `json:"military_personnel_id,omitempty"`
	Esso           string    `json:"esso,omitempty"`
	EssoYear       string    `json:"esso_year,omitempty"`
	EssoLetter     string    `json:"esso_letter,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	CreatedBy      string    `json:"created_by,omitempty"`
}

// ComposeEsso builds the ESSO class designation from its parts: the year
// directly concatenated with the letter ("2025Β"). Either part missing
// yields the empty string.
func ComposeEsso(year, letter string) string {
	if year == "" || letter == "" {
		return ""
	}
	return year + letter
}

// NormalizeEsso recomputes the materialized Esso field from the year and
// letter parts. Call after any mutation of EssoYear/EssoLetter.
func (m *MilitaryPersonnel) NormalizeEsso() {
	m.Esso = ComposeEsso(m.EssoYear, m.EssoLetter)
}

// DisplayName rank-prefixed form used when a request is enriched with its
// requester ("rank surname name").
func (m *MilitaryPersonnel) DisplayName() string {
	name := m.Surname + " " + m.Name
	if m.Rank != "" {
		return m.Rank + " " + name
	}
	return name
}
