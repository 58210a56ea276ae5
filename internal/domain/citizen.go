package domain

import "time"

// Citizen is a constituent record kept by the office (citizens table).
type Citizen struct {
	CitizenID          string     `json:"citizen_id"`
	Surname            string     `json:"surname"`
	Name               string     `json:"name"`
	Patronymic         string     `json:"patronymic,omitempty"`
	RecommendationFrom string     `json:"recommendation_from,omitempty"`
	MobilePhone        string     `json:"mobile_phone,omitempty"`
	LandlinePhone      string     `json:"landline_phone,omitempty"`
	Email              string     `json:"email,omitempty"`
	Address            string     `json:"address,omitempty"`
	PostalCode         string     `json:"postal_code,omitempty"`
	Municipality       string     `json:"municipality,omitempty"`
	Area               string     `json:"area,omitempty"`
	ElectoralDistrict  string     `json:"electoral_district,omitempty"`
	LastContactDate    *time.Time `json:"last_contact_date,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	CreatedBy          string     `json:"created_by,omitempty"`
}

// FullName surname-first display form used across listings.
func (c *Citizen) FullName() string {
	if c.Surname == "" {
		return c.Name
	}
	if c.Name == "" {
		return c.Surname
	}
	return c.Surname + " " + c.Name
}
