package domain

import "time"

// Agency is a physical rental branch. Reservations reference a pickup and
// a return agency, possibly different.
type Agency struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nom"`
	City      string    `json:"ville"`
	Address   string    `json:"adresse"`
	Phone     string    `json:"telephone"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Location is the human-readable pickup/return string copied onto
// contracts at generation time.
func (a *Agency) Location() string {
	if a.City == "" {
		return a.Name
	}
	return a.Name + " - " + a.City
}
