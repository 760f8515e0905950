package domain

import "time"

// Client is a renting customer. ReservationCount is cumulative: it is
// incremented once per created reservation and never decremented on
// cancellation, matching the back office's historical counter semantics.
type Client struct {
	ID               int64     `json:"id"`
	FirstName        string    `json:"prenom"`
	LastName         string    `json:"nom"`
	Email            string    `json:"email"`
	Phone            string    `json:"telephone"`
	LicenseNumber    string    `json:"numero_permis"`
	Address          string    `json:"adresse"`
	ReservationCount int64     `json:"nombre_reservations"`
	CreatedOn        time.Time `json:"created_on"`
	UpdatedOn        time.Time `json:"updated_on"`
}
