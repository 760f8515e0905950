package domain

import "time"

type MaintenanceStatus string

const (
	MaintenanceStatusScheduled  MaintenanceStatus = "scheduled"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusDone       MaintenanceStatus = "done"
)

// Maintenance blocks bookings on its vehicle while Status != done.
// A nil ExpectedExit means the window is open-ended: it conflicts with any
// booking starting before its own end.
type Maintenance struct {
	ID           int64             `json:"id"`
	VehicleID    int64             `json:"vehicule_id"`
	Kind         string            `json:"type"`
	Description  string            `json:"description,omitempty"`
	EntryDate    time.Time         `json:"date_entree"`
	ExpectedExit *time.Time        `json:"date_sortie_prevue,omitempty"`
	CostCents    int64             `json:"cout_cents"`
	Status       MaintenanceStatus `json:"statut"`
	CreatedOn    time.Time         `json:"created_on"`
	UpdatedOn    time.Time         `json:"updated_on"`
}

// Blocking reports whether this record still occupies the vehicle.
func (m *Maintenance) Blocking() bool {
	return m.Status != MaintenanceStatusDone
}
