package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable     VehicleStatus = "available"
	VehicleStatusReserved      VehicleStatus = "reserved"
	VehicleStatusRented        VehicleStatus = "rented"
	VehicleStatusInMaintenance VehicleStatus = "in_maintenance"
	VehicleStatusOutOfService  VehicleStatus = "out_of_service"
)

// Vehicle status is owned by the booking and maintenance services; direct
// edits while a reservation or open maintenance holds the vehicle are
// rejected at the service layer.
type Vehicle struct {
	ID             int64         `json:"id"`
	Plate          string        `json:"immatriculation"`
	Make           string        `json:"marque"`
	Model          string        `json:"modele"`
	Year           int           `json:"annee"`
	Mileage        int64         `json:"kilometrage"`
	FuelType       string        `json:"carburant"`
	DailyRateCents int64         `json:"tarif_journalier_cents"`
	AgencyID       *int64        `json:"agence_id,omitempty"`
	Status         VehicleStatus `json:"statut"`
	CreatedOn      time.Time     `json:"created_on"`
	UpdatedOn      time.Time     `json:"updated_on"`
}
