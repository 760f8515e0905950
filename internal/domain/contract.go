package domain

import "time"

type ContractStatus string

const (
	ContractStatusToSign     ContractStatus = "to_sign"
	ContractStatusSigned     ContractStatus = "signed"
	ContractStatusInProgress ContractStatus = "in_progress"
	ContractStatusCompleted  ContractStatus = "completed"
	ContractStatusCancelled  ContractStatus = "cancelled"
)

// Contract is the binding rental document. It may originate from a quote
// (QuoteID set), a reservation (ReservationID set) or direct creation.
// Pricing fields are copied from the origin exactly once at conversion
// time and do not stay synchronized afterwards.
type Contract struct {
	ID               int64          `json:"id"`
	Number           string         `json:"numero"`
	QuoteID          *int64         `json:"devis_id,omitempty"`
	ReservationID    *int64         `json:"reservation_id,omitempty"`
	ClientID         int64          `json:"client_id"`
	VehicleID        int64          `json:"vehicule_id"`
	StartDate        time.Time      `json:"date_debut"`
	EndDate          time.Time      `json:"date_fin"`
	DailyRateCents   int64          `json:"tarif_journalier_cents"`
	TotalCents       int64          `json:"montant_total_cents"`
	DepositCents     int64          `json:"caution_cents"`
	DownPaymentCents int64          `json:"acompte_cents"`
	BalanceDueCents  int64          `json:"reste_a_payer_cents"`
	PickupLocation   string         `json:"lieu_retrait"`
	ReturnLocation   string         `json:"lieu_retour"`
	OdometerOut      *int64         `json:"km_depart,omitempty"`
	OdometerIn       *int64         `json:"km_retour,omitempty"`
	FuelLevelOut     *int           `json:"niveau_carburant_depart,omitempty"`
	FuelLevelIn      *int           `json:"niveau_carburant_retour,omitempty"`
	SignedByClient   bool           `json:"signature_client"`
	SignedByAgent    bool           `json:"signature_agent"`
	Notes            string         `json:"notes,omitempty"`
	Status           ContractStatus `json:"statut"`
	CreatedOn        time.Time      `json:"created_on"`
	UpdatedOn        time.Time      `json:"updated_on"`
}
