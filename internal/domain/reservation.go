package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "pending"
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusInProgress ReservationStatus = "in_progress"
	ReservationStatusCompleted  ReservationStatus = "completed"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
)

// ActiveReservationStatuses are the statuses that occupy a vehicle and
// participate in conflict detection.
var ActiveReservationStatuses = []ReservationStatus{
	ReservationStatusPending,
	ReservationStatusConfirmed,
	ReservationStatusInProgress,
}

// reservationTransitions encodes the forward-only status machine.
// cancelled is reachable from pending and confirmed only.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:    {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed:  {ReservationStatusInProgress, ReservationStatusCancelled},
	ReservationStatusInProgress: {ReservationStatusCompleted},
}

// CanTransition reports whether moving a reservation from one status to
// another is allowed. Backward transitions are never allowed.
func CanTransition(from, to ReservationStatus) bool {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Reservation holds a vehicle over the half-open range [StartDate, EndDate)
// together with its pricing snapshot. The snapshot is computed at creation
// and does not track later vehicle rate changes.
type Reservation struct {
	ID               int64             `json:"id"`
	ClientID         int64             `json:"client_id"`
	VehicleID        int64             `json:"vehicule_id"`
	PickupAgencyID   int64             `json:"agence_retrait_id"`
	ReturnAgencyID   int64             `json:"agence_retour_id"`
	StartDate        time.Time         `json:"date_debut"`
	EndDate          time.Time         `json:"date_fin"`
	TotalPriceCents  int64             `json:"prix_total_cents"`
	DepositCents     int64             `json:"caution_cents"`
	DownPaymentCents int64             `json:"acompte_cents"`
	PaymentMethod    string            `json:"methode_paiement,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	Status           ReservationStatus `json:"statut"`
	CreatedOn        time.Time         `json:"created_on"`
	UpdatedOn        time.Time         `json:"updated_on"`
}

// BalanceDueCents is the remainder after the down payment.
func (r *Reservation) BalanceDueCents() int64 {
	return r.TotalPriceCents - r.DownPaymentCents
}
