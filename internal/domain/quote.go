package domain

import "time"

type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "brouillon"
	QuoteStatusSent      QuoteStatus = "envoye"
	QuoteStatusAccepted  QuoteStatus = "accepte"
	QuoteStatusRefused   QuoteStatus = "refuse"
	QuoteStatusConverted QuoteStatus = "converti"
)

// Quote (devis) is a non-binding estimate with the same pricing shape as a
// contract. It stays mutable until converted; after conversion updates and
// deletes are rejected and ContractID points at the generated contract.
type Quote struct {
	ID             int64       `json:"id"`
	Number         string      `json:"numero"`
	ClientID       int64       `json:"client_id"`
	VehicleID      int64       `json:"vehicule_id"`
	StartDate      time.Time   `json:"date_debut"`
	EndDate        time.Time   `json:"date_fin"`
	DailyRateCents int64       `json:"tarif_journalier_cents"`
	Days           int64       `json:"nombre_jours"`
	DriverFeeCents int64       `json:"frais_chauffeur_cents"`
	DeliveryCents  int64       `json:"frais_livraison_cents"`
	FuelFeeCents   int64       `json:"frais_carburant_cents"`
	MileageCents   int64       `json:"frais_kilometrage_cents"`
	DiscountCents  int64       `json:"remise_cents"`
	TotalCents     int64       `json:"montant_total_cents"`
	Notes          string      `json:"notes,omitempty"`
	Status         QuoteStatus `json:"statut"`
	ContractID     *int64      `json:"contrat_id,omitempty"`
	ConvertedOn    *time.Time  `json:"converted_on,omitempty"`
	CreatedOn      time.Time   `json:"created_on"`
	UpdatedOn      time.Time   `json:"updated_on"`
}

// Converted reports whether the quote has been turned into a contract.
func (q *Quote) Converted() bool {
	return q.Status == QuoteStatusConverted
}
