package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type PaymentTargetKind string

const (
	PaymentTargetContract    PaymentTargetKind = "contract"
	PaymentTargetReservation PaymentTargetKind = "reservation"
)

// PaymentTarget is the tagged polymorphic reference a payment points at.
// The database stores it as (reference_type, reference_id) without a
// foreign key; resolving it is the caller's job.
type PaymentTarget struct {
	Kind PaymentTargetKind `json:"reference_type"`
	ID   int64             `json:"reference_id"`
}

type Payment struct {
	ID          int64         `json:"id"`
	Target      PaymentTarget `json:"target"`
	Reference   string        `json:"reference"`
	TotalCents  int64         `json:"montant_total_cents"`
	PaidCents   int64         `json:"montant_paye_cents"`
	Method      string        `json:"methode_paiement"`
	Status      PaymentStatus `json:"statut"`
	PaidOn      *time.Time    `json:"date_paiement,omitempty"`
	CreatedOn   time.Time     `json:"created_on"`
	UpdatedOn   time.Time     `json:"updated_on"`
}

// DerivePaymentStatus computes the status from paid vs total.
func DerivePaymentStatus(paidCents, totalCents int64) PaymentStatus {
	switch {
	case paidCents <= 0:
		return PaymentStatusPending
	case paidCents < totalCents:
		return PaymentStatusPartial
	default:
		return PaymentStatusPaid
	}
}

// BalanceCents is the outstanding amount on the payment.
func (p *Payment) BalanceCents() int64 {
	return p.TotalCents - p.PaidCents
}
