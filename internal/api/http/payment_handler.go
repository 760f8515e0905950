package http

import (
	"net/http"

	"carloc-backend/internal/api/middleware"
	"carloc-backend/internal/domain"
	"carloc-backend/internal/service"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type paymentRequest struct {
	TargetKind domain.PaymentTargetKind `json:"reference_type"`
	TargetID   int64                    `json:"reference_id"`
	TotalCents int64                    `json:"montant_total_cents"`
	PaidCents  int64                    `json:"montant_paye_cents"`
	Method     string                   `json:"methode_paiement"`
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid JSON body")
		return
	}
	payment, err := h.payments.Create(r.Context(), &service.PaymentInput{
		Target:     domain.PaymentTarget{Kind: req.TargetKind, ID: req.TargetID},
		TotalCents: req.TotalCents,
		PaidCents:  req.PaidCents,
		Method:     req.Method,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid payment id")
		return
	}
	payment, err := h.payments.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

// Record adds an installment to an existing payment.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid payment id")
		return
	}
	var req struct {
		AmountCents int64 `json:"montant_cents"`
	}
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid JSON body")
		return
	}
	payment, err := h.payments.RecordPayment(r.Context(), id, req.AmountCents)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if kind := q.Get("reference_type"); kind != "" {
		target := domain.PaymentTarget{
			Kind: domain.PaymentTargetKind(kind),
			ID:   queryInt(r, "reference_id", 0),
		}
		payments, err := h.payments.ListByTarget(r.Context(), target)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, payments)
		return
	}

	page, pageSize := pagination(r)
	payments, total, err := h.payments.List(r.Context(), page, pageSize)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: payments, Total: total, Page: page})
}
