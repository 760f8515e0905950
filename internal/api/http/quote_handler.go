package http

import (
	"net/http"

	"carloc-backend/internal/api/middleware"
	"carloc-backend/internal/domain"
	"carloc-backend/internal/service"
)

type QuoteHandler struct {
	quotes service.QuoteService
}

func NewQuoteHandler(quotes service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

type quoteRequest struct {
	ClientID       int64              `json:"client_id"`
	VehicleID      int64              `json:"vehicule_id"`
	StartDate      string             `json:"date_debut"`
	EndDate        string             `json:"date_fin"`
	DailyRateCents int64              `json:"tarif_journalier_cents"`
	DriverFeeCents int64              `json:"frais_chauffeur_cents"`
	DeliveryCents  int64              `json:"frais_livraison_cents"`
	FuelFeeCents   int64              `json:"frais_carburant_cents"`
	MileageCents   int64              `json:"frais_kilometrage_cents"`
	DiscountCents  int64              `json:"remise_cents"`
	Notes          string             `json:"notes"`
	Status         domain.QuoteStatus `json:"statut"`
}

func (req *quoteRequest) toInput() (*service.QuoteInput, error) {
	var verr domain.ValidationErrors
	in := &service.QuoteInput{
		ClientID:       req.ClientID,
		VehicleID:      req.VehicleID,
		DailyRateCents: req.DailyRateCents,
		DriverFeeCents: req.DriverFeeCents,
		DeliveryCents:  req.DeliveryCents,
		FuelFeeCents:   req.FuelFeeCents,
		MileageCents:   req.MileageCents,
		DiscountCents:  req.DiscountCents,
		Notes:          req.Notes,
		Status:         req.Status,
	}
	if req.StartDate != "" {
		t, err := parseDate(req.StartDate)
		if err != nil {
			verr.Add("date_debut", "date invalide")
		} else {
			in.StartDate = t
		}
	}
	if req.EndDate != "" {
		t, err := parseDate(req.EndDate)
		if err != nil {
			verr.Add("date_fin", "date invalide")
		} else {
			in.EndDate = t
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return in, nil
}

func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid JSON body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		handleServiceError(w, err)
		return
	}
	quote, err := h.quotes.Create(r.Context(), in)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quote)
}

func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid quote id")
		return
	}
	quote, err := h.quotes.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid quote id")
		return
	}
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid JSON body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		handleServiceError(w, err)
		return
	}
	quote, err := h.quotes.Update(r.Context(), id, in)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid quote id")
		return
	}
	if err := h.quotes.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := domain.QuoteStatus(r.URL.Query().Get("statut"))
	clientID := queryInt(r, "client_id", 0)

	quotes, total, err := h.quotes.List(r.Context(), status, clientID, page, pageSize)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: quotes, Total: total, Page: page})
}

func (h *QuoteHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.quotes.Stats(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *QuoteHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid quote id")
		return
	}
	contract, err := h.quotes.Convert(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract)
}
