package http

import (
	"net/http"

	"carloc-backend/internal/api/middleware"
	"carloc-backend/internal/domain"
	"carloc-backend/internal/service"
)

type ReservationHandler struct {
	reservations service.ReservationService
}

func NewReservationHandler(reservations service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// reservationRequest mirrors the create/update body; dates are RFC 3339
// timestamps or bare YYYY-MM-DD dates.
type reservationRequest struct {
	ClientID         int64  `json:"client_id"`
	VehicleID        int64  `json:"vehicule_id"`
	PickupAgencyID   int64  `json:"agence_retrait_id"`
	ReturnAgencyID   int64  `json:"agence_retour_id"`
	StartDate        string `json:"date_debut"`
	EndDate          string `json:"date_fin"`
	TotalPriceCents  int64  `json:"prix_total_cents"`
	DepositCents     *int64 `json:"caution_cents"`
	DownPaymentCents int64  `json:"acompte_cents"`
	PaymentMethod    string `json:"methode_paiement"`
	Notes            string `json:"notes"`
}

func (req *reservationRequest) toInput() (*service.ReservationInput, error) {
	var verr domain.ValidationErrors
	in := &service.ReservationInput{
		ClientID:         req.ClientID,
		VehicleID:        req.VehicleID,
		PickupAgencyID:   req.PickupAgencyID,
		ReturnAgencyID:   req.ReturnAgencyID,
		TotalPriceCents:  req.TotalPriceCents,
		DepositCents:     req.DepositCents,
		DownPaymentCents: req.DownPaymentCents,
		PaymentMethod:    req.PaymentMethod,
		Notes:            req.Notes,
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

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid JSON body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		handleServiceError(w, err)
		return
	}
	reservation, err := h.reservations.Create(r.Context(), in)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid reservation id")
		return
	}
	reservation, err := h.reservations.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid reservation id")
		return
	}
	var req reservationRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid JSON body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		handleServiceError(w, err)
		return
	}
	reservation, err := h.reservations.Update(r.Context(), id, in)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *ReservationHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid reservation id")
		return
	}
	var req struct {
		Status domain.ReservationStatus `json:"statut"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Status == "" {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Missing statut")
		return
	}
	reservation, err := h.reservations.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid reservation id")
		return
	}
	if err := h.reservations.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := domain.ReservationStatus(r.URL.Query().Get("statut"))
	clientID := queryInt(r, "client_id", 0)
	vehicleID := queryInt(r, "vehicule_id", 0)

	reservations, total, err := h.reservations.List(r.Context(), status, clientID, vehicleID, page, pageSize)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: reservations, Total: total, Page: page})
}

func (h *ReservationHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vehicleID := queryInt(r, "vehicule_id", 0)
	excludeID := queryInt(r, "exclude_reservation_id", 0)

	var verr domain.ValidationErrors
	start, err := parseDate(q.Get("date_debut"))
	if err != nil {
		verr.Add("date_debut", "date invalide")
	}
	end, err := parseDate(q.Get("date_fin"))
	if err != nil {
		verr.Add("date_fin", "date invalide")
	}
	if err := verr.Err(); err != nil {
		handleServiceError(w, err)
		return
	}

	result, err := h.reservations.CheckAvailability(r.Context(), vehicleID, start, end, excludeID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ReservationHandler) GenerateContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid reservation id")
		return
	}
	contract, err := h.reservations.GenerateContract(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract)
}
