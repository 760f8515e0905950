package http

import (
	"net/http"

	"carloc-backend/internal/api/middleware"
	"carloc-backend/internal/domain"
	"carloc-backend/internal/service"
)

type MaintenanceHandler struct {
	maintenances service.MaintenanceService
}

func NewMaintenanceHandler(maintenances service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenances: maintenances}
}

type maintenanceRequest struct {
	VehicleID    int64                    `json:"vehicule_id"`
	Kind         string                   `json:"type"`
	Description  string                   `json:"description"`
	EntryDate    string                   `json:"date_entree"`
	ExpectedExit string                   `json:"date_sortie_prevue"`
	CostCents    int64                    `json:"cout_cents"`
	Status       domain.MaintenanceStatus `json:"statut"`
}

func (req *maintenanceRequest) toInput() (*service.MaintenanceInput, error) {
	var verr domain.ValidationErrors
	in := &service.MaintenanceInput{
		VehicleID:   req.VehicleID,
		Kind:        req.Kind,
		Description: req.Description,
		CostCents:   req.CostCents,
		Status:      req.Status,
	}
	if req.EntryDate != "" {
		t, err := parseDate(req.EntryDate)
		if err != nil {
			verr.Add("date_entree", "date invalide")
		} else {
			in.EntryDate = t
		}
	}
	if req.ExpectedExit != "" {
		t, err := parseDate(req.ExpectedExit)
		if err != nil {
			verr.Add("date_sortie_prevue", "date invalide")
		} else {
			in.ExpectedExit = &t
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return in, nil
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req maintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid JSON body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		handleServiceError(w, err)
		return
	}
	maintenance, err := h.maintenances.Create(r.Context(), in)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, maintenance)
}

func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid maintenance id")
		return
	}
	maintenance, err := h.maintenances.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, maintenance)
}

func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid maintenance id")
		return
	}
	var req maintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid JSON body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		handleServiceError(w, err)
		return
	}
	maintenance, err := h.maintenances.Update(r.Context(), id, in)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, maintenance)
}

func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	vehicleID := queryInt(r, "vehicule_id", 0)
	status := domain.MaintenanceStatus(r.URL.Query().Get("statut"))

	maintenances, total, err := h.maintenances.List(r.Context(), vehicleID, status, page, pageSize)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: maintenances, Total: total, Page: page})
}
