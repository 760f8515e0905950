package http

import (
	"net/http"

	"carloc-backend/internal/api/middleware"
	"carloc-backend/internal/domain"
	"carloc-backend/internal/service"
)

type ContractHandler struct {
	contracts service.ContractService
}

func NewContractHandler(contracts service.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid contract id")
		return
	}
	contract, err := h.contracts.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

// Update accepts the full contract body; the number and origin links are
// preserved server-side.
func (h *ContractHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid contract id")
		return
	}
	var contract domain.Contract
	if err := decodeJSON(r, &contract); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid JSON body")
		return
	}
	contract.ID = id
	if err := h.contracts.Update(r.Context(), &contract); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

func (h *ContractHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid contract id")
		return
	}
	var req struct {
		Status domain.ContractStatus `json:"statut"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Status == "" {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Missing statut")
		return
	}
	contract, err := h.contracts.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

func (h *ContractHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid contract id")
		return
	}
	if err := h.contracts.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := domain.ContractStatus(r.URL.Query().Get("statut"))
	clientID := queryInt(r, "client_id", 0)

	contracts, total, err := h.contracts.List(r.Context(), status, clientID, page, pageSize)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: contracts, Total: total, Page: page})
}

func (h *ContractHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.contracts.Stats(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
