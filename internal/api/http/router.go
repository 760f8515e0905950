// Package http provides the REST surface of the back office: routing,
// request decoding and the mapping from domain error kinds to statuses.
package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	"carloc-backend/internal/api/middleware"
	"carloc-backend/internal/security"
	"carloc-backend/internal/service"
)

// Handlers groups every resource handler wired into the router.
type Handlers struct {
	Auth        *AuthHandler
	Reservation *ReservationHandler
	Quote       *QuoteHandler
	Contract    *ContractHandler
	Vehicle     *VehicleHandler
	Client      *ClientHandler
	Agency      *AgencyHandler
	Maintenance *MaintenanceHandler
	Payment     *PaymentHandler
	Settings    *SettingsHandler
}

// NewHandlers builds the handler set from the service layer.
func NewHandlers(
	auth service.AuthService,
	users service.UserService,
	reservations service.ReservationService,
	quotes service.QuoteService,
	contracts service.ContractService,
	vehicles service.VehicleService,
	clients service.ClientService,
	agencies service.AgencyService,
	maintenances service.MaintenanceService,
	payments service.PaymentService,
	settings service.SettingsService,
) *Handlers {
	return &Handlers{
		Auth:        NewAuthHandler(auth, users),
		Reservation: NewReservationHandler(reservations),
		Quote:       NewQuoteHandler(quotes),
		Contract:    NewContractHandler(contracts),
		Vehicle:     NewVehicleHandler(vehicles),
		Client:      NewClientHandler(clients),
		Agency:      NewAgencyHandler(agencies),
		Maintenance: NewMaintenanceHandler(maintenances),
		Payment:     NewPaymentHandler(payments),
		Settings:    NewSettingsHandler(settings),
	}
}

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(db *sql.DB, tokens security.TokenManager, h *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.Logging)
	r.Use(middleware.ErrorRecovery)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", healthCheck(db)).Methods("GET")
	api.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")

	// Everything below requires a valid token.
	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.Authenticate(tokens))

	authed.HandleFunc("/auth/me", h.Auth.Me).Methods("GET")

	users := authed.NewRoute().Subrouter()
	users.Use(middleware.RequirePermission("users:write"))
	users.HandleFunc("/users", h.Auth.CreateUser).Methods("POST")
	users.HandleFunc("/users", h.Auth.ListUsers).Methods("GET")

	// Reservations
	authed.HandleFunc("/reservations", h.Reservation.List).Methods("GET")
	authed.HandleFunc("/reservations/check-availability", h.Reservation.CheckAvailability).Methods("GET")
	authed.HandleFunc("/reservations/{id}", h.Reservation.Get).Methods("GET")

	resWrite := authed.NewRoute().Subrouter()
	resWrite.Use(middleware.RequirePermission("reservations:write"))
	resWrite.HandleFunc("/reservations", h.Reservation.Create).Methods("POST")
	resWrite.HandleFunc("/reservations/{id}", h.Reservation.Update).Methods("PUT")
	resWrite.HandleFunc("/reservations/{id}", h.Reservation.Delete).Methods("DELETE")
	resWrite.HandleFunc("/reservations/{id}/status", h.Reservation.ChangeStatus).Methods("PUT")
	resWrite.HandleFunc("/reservations/{id}/generate-contract", h.Reservation.GenerateContract).Methods("POST")

	// Quotes
	authed.HandleFunc("/devis", h.Quote.List).Methods("GET")
	authed.HandleFunc("/devis/stats", h.Quote.Stats).Methods("GET")
	authed.HandleFunc("/devis/{id}", h.Quote.Get).Methods("GET")

	quoteWrite := authed.NewRoute().Subrouter()
	quoteWrite.Use(middleware.RequirePermission("quotes:write"))
	quoteWrite.HandleFunc("/devis", h.Quote.Create).Methods("POST")
	quoteWrite.HandleFunc("/devis/{id}", h.Quote.Update).Methods("PUT")
	quoteWrite.HandleFunc("/devis/{id}", h.Quote.Delete).Methods("DELETE")
	quoteWrite.HandleFunc("/devis/{id}/convert", h.Quote.Convert).Methods("POST")

	// Contracts
	authed.HandleFunc("/contrats", h.Contract.List).Methods("GET")
	authed.HandleFunc("/contrats/stats", h.Contract.Stats).Methods("GET")
	authed.HandleFunc("/contrats/{id}", h.Contract.Get).Methods("GET")

	contractWrite := authed.NewRoute().Subrouter()
	contractWrite.Use(middleware.RequirePermission("contracts:write"))
	contractWrite.HandleFunc("/contrats/{id}", h.Contract.Update).Methods("PUT")
	contractWrite.HandleFunc("/contrats/{id}", h.Contract.Delete).Methods("DELETE")
	contractWrite.HandleFunc("/contrats/{id}/status", h.Contract.ChangeStatus).Methods("PUT")

	// Vehicles
	authed.HandleFunc("/vehicules", h.Vehicle.List).Methods("GET")
	authed.HandleFunc("/vehicules/{id}", h.Vehicle.Get).Methods("GET")

	vehicleWrite := authed.NewRoute().Subrouter()
	vehicleWrite.Use(middleware.RequirePermission("vehicles:write"))
	vehicleWrite.HandleFunc("/vehicules", h.Vehicle.Create).Methods("POST")
	vehicleWrite.HandleFunc("/vehicules/{id}", h.Vehicle.Update).Methods("PUT")
	vehicleWrite.HandleFunc("/vehicules/{id}", h.Vehicle.Delete).Methods("DELETE")

	// Clients
	authed.HandleFunc("/clients", h.Client.List).Methods("GET")
	authed.HandleFunc("/clients/{id}", h.Client.Get).Methods("GET")

	clientWrite := authed.NewRoute().Subrouter()
	clientWrite.Use(middleware.RequirePermission("clients:write"))
	clientWrite.HandleFunc("/clients", h.Client.Create).Methods("POST")
	clientWrite.HandleFunc("/clients/{id}", h.Client.Update).Methods("PUT")
	clientWrite.HandleFunc("/clients/{id}", h.Client.Delete).Methods("DELETE")

	// Agencies
	authed.HandleFunc("/agences", h.Agency.List).Methods("GET")
	authed.HandleFunc("/agences/{id}", h.Agency.Get).Methods("GET")

	agencyWrite := authed.NewRoute().Subrouter()
	agencyWrite.Use(middleware.RequirePermission("agencies:write"))
	agencyWrite.HandleFunc("/agences", h.Agency.Create).Methods("POST")
	agencyWrite.HandleFunc("/agences/{id}", h.Agency.Update).Methods("PUT")
	agencyWrite.HandleFunc("/agences/{id}", h.Agency.Delete).Methods("DELETE")

	// Maintenance
	authed.HandleFunc("/maintenances", h.Maintenance.List).Methods("GET")
	authed.HandleFunc("/maintenances/{id}", h.Maintenance.Get).Methods("GET")

	maintenanceWrite := authed.NewRoute().Subrouter()
	maintenanceWrite.Use(middleware.RequirePermission("maintenances:write"))
	maintenanceWrite.HandleFunc("/maintenances", h.Maintenance.Create).Methods("POST")
	maintenanceWrite.HandleFunc("/maintenances/{id}", h.Maintenance.Update).Methods("PUT")

	// Payments
	authed.HandleFunc("/paiements", h.Payment.List).Methods("GET")
	authed.HandleFunc("/paiements/{id}", h.Payment.Get).Methods("GET")

	paymentWrite := authed.NewRoute().Subrouter()
	paymentWrite.Use(middleware.RequirePermission("payments:write"))
	paymentWrite.HandleFunc("/paiements", h.Payment.Create).Methods("POST")
	paymentWrite.HandleFunc("/paiements/{id}/record", h.Payment.Record).Methods("POST")

	// Settings
	authed.HandleFunc("/settings", h.Settings.List).Methods("GET")
	authed.HandleFunc("/settings/{key}", h.Settings.Get).Methods("GET")

	settingsWrite := authed.NewRoute().Subrouter()
	settingsWrite.Use(middleware.RequirePermission("settings:write"))
	settingsWrite.HandleFunc("/settings/{key}", h.Settings.Set).Methods("PUT")

	return r
}

func healthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if err := db.PingContext(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]string{"status": status})
	}
}
