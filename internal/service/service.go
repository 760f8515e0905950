package service

import (
	"context"
	"time"

	"carloc-backend/internal/domain"
)

// ReservationInput carries a create/update payload. DepositCents is a
// pointer so an absent deposit can be derived from the configured
// percentage while an explicit 0 stays 0.
type ReservationInput struct {
	ClientID         int64
	VehicleID        int64
	PickupAgencyID   int64
	ReturnAgencyID   int64
	StartDate        time.Time
	EndDate          time.Time
	TotalPriceCents  int64
	DepositCents     *int64
	DownPaymentCents int64
	PaymentMethod    string
	Notes            string
}

type QuoteInput struct {
	ClientID       int64
	VehicleID      int64
	StartDate      time.Time
	EndDate        time.Time
	DailyRateCents int64
	DriverFeeCents int64
	DeliveryCents  int64
	FuelFeeCents   int64
	MileageCents   int64
	DiscountCents  int64
	Notes          string
	Status         domain.QuoteStatus
}

type MaintenanceInput struct {
	VehicleID    int64
	Kind         string
	Description  string
	EntryDate    time.Time
	ExpectedExit *time.Time
	CostCents    int64
	Status       domain.MaintenanceStatus
}

type PaymentInput struct {
	Target     domain.PaymentTarget
	TotalCents int64
	PaidCents  int64
	Method     string
}

// AvailabilityResult is the response of the read-only availability probe.
type AvailabilityResult struct {
	Available bool   `json:"available"`
	Conflicts int64  `json:"conflicts"`
	Message   string `json:"message"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type UserService interface {
	Create(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type ClientService interface {
	Create(ctx context.Context, client *domain.Client) error
	Get(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, query string, page, pageSize int64) ([]domain.Client, int64, error)
}

type VehicleService interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	Get(ctx context.Context, id int64) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status domain.VehicleStatus, page, pageSize int64) ([]domain.Vehicle, int64, error)
}

type AgencyService interface {
	Create(ctx context.Context, agency *domain.Agency) error
	Get(ctx context.Context, id int64) (*domain.Agency, error)
	Update(ctx context.Context, agency *domain.Agency) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Agency, error)
}

type ReservationService interface {
	Create(ctx context.Context, in *ReservationInput) (*domain.Reservation, error)
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, id int64, in *ReservationInput) (*domain.Reservation, error)
	ChangeStatus(ctx context.Context, id int64, to domain.ReservationStatus) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status domain.ReservationStatus, clientID, vehicleID, page, pageSize int64) ([]domain.Reservation, int64, error)
	CheckAvailability(ctx context.Context, vehicleID int64, start, end time.Time, excludeID int64) (*AvailabilityResult, error)
	GenerateContract(ctx context.Context, reservationID int64) (*domain.Contract, error)
}

type QuoteService interface {
	Create(ctx context.Context, in *QuoteInput) (*domain.Quote, error)
	Get(ctx context.Context, id int64) (*domain.Quote, error)
	Update(ctx context.Context, id int64, in *QuoteInput) (*domain.Quote, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status domain.QuoteStatus, clientID, page, pageSize int64) ([]domain.Quote, int64, error)
	Stats(ctx context.Context) (map[domain.QuoteStatus]int64, error)
	Convert(ctx context.Context, id int64) (*domain.Contract, error)
}

type ContractService interface {
	Get(ctx context.Context, id int64) (*domain.Contract, error)
	Update(ctx context.Context, contract *domain.Contract) error
	ChangeStatus(ctx context.Context, id int64, to domain.ContractStatus) (*domain.Contract, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status domain.ContractStatus, clientID, page, pageSize int64) ([]domain.Contract, int64, error)
	Stats(ctx context.Context) (map[domain.ContractStatus]int64, error)
}

type MaintenanceService interface {
	Create(ctx context.Context, in *MaintenanceInput) (*domain.Maintenance, error)
	Get(ctx context.Context, id int64) (*domain.Maintenance, error)
	Update(ctx context.Context, id int64, in *MaintenanceInput) (*domain.Maintenance, error)
	List(ctx context.Context, vehicleID int64, status domain.MaintenanceStatus, page, pageSize int64) ([]domain.Maintenance, int64, error)
}

type PaymentService interface {
	Create(ctx context.Context, in *PaymentInput) (*domain.Payment, error)
	Get(ctx context.Context, id int64) (*domain.Payment, error)
	// RecordPayment adds amountCents to the paid total and rederives the
	// status.
	RecordPayment(ctx context.Context, id, amountCents int64) (*domain.Payment, error)
	ListByTarget(ctx context.Context, target domain.PaymentTarget) ([]domain.Payment, error)
	List(ctx context.Context, page, pageSize int64) ([]domain.Payment, int64, error)
}

type SettingsService interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Set(ctx context.Context, key, value string) error
	List(ctx context.Context) ([]domain.Setting, error)
	// CautionPercentage returns the configured deposit percentage,
	// defaulting to 0 when the key is unset or unparsable.
	CautionPercentage(ctx context.Context) (int64, error)
}

type EmailService interface {
	SendReservationConfirmation(ctx context.Context, clientEmail, clientName, vehicleLabel string, start, end time.Time) error
	SendReservationCancellation(ctx context.Context, clientEmail, clientName, vehicleLabel string) error
	SendContractReady(ctx context.Context, clientEmail, clientName, contractNumber string) error
	SendOverdueAlert(ctx context.Context, adminEmail string, reservationID int64, clientName, vehicleLabel string, end time.Time) error
}
