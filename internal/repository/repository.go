package repository

import (
	"context"
	"time"

	"carloc-backend/internal/docnum"
	"carloc-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, query string, page, pageSize int64) ([]domain.Client, int64, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status domain.VehicleStatus, page, pageSize int64) ([]domain.Vehicle, int64, error)
}

type AgencyRepository interface {
	Create(ctx context.Context, agency *domain.Agency) error
	GetByID(ctx context.Context, id int64) (*domain.Agency, error)
	Update(ctx context.Context, agency *domain.Agency) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Agency, error)
}

type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, status domain.ReservationStatus, clientID, vehicleID, page, pageSize int64) ([]domain.Reservation, int64, error)
	// CountOverlapping counts active reservations on the vehicle whose
	// range overlaps [start, end), excluding excludeID when > 0.
	// This is the read-only availability probe; booking writes use the
	// transactional variant on TxOps.
	CountOverlapping(ctx context.Context, vehicleID int64, start, end time.Time, excludeID int64) (int64, error)
}

type MaintenanceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Maintenance, error)
	List(ctx context.Context, vehicleID int64, status domain.MaintenanceStatus, page, pageSize int64) ([]domain.Maintenance, int64, error)
	// CountBlocking counts maintenance windows on the vehicle that block
	// [start, end): status != done, open-ended when expected exit is null.
	CountBlocking(ctx context.Context, vehicleID int64, start, end time.Time) (int64, error)
	// ListExpiredOpen returns open maintenance whose expected exit has
	// passed, for the nightly release job.
	ListExpiredOpen(ctx context.Context, asOf time.Time) ([]domain.Maintenance, error)
}

type QuoteRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Quote, error)
	Update(ctx context.Context, quote *domain.Quote) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status domain.QuoteStatus, clientID, page, pageSize int64) ([]domain.Quote, int64, error)
	CountByStatus(ctx context.Context) (map[domain.QuoteStatus]int64, error)
}

type ContractRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Contract, error)
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.Contract, error)
	Update(ctx context.Context, contract *domain.Contract) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status domain.ContractStatus, clientID, page, pageSize int64) ([]domain.Contract, int64, error)
	CountByStatus(ctx context.Context) (map[domain.ContractStatus]int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	ListByTarget(ctx context.Context, target domain.PaymentTarget) ([]domain.Payment, error)
	List(ctx context.Context, page, pageSize int64) ([]domain.Payment, int64, error)
}

type SettingRepository interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Set(ctx context.Context, key, value string) error
	List(ctx context.Context) ([]domain.Setting, error)
}

// TxOps is the write surface available inside a unit of work. Every
// multi-step booking flow (create/update/cancel reservation, generate
// contract, convert quote) goes through these so the conflict check, the
// document numbering and the side effects commit or roll back together.
type TxOps interface {
	CountOverlappingReservations(vehicleID int64, start, end time.Time, excludeID int64) (int64, error)
	CountBlockingMaintenance(vehicleID int64, start, end time.Time) (int64, error)
	CountActiveReservations(vehicleID int64) (int64, error)

	InsertReservation(r *domain.Reservation) error
	UpdateReservation(r *domain.Reservation) error
	SetReservationStatus(id int64, status domain.ReservationStatus) error
	DeleteReservation(id int64) error

	SetVehicleStatus(id int64, status domain.VehicleStatus) error
	IncrementClientReservations(clientID int64) error
	InsertPayment(p *domain.Payment) error

	// ClaimDocumentNumber scans the last issued number for the type+month
	// under a per-(type, month) advisory lock and returns the next one.
	ClaimDocumentNumber(t docnum.DocumentType, date time.Time) (string, error)
	InsertQuote(q *domain.Quote) error
	InsertContract(c *domain.Contract) error
	ContractExistsForReservation(reservationID int64) (bool, error)
	MarkQuoteConverted(quoteID, contractID int64, at time.Time) error

	InsertMaintenance(m *domain.Maintenance) error
	UpdateMaintenance(m *domain.Maintenance) error
}

// UnitOfWork runs a function inside one database transaction. RunLocked
// additionally holds a per-vehicle advisory lock for the duration, which
// serializes concurrent check-then-write sequences on the same vehicle.
type UnitOfWork interface {
	Run(ctx context.Context, fn func(ops TxOps) error) error
	RunLocked(ctx context.Context, vehicleID int64, fn func(ops TxOps) error) error
}
