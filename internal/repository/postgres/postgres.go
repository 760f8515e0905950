package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"carloc-backend/internal/repository"

	_ "github.com/lib/pq"
)

func orderLimitOffset(order string, argIdx int) string {
	return fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", order, argIdx, argIdx+1)
}

// querier is satisfied by *sql.DB and *sql.Tx so the conflict-count and
// numbering queries can run both standalone and inside a unit of work.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ClientRepository
	repository.VehicleRepository
	repository.AgencyRepository
	repository.ReservationRepository
	repository.MaintenanceRepository
	repository.QuoteRepository
	repository.ContractRepository
	repository.PaymentRepository
	repository.SettingRepository
	repository.UnitOfWork
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		UserRepository:        NewUserRepository(db),
		ClientRepository:      NewClientRepository(db),
		VehicleRepository:     NewVehicleRepository(db),
		AgencyRepository:      NewAgencyRepository(db),
		ReservationRepository: NewReservationRepository(db),
		MaintenanceRepository: NewMaintenanceRepository(db),
		QuoteRepository:       NewQuoteRepository(db),
		ContractRepository:    NewContractRepository(db),
		PaymentRepository:     NewPaymentRepository(db),
		SettingRepository:     NewSettingRepository(db),
		UnitOfWork:            NewUnitOfWork(db),
	}
}
