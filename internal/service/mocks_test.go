package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"carloc-backend/internal/docnum"
	"carloc-backend/internal/domain"
	"carloc-backend/internal/repository"
)

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) List(ctx context.Context, status domain.ReservationStatus, clientID, vehicleID, page, pageSize int64) ([]domain.Reservation, int64, error) {
	args := m.Called(ctx, status, clientID, vehicleID, page, pageSize)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int64), args.Error(2)
}
func (m *MockReservationRepo) CountOverlapping(ctx context.Context, vehicleID int64, start, end time.Time, excludeID int64) (int64, error) {
	args := m.Called(ctx, vehicleID, start, end, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockVehicleRepo) List(ctx context.Context, status domain.VehicleStatus, page, pageSize int64) ([]domain.Vehicle, int64, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int64), args.Error(2)
}

// MockClientRepo
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientRepo) Update(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockClientRepo) List(ctx context.Context, query string, page, pageSize int64) ([]domain.Client, int64, error) {
	args := m.Called(ctx, query, page, pageSize)
	return args.Get(0).([]domain.Client), args.Get(1).(int64), args.Error(2)
}

// MockAgencyRepo
type MockAgencyRepo struct {
	mock.Mock
}

func (m *MockAgencyRepo) Create(ctx context.Context, agency *domain.Agency) error {
	args := m.Called(ctx, agency)
	return args.Error(0)
}
func (m *MockAgencyRepo) GetByID(ctx context.Context, id int64) (*domain.Agency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agency), args.Error(1)
}
func (m *MockAgencyRepo) Update(ctx context.Context, agency *domain.Agency) error {
	args := m.Called(ctx, agency)
	return args.Error(0)
}
func (m *MockAgencyRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAgencyRepo) List(ctx context.Context) ([]domain.Agency, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Agency), args.Error(1)
}

// MockMaintenanceRepo
type MockMaintenanceRepo struct {
	mock.Mock
}

func (m *MockMaintenanceRepo) GetByID(ctx context.Context, id int64) (*domain.Maintenance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Maintenance), args.Error(1)
}
func (m *MockMaintenanceRepo) List(ctx context.Context, vehicleID int64, status domain.MaintenanceStatus, page, pageSize int64) ([]domain.Maintenance, int64, error) {
	args := m.Called(ctx, vehicleID, status, page, pageSize)
	return args.Get(0).([]domain.Maintenance), args.Get(1).(int64), args.Error(2)
}
func (m *MockMaintenanceRepo) CountBlocking(ctx context.Context, vehicleID int64, start, end time.Time) (int64, error) {
	args := m.Called(ctx, vehicleID, start, end)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockMaintenanceRepo) ListExpiredOpen(ctx context.Context, asOf time.Time) ([]domain.Maintenance, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Maintenance), args.Error(1)
}

// MockQuoteRepo
type MockQuoteRepo struct {
	mock.Mock
}

func (m *MockQuoteRepo) GetByID(ctx context.Context, id int64) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}
func (m *MockQuoteRepo) Update(ctx context.Context, quote *domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}
func (m *MockQuoteRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockQuoteRepo) List(ctx context.Context, status domain.QuoteStatus, clientID, page, pageSize int64) ([]domain.Quote, int64, error) {
	args := m.Called(ctx, status, clientID, page, pageSize)
	return args.Get(0).([]domain.Quote), args.Get(1).(int64), args.Error(2)
}
func (m *MockQuoteRepo) CountByStatus(ctx context.Context) (map[domain.QuoteStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.QuoteStatus]int64), args.Error(1)
}

// MockContractRepo
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractRepo) GetByReservationID(ctx context.Context, reservationID int64) (*domain.Contract, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractRepo) Update(ctx context.Context, contract *domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}
func (m *MockContractRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockContractRepo) List(ctx context.Context, status domain.ContractStatus, clientID, page, pageSize int64) ([]domain.Contract, int64, error) {
	args := m.Called(ctx, status, clientID, page, pageSize)
	return args.Get(0).([]domain.Contract), args.Get(1).(int64), args.Error(2)
}
func (m *MockContractRepo) CountByStatus(ctx context.Context) (map[domain.ContractStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.ContractStatus]int64), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Update(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByTarget(ctx context.Context, target domain.PaymentTarget) ([]domain.Payment, error) {
	args := m.Called(ctx, target)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) List(ctx context.Context, page, pageSize int64) ([]domain.Payment, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Payment), args.Get(1).(int64), args.Error(2)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockSettingsService
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}
func (m *MockSettingsService) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
func (m *MockSettingsService) List(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Setting), args.Error(1)
}
func (m *MockSettingsService) CautionPercentage(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReservationConfirmation(ctx context.Context, clientEmail, clientName, vehicleLabel string, start, end time.Time) error {
	args := m.Called(ctx, clientEmail, clientName, vehicleLabel, start, end)
	return args.Error(0)
}
func (m *MockEmailService) SendReservationCancellation(ctx context.Context, clientEmail, clientName, vehicleLabel string) error {
	args := m.Called(ctx, clientEmail, clientName, vehicleLabel)
	return args.Error(0)
}
func (m *MockEmailService) SendContractReady(ctx context.Context, clientEmail, clientName, contractNumber string) error {
	args := m.Called(ctx, clientEmail, clientName, contractNumber)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueAlert(ctx context.Context, adminEmail string, reservationID int64, clientName, vehicleLabel string, end time.Time) error {
	args := m.Called(ctx, adminEmail, reservationID, clientName, vehicleLabel, end)
	return args.Error(0)
}

// MockTxOps records the write surface of a unit of work.
type MockTxOps struct {
	mock.Mock
}

func (m *MockTxOps) CountOverlappingReservations(vehicleID int64, start, end time.Time, excludeID int64) (int64, error) {
	args := m.Called(vehicleID, start, end, excludeID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockTxOps) CountBlockingMaintenance(vehicleID int64, start, end time.Time) (int64, error) {
	args := m.Called(vehicleID, start, end)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockTxOps) CountActiveReservations(vehicleID int64) (int64, error) {
	args := m.Called(vehicleID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockTxOps) InsertReservation(r *domain.Reservation) error {
	args := m.Called(r)
	return args.Error(0)
}
func (m *MockTxOps) UpdateReservation(r *domain.Reservation) error {
	args := m.Called(r)
	return args.Error(0)
}
func (m *MockTxOps) SetReservationStatus(id int64, status domain.ReservationStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}
func (m *MockTxOps) DeleteReservation(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *MockTxOps) SetVehicleStatus(id int64, status domain.VehicleStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}
func (m *MockTxOps) IncrementClientReservations(clientID int64) error {
	args := m.Called(clientID)
	return args.Error(0)
}
func (m *MockTxOps) InsertPayment(p *domain.Payment) error {
	args := m.Called(p)
	return args.Error(0)
}
func (m *MockTxOps) ClaimDocumentNumber(t docnum.DocumentType, date time.Time) (string, error) {
	args := m.Called(t, date)
	return args.String(0), args.Error(1)
}
func (m *MockTxOps) InsertQuote(q *domain.Quote) error {
	args := m.Called(q)
	return args.Error(0)
}
func (m *MockTxOps) InsertContract(c *domain.Contract) error {
	args := m.Called(c)
	return args.Error(0)
}
func (m *MockTxOps) ContractExistsForReservation(reservationID int64) (bool, error) {
	args := m.Called(reservationID)
	return args.Bool(0), args.Error(1)
}
func (m *MockTxOps) MarkQuoteConverted(quoteID, contractID int64, at time.Time) error {
	args := m.Called(quoteID, contractID, at)
	return args.Error(0)
}
func (m *MockTxOps) InsertMaintenance(mt *domain.Maintenance) error {
	args := m.Called(mt)
	return args.Error(0)
}
func (m *MockTxOps) UpdateMaintenance(mt *domain.Maintenance) error {
	args := m.Called(mt)
	return args.Error(0)
}

// MockUnitOfWork passes its Ops to the transactional function; the locked
// vehicle id is recorded so tests can assert on it.
type MockUnitOfWork struct {
	Ops           *MockTxOps
	LockedVehicle int64
	RunCalls      int
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{Ops: new(MockTxOps)}
}

func (m *MockUnitOfWork) Run(ctx context.Context, fn func(ops repository.TxOps) error) error {
	m.RunCalls++
	return fn(m.Ops)
}

func (m *MockUnitOfWork) RunLocked(ctx context.Context, vehicleID int64, fn func(ops repository.TxOps) error) error {
	m.RunCalls++
	m.LockedVehicle = vehicleID
	return fn(m.Ops)
}
