package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/repository"
)

type maintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

const maintenanceColumns = `id, vehicule_id, type, description, date_entree, date_sortie_prevue, cout_cents, statut, created_on, updated_on`

func scanMaintenance(row interface{ Scan(...any) error }, m *domain.Maintenance) error {
	return row.Scan(&m.ID, &m.VehicleID, &m.Kind, &m.Description, &m.EntryDate, &m.ExpectedExit, &m.CostCents, &m.Status, &m.CreatedOn, &m.UpdatedOn)
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int64) (*domain.Maintenance, error) {
	m := &domain.Maintenance{}
	err := scanMaintenance(r.db.QueryRowContext(ctx, `SELECT `+maintenanceColumns+` FROM maintenances WHERE id = $1`, id), m)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("maintenance", id)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *maintenanceRepository) List(ctx context.Context, vehicleID int64, status domain.MaintenanceStatus, page, pageSize int64) ([]domain.Maintenance, int64, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if vehicleID > 0 {
		query += fmt.Sprintf(" AND vehicule_id = $%d", argIdx)
		args = append(args, vehicleID)
		argIdx++
	}
	if status != "" {
		query += fmt.Sprintf(" AND statut = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int64
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += orderLimitOffset("date_entree DESC", argIdx)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var maintenances []domain.Maintenance
	for rows.Next() {
		var m domain.Maintenance
		if err := scanMaintenance(rows, &m); err != nil {
			return nil, 0, err
		}
		maintenances = append(maintenances, m)
	}
	return maintenances, count, rows.Err()
}

func (r *maintenanceRepository) CountBlocking(ctx context.Context, vehicleID int64, start, end time.Time) (int64, error) {
	return countBlockingMaintenance(ctx, r.db, vehicleID, start, end)
}

func (r *maintenanceRepository) ListExpiredOpen(ctx context.Context, asOf time.Time) ([]domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances
	          WHERE statut <> 'done' AND date_sortie_prevue IS NOT NULL AND date_sortie_prevue < $1`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var maintenances []domain.Maintenance
	for rows.Next() {
		var m domain.Maintenance
		if err := scanMaintenance(rows, &m); err != nil {
			return nil, err
		}
		maintenances = append(maintenances, m)
	}
	return maintenances, rows.Err()
}
