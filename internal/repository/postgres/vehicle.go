package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, immatriculation, marque, modele, annee, kilometrage, carburant, tarif_journalier_cents, agence_id, statut, created_on, updated_on`

func scanVehicle(row interface{ Scan(...any) error }, v *domain.Vehicle) error {
	return row.Scan(&v.ID, &v.Plate, &v.Make, &v.Model, &v.Year, &v.Mileage, &v.FuelType, &v.DailyRateCents, &v.AgencyID, &v.Status, &v.CreatedOn, &v.UpdatedOn)
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	query := `INSERT INTO vehicules (immatriculation, marque, modele, annee, kilometrage, carburant, tarif_journalier_cents, agence_id, statut, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, v.Plate, v.Make, v.Model, v.Year, v.Mileage, v.FuelType, v.DailyRateCents, v.AgencyID, v.Status, now, now).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := scanVehicle(r.db.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicules WHERE id = $1`, id), v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("vehicle", id)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicules SET immatriculation=$1, marque=$2, modele=$3, annee=$4, kilometrage=$5, carburant=$6, tarif_journalier_cents=$7, agence_id=$8, statut=$9, updated_on=$10 WHERE id=$11`
	res, err := r.db.ExecContext(ctx, query, v.Plate, v.Make, v.Model, v.Year, v.Mileage, v.FuelType, v.DailyRateCents, v.AgencyID, v.Status, time.Now(), v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("vehicle", v.ID)
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicules WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("vehicle", id)
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context, status domain.VehicleStatus, page, pageSize int64) ([]domain.Vehicle, int64, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + vehicleColumns + ` FROM vehicules`

	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += ` WHERE statut = $1`
		args = append(args, status)
		argIdx++
	}

	var count int64
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += orderLimitOffset("marque ASC, modele ASC", argIdx)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, count, rows.Err()
}
