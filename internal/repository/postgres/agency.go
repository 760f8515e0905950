package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/repository"
)

type agencyRepository struct {
	db *sql.DB
}

func NewAgencyRepository(db *sql.DB) repository.AgencyRepository {
	return &agencyRepository{db: db}
}

func (r *agencyRepository) Create(ctx context.Context, a *domain.Agency) error {
	query := `INSERT INTO agences (nom, ville, adresse, telephone, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, a.Name, a.City, a.Address, a.Phone, now, now).Scan(&a.ID)
}

func (r *agencyRepository) GetByID(ctx context.Context, id int64) (*domain.Agency, error) {
	a := &domain.Agency{}
	query := `SELECT id, nom, ville, adresse, telephone, created_on, updated_on FROM agences WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.City, &a.Address, &a.Phone, &a.CreatedOn, &a.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("agency", id)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *agencyRepository) Update(ctx context.Context, a *domain.Agency) error {
	query := `UPDATE agences SET nom=$1, ville=$2, adresse=$3, telephone=$4, updated_on=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, a.Name, a.City, a.Address, a.Phone, time.Now(), a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("agency", a.ID)
	}
	return nil
}

func (r *agencyRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM agences WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("agency", id)
	}
	return nil
}

func (r *agencyRepository) List(ctx context.Context) ([]domain.Agency, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, nom, ville, adresse, telephone, created_on, updated_on FROM agences ORDER BY nom ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agencies []domain.Agency
	for rows.Next() {
		var a domain.Agency
		if err := rows.Scan(&a.ID, &a.Name, &a.City, &a.Address, &a.Phone, &a.CreatedOn, &a.UpdatedOn); err != nil {
			return nil, err
		}
		agencies = append(agencies, a)
	}
	return agencies, rows.Err()
}
