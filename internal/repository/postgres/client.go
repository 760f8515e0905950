package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/repository"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (prenom, nom, email, telephone, numero_permis, adresse, nombre_reservations, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.FirstName, c.LastName, c.Email, c.Phone, c.LicenseNumber, c.Address, now, now).Scan(&c.ID)
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	c := &domain.Client{}
	query := `SELECT id, prenom, nom, email, telephone, numero_permis, adresse, nombre_reservations, created_on, updated_on
	          FROM clients WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.LicenseNumber, &c.Address, &c.ReservationCount, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("client", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET prenom=$1, nom=$2, email=$3, telephone=$4, numero_permis=$5, adresse=$6, updated_on=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, c.FirstName, c.LastName, c.Email, c.Phone, c.LicenseNumber, c.Address, time.Now(), c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("client", c.ID)
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("client", id)
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context, searchQuery string, page, pageSize int64) ([]domain.Client, int64, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, prenom, nom, email, telephone, numero_permis, adresse, nombre_reservations, created_on, updated_on FROM clients`

	args := []interface{}{}
	argIdx := 1
	if searchQuery != "" {
		query += ` WHERE (prenom ILIKE $1 OR nom ILIKE $1 OR email ILIKE $1)`
		args = append(args, "%"+searchQuery+"%")
		argIdx++
	}

	var count int64
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += orderLimitOffset("nom ASC, prenom ASC", argIdx)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.LicenseNumber, &c.Address, &c.ReservationCount, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, 0, err
		}
		clients = append(clients, c)
	}
	return clients, count, rows.Err()
}
