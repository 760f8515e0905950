package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, reference_type, reference_id, reference, montant_total_cents, montant_paye_cents, methode, statut, date_paiement, created_on, updated_on`

func scanPayment(row interface{ Scan(...any) error }, p *domain.Payment) error {
	return row.Scan(&p.ID, &p.Target.Kind, &p.Target.ID, &p.Reference, &p.TotalCents, &p.PaidCents, &p.Method, &p.Status, &p.PaidOn, &p.CreatedOn, &p.UpdatedOn)
}

func insertPayment(ctx context.Context, q querier, p *domain.Payment) error {
	query := `INSERT INTO paiements (reference_type, reference_id, reference, montant_total_cents, montant_paye_cents, methode, statut, date_paiement, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return q.QueryRowContext(ctx, query, p.Target.Kind, p.Target.ID, p.Reference, p.TotalCents, p.PaidCents, p.Method, p.Status, p.PaidOn, now, now).Scan(&p.ID)
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return insertPayment(ctx, r.db, p)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := scanPayment(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM paiements WHERE id = $1`, id), p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("payment", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE paiements SET montant_total_cents=$1, montant_paye_cents=$2, methode=$3, statut=$4, date_paiement=$5, updated_on=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, p.TotalCents, p.PaidCents, p.Method, p.Status, p.PaidOn, time.Now(), p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("payment", p.ID)
	}
	return nil
}

func (r *paymentRepository) ListByTarget(ctx context.Context, target domain.PaymentTarget) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM paiements WHERE reference_type = $1 AND reference_id = $2 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, target.Kind, target.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) List(ctx context.Context, page, pageSize int64) ([]domain.Payment, int64, error) {
	offset := (page - 1) * pageSize

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM paiements`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + paymentColumns + ` FROM paiements` + orderLimitOffset("created_on DESC", 1)
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	return payments, count, rows.Err()
}
