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

type quoteRepository struct {
	db *sql.DB
}

func NewQuoteRepository(db *sql.DB) repository.QuoteRepository {
	return &quoteRepository{db: db}
}

const quoteColumns = `id, numero, client_id, vehicule_id, date_debut, date_fin, tarif_journalier_cents, nombre_jours, frais_chauffeur_cents, frais_livraison_cents, frais_carburant_cents, frais_kilometrage_cents, remise_cents, montant_total_cents, notes, statut, contrat_id, converted_on, created_on, updated_on`

func scanQuote(row interface{ Scan(...any) error }, q *domain.Quote) error {
	return row.Scan(&q.ID, &q.Number, &q.ClientID, &q.VehicleID, &q.StartDate, &q.EndDate, &q.DailyRateCents, &q.Days, &q.DriverFeeCents, &q.DeliveryCents, &q.FuelFeeCents, &q.MileageCents, &q.DiscountCents, &q.TotalCents, &q.Notes, &q.Status, &q.ContractID, &q.ConvertedOn, &q.CreatedOn, &q.UpdatedOn)
}

func (r *quoteRepository) GetByID(ctx context.Context, id int64) (*domain.Quote, error) {
	q := &domain.Quote{}
	err := scanQuote(r.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM devis WHERE id = $1`, id), q)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("quote", id)
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *quoteRepository) Update(ctx context.Context, q *domain.Quote) error {
	query := `UPDATE devis SET client_id=$1, vehicule_id=$2, date_debut=$3, date_fin=$4, tarif_journalier_cents=$5, nombre_jours=$6,
	          frais_chauffeur_cents=$7, frais_livraison_cents=$8, frais_carburant_cents=$9, frais_kilometrage_cents=$10,
	          remise_cents=$11, montant_total_cents=$12, notes=$13, statut=$14, updated_on=$15 WHERE id=$16`
	res, err := r.db.ExecContext(ctx, query, q.ClientID, q.VehicleID, q.StartDate, q.EndDate, q.DailyRateCents, q.Days,
		q.DriverFeeCents, q.DeliveryCents, q.FuelFeeCents, q.MileageCents,
		q.DiscountCents, q.TotalCents, q.Notes, q.Status, time.Now(), q.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("quote", q.ID)
	}
	return nil
}

func (r *quoteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM devis WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("quote", id)
	}
	return nil
}

func (r *quoteRepository) List(ctx context.Context, status domain.QuoteStatus, clientID, page, pageSize int64) ([]domain.Quote, int64, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + quoteColumns + ` FROM devis WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" AND statut = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	if clientID > 0 {
		query += fmt.Sprintf(" AND client_id = $%d", argIdx)
		args = append(args, clientID)
		argIdx++
	}

	var count int64
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += orderLimitOffset("created_on DESC", argIdx)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var quotes []domain.Quote
	for rows.Next() {
		var q domain.Quote
		if err := scanQuote(rows, &q); err != nil {
			return nil, 0, err
		}
		quotes = append(quotes, q)
	}
	return quotes, count, rows.Err()
}

func (r *quoteRepository) CountByStatus(ctx context.Context) (map[domain.QuoteStatus]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT statut, count(*) FROM devis GROUP BY statut`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[domain.QuoteStatus]int64{}
	for rows.Next() {
		var status domain.QuoteStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
