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

type contractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

const contractColumns = `id, numero, devis_id, reservation_id, client_id, vehicule_id, date_debut, date_fin, tarif_journalier_cents, montant_total_cents, caution_cents, acompte_cents, reste_a_payer_cents, lieu_retrait, lieu_retour, km_depart, km_retour, niveau_carburant_depart, niveau_carburant_retour, signature_client, signature_agent, notes, statut, created_on, updated_on`

func scanContract(row interface{ Scan(...any) error }, c *domain.Contract) error {
	return row.Scan(&c.ID, &c.Number, &c.QuoteID, &c.ReservationID, &c.ClientID, &c.VehicleID, &c.StartDate, &c.EndDate, &c.DailyRateCents, &c.TotalCents, &c.DepositCents, &c.DownPaymentCents, &c.BalanceDueCents, &c.PickupLocation, &c.ReturnLocation, &c.OdometerOut, &c.OdometerIn, &c.FuelLevelOut, &c.FuelLevelIn, &c.SignedByClient, &c.SignedByAgent, &c.Notes, &c.Status, &c.CreatedOn, &c.UpdatedOn)
}

func (r *contractRepository) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	c := &domain.Contract{}
	err := scanContract(r.db.QueryRowContext(ctx, `SELECT `+contractColumns+` FROM contrats WHERE id = $1`, id), c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("contract", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *contractRepository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.Contract, error) {
	c := &domain.Contract{}
	err := scanContract(r.db.QueryRowContext(ctx, `SELECT `+contractColumns+` FROM contrats WHERE reservation_id = $1`, reservationID), c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("contract for reservation", reservationID)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *contractRepository) Update(ctx context.Context, c *domain.Contract) error {
	query := `UPDATE contrats SET date_debut=$1, date_fin=$2, tarif_journalier_cents=$3, montant_total_cents=$4, caution_cents=$5,
	          acompte_cents=$6, reste_a_payer_cents=$7, lieu_retrait=$8, lieu_retour=$9, km_depart=$10, km_retour=$11,
	          niveau_carburant_depart=$12, niveau_carburant_retour=$13, signature_client=$14, signature_agent=$15,
	          notes=$16, statut=$17, updated_on=$18 WHERE id=$19`
	res, err := r.db.ExecContext(ctx, query, c.StartDate, c.EndDate, c.DailyRateCents, c.TotalCents, c.DepositCents,
		c.DownPaymentCents, c.BalanceDueCents, c.PickupLocation, c.ReturnLocation, c.OdometerOut, c.OdometerIn,
		c.FuelLevelOut, c.FuelLevelIn, c.SignedByClient, c.SignedByAgent,
		c.Notes, c.Status, time.Now(), c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("contract", c.ID)
	}
	return nil
}

func (r *contractRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contrats WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("contract", id)
	}
	return nil
}

func (r *contractRepository) List(ctx context.Context, status domain.ContractStatus, clientID, page, pageSize int64) ([]domain.Contract, int64, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + contractColumns + ` FROM contrats WHERE 1=1`

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

	var contracts []domain.Contract
	for rows.Next() {
		var c domain.Contract
		if err := scanContract(rows, &c); err != nil {
			return nil, 0, err
		}
		contracts = append(contracts, c)
	}
	return contracts, count, rows.Err()
}

func (r *contractRepository) CountByStatus(ctx context.Context) (map[domain.ContractStatus]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT statut, count(*) FROM contrats GROUP BY statut`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[domain.ContractStatus]int64{}
	for rows.Next() {
		var status domain.ContractStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
