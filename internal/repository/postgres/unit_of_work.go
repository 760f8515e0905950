package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carloc-backend/internal/docnum"
	"carloc-backend/internal/domain"
	"carloc-backend/internal/logger"
	"carloc-backend/internal/repository"
)

// unitOfWork runs multi-step booking writes inside one transaction.
// RunLocked takes pg_advisory_xact_lock on the vehicle id first, which
// serializes concurrent check-then-insert sequences for the same vehicle;
// the lock is released automatically at commit/rollback.
type unitOfWork struct {
	db *sql.DB
}

func NewUnitOfWork(db *sql.DB) repository.UnitOfWork {
	return &unitOfWork{db: db}
}

func (u *unitOfWork) Run(ctx context.Context, fn func(ops repository.TxOps) error) error {
	return u.run(ctx, 0, fn)
}

func (u *unitOfWork) RunLocked(ctx context.Context, vehicleID int64, fn func(ops repository.TxOps) error) error {
	return u.run(ctx, vehicleID, fn)
}

func (u *unitOfWork) run(ctx context.Context, vehicleID int64, fn func(ops repository.TxOps) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if vehicleID > 0 {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, vehicleID); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("acquire vehicle lock: %w", err)
		}
	}

	if err := fn(&txOps{ctx: ctx, tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("Transaction rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type txOps struct {
	ctx context.Context
	tx  *sql.Tx
}

func (o *txOps) CountOverlappingReservations(vehicleID int64, start, end time.Time, excludeID int64) (int64, error) {
	return countOverlappingReservations(o.ctx, o.tx, vehicleID, start, end, excludeID)
}

func (o *txOps) CountBlockingMaintenance(vehicleID int64, start, end time.Time) (int64, error) {
	return countBlockingMaintenance(o.ctx, o.tx, vehicleID, start, end)
}

func (o *txOps) CountActiveReservations(vehicleID int64) (int64, error) {
	query := `SELECT count(*) FROM reservations WHERE vehicule_id = $1 AND statut IN ('pending', 'confirmed', 'in_progress')`
	var count int64
	err := o.tx.QueryRowContext(o.ctx, query, vehicleID).Scan(&count)
	return count, err
}

func (o *txOps) InsertReservation(r *domain.Reservation) error {
	query := `INSERT INTO reservations (client_id, vehicule_id, agence_retrait_id, agence_retour_id, date_debut, date_fin, prix_total_cents, caution_cents, acompte_cents, methode_paiement, notes, statut, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	now := time.Now()
	return o.tx.QueryRowContext(o.ctx, query, r.ClientID, r.VehicleID, r.PickupAgencyID, r.ReturnAgencyID, r.StartDate, r.EndDate, r.TotalPriceCents, r.DepositCents, r.DownPaymentCents, r.PaymentMethod, r.Notes, r.Status, now, now).Scan(&r.ID)
}

func (o *txOps) UpdateReservation(r *domain.Reservation) error {
	query := `UPDATE reservations SET client_id=$1, vehicule_id=$2, agence_retrait_id=$3, agence_retour_id=$4, date_debut=$5, date_fin=$6, prix_total_cents=$7, caution_cents=$8, acompte_cents=$9, methode_paiement=$10, notes=$11, statut=$12, updated_on=$13 WHERE id=$14`
	res, err := o.tx.ExecContext(o.ctx, query, r.ClientID, r.VehicleID, r.PickupAgencyID, r.ReturnAgencyID, r.StartDate, r.EndDate, r.TotalPriceCents, r.DepositCents, r.DownPaymentCents, r.PaymentMethod, r.Notes, r.Status, time.Now(), r.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("reservation", r.ID)
	}
	return nil
}

func (o *txOps) SetReservationStatus(id int64, status domain.ReservationStatus) error {
	res, err := o.tx.ExecContext(o.ctx, `UPDATE reservations SET statut=$1, updated_on=$2 WHERE id=$3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("reservation", id)
	}
	return nil
}

func (o *txOps) DeleteReservation(id int64) error {
	res, err := o.tx.ExecContext(o.ctx, `DELETE FROM reservations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("reservation", id)
	}
	return nil
}

func (o *txOps) SetVehicleStatus(id int64, status domain.VehicleStatus) error {
	res, err := o.tx.ExecContext(o.ctx, `UPDATE vehicules SET statut=$1, updated_on=$2 WHERE id=$3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("vehicle", id)
	}
	return nil
}

func (o *txOps) IncrementClientReservations(clientID int64) error {
	res, err := o.tx.ExecContext(o.ctx, `UPDATE clients SET nombre_reservations = nombre_reservations + 1, updated_on=$1 WHERE id=$2`, time.Now(), clientID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("client", clientID)
	}
	return nil
}

func (o *txOps) InsertPayment(p *domain.Payment) error {
	return insertPayment(o.ctx, o.tx, p)
}

// ClaimDocumentNumber serializes same-month claims with an advisory lock
// keyed by the "PREFIX-YYYYMM-" scan prefix, then scans the last issued
// number and increments it. Because the insert shares this transaction,
// two concurrent writers cannot produce the same number.
func (o *txOps) ClaimDocumentNumber(t docnum.DocumentType, date time.Time) (string, error) {
	monthPrefix, err := docnum.MonthPrefix(t, date)
	if err != nil {
		return "", err
	}

	if _, err := o.tx.ExecContext(o.ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, monthPrefix); err != nil {
		return "", fmt.Errorf("acquire numbering lock: %w", err)
	}

	table := "devis"
	if t == docnum.TypeContract {
		table = "contrats"
	}
	var last sql.NullString
	query := `SELECT max(numero) FROM ` + table + ` WHERE numero LIKE $1`
	if err := o.tx.QueryRowContext(o.ctx, query, monthPrefix+"%").Scan(&last); err != nil {
		return "", err
	}

	return docnum.NextAfter(t, date, last.String)
}

func (o *txOps) InsertQuote(q *domain.Quote) error {
	query := `INSERT INTO devis (numero, client_id, vehicule_id, date_debut, date_fin, tarif_journalier_cents, nombre_jours, frais_chauffeur_cents, frais_livraison_cents, frais_carburant_cents, frais_kilometrage_cents, remise_cents, montant_total_cents, notes, statut, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING id`
	now := time.Now()
	return o.tx.QueryRowContext(o.ctx, query, q.Number, q.ClientID, q.VehicleID, q.StartDate, q.EndDate, q.DailyRateCents, q.Days, q.DriverFeeCents, q.DeliveryCents, q.FuelFeeCents, q.MileageCents, q.DiscountCents, q.TotalCents, q.Notes, q.Status, now, now).Scan(&q.ID)
}

func (o *txOps) InsertContract(c *domain.Contract) error {
	query := `INSERT INTO contrats (numero, devis_id, reservation_id, client_id, vehicule_id, date_debut, date_fin, tarif_journalier_cents, montant_total_cents, caution_cents, acompte_cents, reste_a_payer_cents, lieu_retrait, lieu_retour, notes, statut, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18) RETURNING id`
	now := time.Now()
	return o.tx.QueryRowContext(o.ctx, query, c.Number, c.QuoteID, c.ReservationID, c.ClientID, c.VehicleID, c.StartDate, c.EndDate, c.DailyRateCents, c.TotalCents, c.DepositCents, c.DownPaymentCents, c.BalanceDueCents, c.PickupLocation, c.ReturnLocation, c.Notes, c.Status, now, now).Scan(&c.ID)
}

func (o *txOps) ContractExistsForReservation(reservationID int64) (bool, error) {
	var exists bool
	err := o.tx.QueryRowContext(o.ctx, `SELECT EXISTS(SELECT 1 FROM contrats WHERE reservation_id = $1)`, reservationID).Scan(&exists)
	return exists, err
}

func (o *txOps) MarkQuoteConverted(quoteID, contractID int64, at time.Time) error {
	query := `UPDATE devis SET statut=$1, contrat_id=$2, converted_on=$3, updated_on=$4 WHERE id=$5`
	res, err := o.tx.ExecContext(o.ctx, query, domain.QuoteStatusConverted, contractID, at, at, quoteID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("quote", quoteID)
	}
	return nil
}

func (o *txOps) InsertMaintenance(m *domain.Maintenance) error {
	query := `INSERT INTO maintenances (vehicule_id, type, description, date_entree, date_sortie_prevue, cout_cents, statut, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return o.tx.QueryRowContext(o.ctx, query, m.VehicleID, m.Kind, m.Description, m.EntryDate, m.ExpectedExit, m.CostCents, m.Status, now, now).Scan(&m.ID)
}

func (o *txOps) UpdateMaintenance(m *domain.Maintenance) error {
	query := `UPDATE maintenances SET type=$1, description=$2, date_entree=$3, date_sortie_prevue=$4, cout_cents=$5, statut=$6, updated_on=$7 WHERE id=$8`
	res, err := o.tx.ExecContext(o.ctx, query, m.Kind, m.Description, m.EntryDate, m.ExpectedExit, m.CostCents, m.Status, time.Now(), m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("maintenance", m.ID)
	}
	return nil
}
