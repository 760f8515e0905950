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

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, client_id, vehicule_id, agence_retrait_id, agence_retour_id, date_debut, date_fin, prix_total_cents, caution_cents, acompte_cents, methode_paiement, notes, statut, created_on, updated_on`

func scanReservation(row interface{ Scan(...any) error }, rs *domain.Reservation) error {
	return row.Scan(&rs.ID, &rs.ClientID, &rs.VehicleID, &rs.PickupAgencyID, &rs.ReturnAgencyID, &rs.StartDate, &rs.EndDate, &rs.TotalPriceCents, &rs.DepositCents, &rs.DownPaymentCents, &rs.PaymentMethod, &rs.Notes, &rs.Status, &rs.CreatedOn, &rs.UpdatedOn)
}

// countOverlappingReservations reproduces the legacy three-clause overlap
// condition (start-in-range, end-in-range, fully-containing) with strict
// bounds, which is equivalent to half-open overlap: touching ranges do not
// conflict. Runs against both *sql.DB and *sql.Tx.
func countOverlappingReservations(ctx context.Context, q querier, vehicleID int64, start, end time.Time, excludeID int64) (int64, error) {
	query := `SELECT count(*) FROM reservations
	          WHERE vehicule_id = $1
	            AND statut IN ('pending', 'confirmed', 'in_progress')
	            AND ($4 = 0 OR id <> $4)
	            AND (
	                  (date_debut >= $2 AND date_debut < $3)
	               OR (date_fin > $2 AND date_fin <= $3)
	               OR (date_debut < $2 AND date_fin > $3)
	            )`
	var count int64
	err := q.QueryRowContext(ctx, query, vehicleID, start, end, excludeID).Scan(&count)
	return count, err
}

// countBlockingMaintenance counts maintenance windows occupying the
// vehicle over [start, end). A null expected exit is open-ended and blocks
// any booking that starts before its own end.
func countBlockingMaintenance(ctx context.Context, q querier, vehicleID int64, start, end time.Time) (int64, error) {
	query := `SELECT count(*) FROM maintenances
	          WHERE vehicule_id = $1
	            AND statut <> 'done'
	            AND date_entree < $3
	            AND (date_sortie_prevue IS NULL OR date_sortie_prevue > $2)`
	var count int64
	err := q.QueryRowContext(ctx, query, vehicleID, start, end).Scan(&count)
	return count, err
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	rs := &domain.Reservation{}
	err := scanReservation(r.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id), rs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("reservation", id)
	}
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (r *reservationRepository) List(ctx context.Context, status domain.ReservationStatus, clientID, vehicleID, page, pageSize int64) ([]domain.Reservation, int64, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`

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
	if vehicleID > 0 {
		query += fmt.Sprintf(" AND vehicule_id = $%d", argIdx)
		args = append(args, vehicleID)
		argIdx++
	}

	var count int64
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += orderLimitOffset("date_debut DESC", argIdx)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var rs domain.Reservation
		if err := scanReservation(rows, &rs); err != nil {
			return nil, 0, err
		}
		reservations = append(reservations, rs)
	}
	return reservations, count, rows.Err()
}

func (r *reservationRepository) CountOverlapping(ctx context.Context, vehicleID int64, start, end time.Time, excludeID int64) (int64, error) {
	return countOverlappingReservations(ctx, r.db, vehicleID, start, end, excludeID)
}
