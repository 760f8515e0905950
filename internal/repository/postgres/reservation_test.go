package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/repository/postgres"
)

func TestReservationRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "client_id", "vehicule_id", "agence_retrait_id", "agence_retour_id", "date_debut", "date_fin", "prix_total_cents", "caution_cents", "acompte_cents", "methode_paiement", "notes", "statut", "created_on", "updated_on"}).
			AddRow(41, 3, 7, 1, 2, now, now.AddDate(0, 0, 3), 15000, 3000, 5000, "card", "", "pending", now, now)

		mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id = \\$1").
			WithArgs(int64(41)).
			WillReturnRows(rows)

		reservation, err := repo.GetByID(ctx, 41)
		assert.NoError(t, err)
		assert.Equal(t, int64(41), reservation.ID)
		assert.Equal(t, domain.ReservationStatusPending, reservation.Status)
		assert.Equal(t, int64(15000), reservation.TotalPriceCents)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id = \\$1").
			WithArgs(int64(999)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		reservation, err := repo.GetByID(ctx, 999)
		assert.Nil(t, reservation)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReservationRepository_CountOverlapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	t.Run("Conflict", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM reservations").
			WithArgs(int64(7), start, end, int64(0)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		count, err := repo.CountOverlapping(ctx, 7, start, end, 0)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("ExcludesGivenReservation", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM reservations").
			WithArgs(int64(7), start, end, int64(41)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		count, err := repo.CountOverlapping(ctx, 7, start, end, 41)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestReservationRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()

	t.Run("FiltersByStatus", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM \\(SELECT (.+) FROM reservations").
			WithArgs("pending").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM reservations WHERE 1=1 AND statut = \\$1 ORDER BY date_debut DESC").
			WithArgs("pending", int64(20), int64(0)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "vehicule_id", "agence_retrait_id", "agence_retour_id", "date_debut", "date_fin", "prix_total_cents", "caution_cents", "acompte_cents", "methode_paiement", "notes", "statut", "created_on", "updated_on"}).
				AddRow(41, 3, 7, 1, 2, now, now, 15000, 3000, 0, "", "", "pending", now, now))

		reservations, total, err := repo.List(ctx, domain.ReservationStatusPending, 0, 0, 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, reservations, 1)
		assert.Equal(t, domain.ReservationStatusPending, reservations[0].Status)
	})
}
