package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"carloc-backend/internal/docnum"
	"carloc-backend/internal/domain"
	"carloc-backend/internal/repository"
	"carloc-backend/internal/repository/postgres"
)

func TestUnitOfWork_Run(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	uow := postgres.NewUnitOfWork(db)
	ctx := context.Background()

	t.Run("CommitsOnSuccess", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE vehicules SET statut").
			WithArgs("available", sqlmock.AnyArg(), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := uow.Run(ctx, func(ops repository.TxOps) error {
			return ops.SetVehicleStatus(7, domain.VehicleStatusAvailable)
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnError", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := uow.Run(ctx, func(ops repository.TxOps) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUnitOfWork_RunLocked(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	uow := postgres.NewUnitOfWork(db)
	ctx := context.Background()

	t.Run("TakesTheVehicleLockFirst", func(t *testing.T) {
		start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 3)

		mock.ExpectBegin()
		mock.ExpectExec("SELECT pg_advisory_xact_lock\\(\\$1\\)").
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM reservations").
			WithArgs(int64(7), start, end, int64(0)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectCommit()

		err := uow.RunLocked(ctx, 7, func(ops repository.TxOps) error {
			count, err := ops.CountOverlappingReservations(7, start, end, 0)
			assert.Equal(t, int64(0), count)
			return err
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTxOps_ClaimDocumentNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	uow := postgres.NewUnitOfWork(db)
	ctx := context.Background()
	date := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("IncrementsTheLastIssuedNumber", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("SELECT pg_advisory_xact_lock\\(hashtext\\(\\$1\\)\\)").
			WithArgs("DEV-202609-").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT max\\(numero\\) FROM devis WHERE numero LIKE \\$1").
			WithArgs("DEV-202609-%").
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow("DEV-202609-0002"))
		mock.ExpectCommit()

		err := uow.Run(ctx, func(ops repository.TxOps) error {
			number, err := ops.ClaimDocumentNumber(docnum.TypeQuote, date)
			assert.Equal(t, "DEV-202609-0003", number)
			return err
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StartsAtOneInAFreshMonth", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("SELECT pg_advisory_xact_lock\\(hashtext\\(\\$1\\)\\)").
			WithArgs("CTR-202609-").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT max\\(numero\\) FROM contrats WHERE numero LIKE \\$1").
			WithArgs("CTR-202609-%").
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))
		mock.ExpectCommit()

		err := uow.Run(ctx, func(ops repository.TxOps) error {
			number, err := ops.ClaimDocumentNumber(docnum.TypeContract, date)
			assert.Equal(t, "CTR-202609-0001", number)
			return err
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTxOps_MarkQuoteConverted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	uow := postgres.NewUnitOfWork(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("StampsTheQuote", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE devis SET statut=\\$1, contrat_id=\\$2, converted_on=\\$3").
			WithArgs("converti", int64(9), now, now, int64(12)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := uow.Run(ctx, func(ops repository.TxOps) error {
			return ops.MarkQuoteConverted(12, 9, now)
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingQuoteIsNotFound", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE devis SET statut=\\$1").
			WithArgs("converti", int64(9), now, now, int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := uow.Run(ctx, func(ops repository.TxOps) error {
			return ops.MarkQuoteConverted(99, 9, now)
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
