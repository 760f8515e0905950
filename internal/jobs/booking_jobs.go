package jobs

import (
	"context"
	"time"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/logger"
	"carloc-backend/internal/service"
)

// FlagOverdueReservations reports in_progress reservations whose end date
// has passed without the vehicle being returned. The status itself is not
// touched: returns are recorded by agents, the job only surfaces the lag.
func (jr *JobRunner) FlagOverdueReservations() {
	jr.runWithRecovery("FlagOverdueReservations", func() {
		ctx := context.Background()

		query := `
			SELECT r.id, r.date_fin, c.prenom, c.nom, v.marque, v.modele, v.immatriculation
			FROM reservations r
			JOIN clients c ON c.id = r.client_id
			JOIN vehicules v ON v.id = r.vehicule_id
			WHERE r.statut = 'in_progress'
			  AND r.date_fin < $1
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now())
		if err != nil {
			logger.Error("Failed to query overdue reservations", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		adminEmail := jr.config.SMTP.AdminEmail
		for rows.Next() {
			var (
				id                  int64
				endDate             time.Time
				firstName, lastName string
				brand, model, plate string
			)
			if err := rows.Scan(&id, &endDate, &firstName, &lastName, &brand, &model, &plate); err != nil {
				logger.Error("Failed to scan overdue reservation", "error", err)
				continue
			}
			count++

			clientName := firstName + " " + lastName
			vehicleLabel := brand + " " + model + " (" + plate + ")"
			logger.Warn("Reservation overdue",
				"reservation_id", id,
				"client", clientName,
				"vehicle", vehicleLabel,
				"end_date", endDate)

			if adminEmail != "" {
				if err := jr.services.Email.SendOverdueAlert(ctx, adminEmail, id, clientName, vehicleLabel, endDate); err != nil {
					logger.Error("Failed to send overdue alert", "reservation_id", id, "error", err)
				}
			}
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue reservations", "error", err)
			return
		}

		logger.Info("Overdue reservation sweep done", "count", count)
	})
}

// ReleaseExpiredMaintenance closes maintenance windows whose expected exit
// has passed and frees the vehicles. The close goes through the service so
// the vehicle-release guard applies.
func (jr *JobRunner) ReleaseExpiredMaintenance() {
	jr.runWithRecovery("ReleaseExpiredMaintenance", func() {
		ctx := context.Background()

		expired, err := jr.store.MaintenanceRepository.ListExpiredOpen(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list expired maintenance", "error", err)
			return
		}

		closed := 0
		for _, m := range expired {
			_, err := jr.services.Maintenance.Update(ctx, m.ID, &service.MaintenanceInput{
				VehicleID:    m.VehicleID,
				Kind:         m.Kind,
				Description:  m.Description,
				EntryDate:    m.EntryDate,
				ExpectedExit: m.ExpectedExit,
				CostCents:    m.CostCents,
				Status:       domain.MaintenanceStatusDone,
			})
			if err != nil {
				logger.Error("Failed to close expired maintenance",
					"maintenance_id", m.ID,
					"vehicle_id", m.VehicleID,
					"error", err)
				continue
			}
			closed++
		}

		logger.Info("Expired maintenance released", "expired", len(expired), "closed", closed)
	})
}
