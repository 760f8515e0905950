package service

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *emailService) SendReservationConfirmation(ctx context.Context, clientEmail, clientName, vehicleLabel string, start, end time.Time) error {
	body := fmt.Sprintf("Bonjour %s,\n\nVotre réservation du véhicule %s est enregistrée du %s au %s.\n\nCordialement,\nVotre agence de location", clientName, vehicleLabel, start.Format("02/01/2006"), end.Format("02/01/2006"))
	return s.send(clientEmail, "Confirmation de réservation", body)
}

func (s *emailService) SendReservationCancellation(ctx context.Context, clientEmail, clientName, vehicleLabel string) error {
	body := fmt.Sprintf("Bonjour %s,\n\nVotre réservation du véhicule %s a été annulée.\n\nCordialement,\nVotre agence de location", clientName, vehicleLabel)
	return s.send(clientEmail, "Annulation de réservation", body)
}

func (s *emailService) SendContractReady(ctx context.Context, clientEmail, clientName, contractNumber string) error {
	body := fmt.Sprintf("Bonjour %s,\n\nVotre contrat de location %s est prêt à être signé en agence.\n\nCordialement,\nVotre agence de location", clientName, contractNumber)
	return s.send(clientEmail, fmt.Sprintf("Contrat %s prêt", contractNumber), body)
}

func (s *emailService) SendOverdueAlert(ctx context.Context, adminEmail string, reservationID int64, clientName, vehicleLabel string, end time.Time) error {
	body := fmt.Sprintf("La réservation %d (%s, véhicule %s) a dépassé sa date de fin prévue du %s sans retour enregistré.", reservationID, clientName, vehicleLabel, end.Format("02/01/2006"))
	return s.send(adminEmail, fmt.Sprintf("Réservation %d en retard", reservationID), body)
}
