package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"equiptrack-backend/internal/domain"
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

var subjectByKind = map[string]string{
	domain.KindReservationRequested: "New reservation request",
	domain.KindReservationApproved:  "Reservation approved",
	domain.KindReservationRejected:  "Reservation rejected",
	domain.KindReservationActivated: "Reservation started",
	domain.KindReservationCompleted: "Reservation completed",
	domain.KindReservationCancelled: "Reservation cancelled",
}

func (s *emailService) SendReservationEvent(ctx context.Context, toEmail, toName string, ev *domain.NotificationEvent) error {
	subject, ok := subjectByKind[ev.Kind]
	if !ok {
		subject = "Reservation update"
	}

	body := fmt.Sprintf("Hello %s,\n\nReservation #%d for item %s: %s.\nWindow: %s to %s.",
		toName, ev.ReservationID, ev.Payload["item_id"], subject,
		ev.Payload["start_date"], ev.Payload["return_date"])
	if reason := ev.Payload["reason"]; reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nBest regards,\nThe EquipTrack Team"

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}

	return nil
}
