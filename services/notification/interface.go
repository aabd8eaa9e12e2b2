package notification

import (
	"context"

	"a1care/models"

	"go.uber.org/zap"
)

// Service is the delivery collaborator contract. Actual push/SMS delivery is
// owned by another system; the booking engine only emits events.
type Service interface {
	BookingStatusChanged(ctx context.Context, res *models.Reservation, previous models.ReservationStatus) error
	Reminder(ctx context.Context, payload models.ReminderPayload) error
}

// LogNotificationService is the default implementation: it records every
// event on the application log.
type LogNotificationService struct {
	Logger *zap.Logger
}

func (s *LogNotificationService) BookingStatusChanged(ctx context.Context, res *models.Reservation, previous models.ReservationStatus) error {
	s.Logger.Info("booking status changed",
		zap.String("reservationId", res.ID),
		zap.String("requesterId", res.RequesterID),
		zap.String("from", string(previous)),
		zap.String("to", string(res.Status)),
		zap.String("path", string(res.Path)),
	)
	return nil
}

func (s *LogNotificationService) Reminder(ctx context.Context, payload models.ReminderPayload) error {
	s.Logger.Info("appointment reminder due",
		zap.String("reservationId", payload.ReservationID),
		zap.String("requesterId", payload.RequesterID),
		zap.String("date", payload.Date),
		zap.Int("start", payload.Start),
	)
	return nil
}
