package models

// ReminderPayload is the asynq task payload for an appointment reminder.
type ReminderPayload struct {
	ReservationID string `json:"reservationId"`
	RequesterID   string `json:"requesterId"`
	ProviderID    string `json:"providerId,omitempty"`
	ItemName      string `json:"itemName"`
	Date          string `json:"date"`
	Start         int    `json:"start"`
}
