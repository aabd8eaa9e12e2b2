package models

import "time"

// Slot is a fixed window on a provider's calendar that can be reserved by
// exactly one reservation at a time. Start and End are minutes from midnight
// (e.g. 600 for 10:00 AM). Sequence is unique within a provider+date.
type Slot struct {
	ID            string    `bson:"id" json:"id"`
	ProviderID    string    `bson:"providerId" json:"providerId"`
	Date          string    `bson:"date" json:"date"` // "2006-01-02"
	Sequence      int       `bson:"sequence" json:"sequence"`
	Start         int       `bson:"start" json:"start"`
	End           int       `bson:"end" json:"end"`
	Reserved      bool      `bson:"reserved" json:"reserved"`
	ReservationID string    `bson:"reservationId,omitempty" json:"reservationId,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// SlotWindow is a (start, end) pair used when a provider generates slots in bulk.
type SlotWindow struct {
	Start int `json:"start" binding:"min=0"`
	End   int `json:"end" binding:"required"`
}

// GenerateSlotsRequest is the payload for bulk slot generation.
type GenerateSlotsRequest struct {
	Date    string       `json:"date" binding:"required"`
	Windows []SlotWindow `json:"windows" binding:"required,min=1"`
}
