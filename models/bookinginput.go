package models

// CreateBookingInput is the payload for creating a reservation.
// Requester identity and role come from the auth middleware, not the body.
type CreateBookingInput struct {
	ItemKind      ItemKind      `json:"itemKind" binding:"required"`
	ItemID        string        `json:"itemId" binding:"required"`
	Date          string        `json:"date" binding:"required"`
	SlotID        string        `json:"slotId,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod" binding:"required"`
}

// TransitionInput is the payload for a booking status action.
type TransitionInput struct {
	AssigneeID    string        `json:"assigneeId,omitempty"`    // assign
	Reason        string        `json:"reason,omitempty"`        // cancel
	PaymentStatus PaymentStatus `json:"paymentStatus,omitempty"` // complete override
}
