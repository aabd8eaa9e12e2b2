package models

import "time"

// ItemKind discriminates the two bookable item variants.
type ItemKind string

const (
	ItemKindConsultation ItemKind = "provider-consultation"
	ItemKindCatalogItem  ItemKind = "catalog-item"
)

// FulfillmentPath selects which status state machine governs a reservation.
// It is set once at creation and never changes.
type FulfillmentPath string

const (
	PathSelfService   FulfillmentPath = "self-service"
	PathStaffMediated FulfillmentPath = "staff-mediated"
)

// ReservationStatus values. The two paths share only the terminal statuses.
type ReservationStatus string

const (
	// Self-service path.
	StatusPendingPayment ReservationStatus = "PendingPayment"
	StatusUpcoming       ReservationStatus = "Upcoming"

	// Staff-mediated path.
	StatusNew       ReservationStatus = "New"
	StatusAccepted  ReservationStatus = "Accepted"
	StatusAssigned  ReservationStatus = "Assigned"
	StatusConfirmed ReservationStatus = "Confirmed"

	// Terminal, shared by both paths.
	StatusCompleted ReservationStatus = "Completed"
	StatusCancelled ReservationStatus = "Cancelled"
)

// IsTerminal reports whether no further transitions are possible.
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
)

// Reservation is the booking record. The price components are frozen at
// creation time; later catalog or fee edits never alter an existing record.
type Reservation struct {
	ID          string   `bson:"id" json:"id"`
	RequesterID string   `bson:"requesterId" json:"requesterId"`
	ItemKind    ItemKind `bson:"itemKind" json:"itemKind"`
	ItemID      string   `bson:"itemId" json:"itemId"`
	ItemName    string   `bson:"itemName" json:"itemName"`
	ProviderID  string   `bson:"providerId,omitempty" json:"providerId,omitempty"`
	Date        string   `bson:"date" json:"date"`
	SlotID      string   `bson:"slotId,omitempty" json:"slotId,omitempty"`

	BaseFee     float64 `bson:"baseFee" json:"baseFee"`
	ItemPrice   float64 `bson:"itemPrice" json:"itemPrice"`
	PlatformFee float64 `bson:"platformFee" json:"platformFee"`
	Total       float64 `bson:"total" json:"total"`

	Status        ReservationStatus `bson:"status" json:"status"`
	PaymentStatus PaymentStatus     `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod PaymentMethod     `bson:"paymentMethod" json:"paymentMethod"`
	Path          FulfillmentPath   `bson:"fulfillmentPath" json:"fulfillmentPath"`

	AssignedProviderID string    `bson:"assignedProviderId,omitempty" json:"assignedProviderId,omitempty"`
	CancelReason       string    `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PriceQuote is the output of the pricing calculator.
type PriceQuote struct {
	BaseFee     float64 `json:"baseFee"`
	ItemPrice   float64 `json:"itemPrice"`
	PlatformFee float64 `json:"platformFee"`
	Total       float64 `json:"total"`
}
