package models

import "time"

// Provider is a medical provider profile (doctor, nurse, lab technician).
// Only the fields the booking engine reads are modeled here; credentialing
// and document verification live in the onboarding system.
type Provider struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Specialty       string    `bson:"specialty,omitempty" json:"specialty,omitempty"`
	ConsultationFee float64   `bson:"consultationFee" json:"consultationFee"` // 0 means unset; resolver applies the configured default
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}
