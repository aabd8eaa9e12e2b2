package models

import "time"

// ServiceMode describes how a catalog service is delivered.
type ServiceMode string

const (
	ModeOnSite    ServiceMode = "on-site"
	ModeRemote    ServiceMode = "remote"
	ModeHomeVisit ServiceMode = "home-visit"
)

// ServiceCategory is the root level of the three-level service catalog.
type ServiceCategory struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ServiceSubCategory is the middle catalog level. It carries no price.
type ServiceSubCategory struct {
	ID         string    `bson:"id" json:"id"`
	CategoryID string    `bson:"categoryId" json:"categoryId"`
	Name       string    `bson:"name" json:"name"`
	Active     bool      `bson:"active" json:"active"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ServiceItem is a bookable catalog leaf. Price and mode are defined only here;
// a zero price is valid and means the item is free (e.g. prescription upload).
type ServiceItem struct {
	ID            string      `bson:"id" json:"id"`
	SubCategoryID string      `bson:"subCategoryId" json:"subCategoryId"`
	Name          string      `bson:"name" json:"name"`
	Price         float64     `bson:"price" json:"price"`
	Mode          ServiceMode `bson:"mode" json:"mode"`
	Active        bool        `bson:"active" json:"active"`
	CreatedAt     time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// ResolvedItem is what the catalog resolver produces for a bookable reference.
type ResolvedItem struct {
	Kind        ItemKind    `json:"kind"`
	ID          string      `json:"id"`
	DisplayName string      `json:"displayName"`
	Price       float64     `json:"price"`
	Mode        ServiceMode `json:"mode,omitempty"`
	ProviderID  string      `json:"providerId,omitempty"`
}
