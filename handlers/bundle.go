// File: a1care/handlers/bundle.go
package handlers

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	Booking  *BookingHandler
	Slots    *SlotHandler
	Catalog  *CatalogHandler
	Provider *ProviderHandler
}
