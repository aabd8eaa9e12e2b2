package catalog

import (
	"context"
	"errors"

	"a1care/models"
)

// ErrItemNotFound means the reference did not resolve to an active bookable
// item of the expected kind. Callers reject the booking request with a client
// error; this is never retried.
var ErrItemNotFound = errors.New("bookable item not found")

// Resolver turns a (kind, id) bookable reference into a price and a display
// identity.
type Resolver interface {
	Resolve(ctx context.Context, kind models.ItemKind, id string) (*models.ResolvedItem, error)
}
