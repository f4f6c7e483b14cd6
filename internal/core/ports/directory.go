package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
)

// ClientSnapshot is the client as shown in notifications.
type ClientSnapshot struct {
	ID       kernel.UUID `json:"id"`
	Name     string      `json:"name"`
	LastName string      `json:"lastname"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone,omitempty"`
}

// AddressSnapshot is a delivery address. Location is nil when the address
// was stored without coordinates.
type AddressSnapshot struct {
	ID           kernel.UUID      `json:"id"`
	Address      string           `json:"address"`
	Neighborhood string           `json:"neighborhood"`
	Alias        string           `json:"alias,omitempty"`
	Location     *kernel.GeoPoint `json:"-"`
}

// Directory gives read access to users and addresses owned by other parts
// of the platform.
type Directory interface {
	Client(ctx context.Context, id kernel.UUID) (ClientSnapshot, error)
	Address(ctx context.Context, id kernel.UUID) (AddressSnapshot, error)
}
