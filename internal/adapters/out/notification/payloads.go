package notification

import (
	"time"

	"pizzeria/internal/core/ports"
)

// Event names pushed to subscribers.
const (
	EventNewOrder     = "new_order"
	EventStatusUpdate = "status_update"
)

// NewOrderPayload is pushed to the branch when an order is placed.
type NewOrderPayload struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"id_client"`
	BranchID      string    `json:"id_branch"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	Subtotal      string    `json:"subtotal"`
	DeliveryFee   string    `json:"delivery_fee"`
	Total         string    `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
	ProductsCount int       `json:"products_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// StatusUpdatePayload is pushed to the client on every transition. Client
// and Address are null when they could not be read.
type StatusUpdatePayload struct {
	ID             string                `json:"id"`
	ClientID       string                `json:"id_client"`
	BranchID       string                `json:"id_branch"`
	Status         string                `json:"status"`
	PreviousStatus string                `json:"previous_status"`
	CourierID      *string               `json:"id_courier"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Client         *ports.ClientSnapshot `json:"client"`
	Address        *AddressPayload       `json:"address"`
	Timestamp      time.Time             `json:"timestamp"`
}

type AddressPayload struct {
	ID           string   `json:"id"`
	Address      string   `json:"address"`
	Neighborhood string   `json:"neighborhood"`
	Alias        string   `json:"alias,omitempty"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
}

func newOrderPayload(event ports.NewOrderEvent) NewOrderPayload {
	return NewOrderPayload{
		ID:            event.ID.String(),
		ClientID:      event.ClientID.String(),
		BranchID:      event.BranchID.String(),
		Status:        event.Status.String(),
		PaymentMethod: event.PaymentMethod.String(),
		Subtotal:      event.Subtotal.StringFixed(2),
		DeliveryFee:   event.DeliveryFee.StringFixed(2),
		Total:         event.Total.StringFixed(2),
		CreatedAt:     event.CreatedAt,
		ProductsCount: event.ProductsCount,
		Timestamp:     event.Timestamp,
	}
}

func statusUpdatePayload(event ports.StatusChangedEvent) StatusUpdatePayload {
	payload := StatusUpdatePayload{
		ID:             event.ID.String(),
		ClientID:       event.ClientID.String(),
		BranchID:       event.BranchID.String(),
		Status:         event.Status.String(),
		PreviousStatus: event.PreviousStatus.String(),
		UpdatedAt:      event.UpdatedAt,
		Client:         event.Client,
		Timestamp:      event.Timestamp,
	}
	if event.CourierID != nil {
		id := event.CourierID.String()
		payload.CourierID = &id
	}
	if a := event.Address; a != nil {
		payload.Address = &AddressPayload{
			ID:           a.ID.String(),
			Address:      a.Address,
			Neighborhood: a.Neighborhood,
			Alias:        a.Alias,
		}
		if a.Location != nil {
			lat, lng := a.Location.Lat(), a.Location.Lng()
			payload.Address.Lat = &lat
			payload.Address.Lng = &lng
		}
	}
	return payload
}
