package http

import (
	"time"

	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
)

// NewOrderRequest is the body of POST /orders. Prices are never accepted
// from the client. Request keys are suffixed (address_id) while responses
// keep the id_ prefix of the order views.
type NewOrderRequest struct {
	AddressID     kernel.UUID      `json:"address_id"`
	BranchID      kernel.UUID      `json:"branch_id"`
	PaymentMethod string           `json:"payment_method"`
	Products      []ProductRequest `json:"products"`
}

type ProductRequest struct {
	ProductID kernel.UUID   `json:"product_id"`
	Quantity  int           `json:"quantity"`
	SizeID    *kernel.UUID  `json:"size_id"`
	AddonIDs  []kernel.UUID `json:"addon_ids"`
}

func (r NewOrderRequest) lines() []services.LineRequest {
	lines := make([]services.LineRequest, len(r.Products))
	for i, p := range r.Products {
		lines[i] = services.LineRequest{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
			SizeID:    p.SizeID,
			AddonIDs:  p.AddonIDs,
		}
	}
	return lines
}

// StatusRequest is the body of the status change endpoints.
type StatusRequest struct {
	Status string `json:"status"`
}

// Order is an order as it stands after a command.
type Order struct {
	ID            kernel.UUID  `json:"id"`
	ClientID      kernel.UUID  `json:"id_client"`
	AddressID     kernel.UUID  `json:"id_address"`
	BranchID      kernel.UUID  `json:"id_branch"`
	CourierID     *kernel.UUID `json:"id_courier"`
	Status        order.Status `json:"status"`
	PaymentMethod string       `json:"payment_method"`
	Subtotal      string       `json:"subtotal"`
	DeliveryFee   string       `json:"delivery_fee"`
	Total         string       `json:"total"`
	ProductsCount int          `json:"products_count,omitempty"`
	Items         []OrderItem  `json:"items,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type OrderItem struct {
	ID           kernel.UUID  `json:"id"`
	ProductID    kernel.UUID  `json:"id_product"`
	SizeID       *kernel.UUID `json:"id_size"`
	Quantity     int          `json:"quantity"`
	PricePerUnit string       `json:"price_per_unit"`
	Addons       []ItemAddon  `json:"addons"`
}

type ItemAddon struct {
	ID              kernel.UUID `json:"id"`
	AddonID         kernel.UUID `json:"id_addon"`
	AddonName       string      `json:"addon_name,omitempty"`
	PriceAtPurchase string      `json:"price_at_purchase"`
}

func toOrder(o *order.Order) Order {
	resp := Order{
		ID:            o.ID(),
		ClientID:      o.ClientID(),
		AddressID:     o.AddressID(),
		BranchID:      o.BranchID(),
		CourierID:     o.Courier(),
		Status:        o.Status(),
		PaymentMethod: o.PaymentMethod().String(),
		Subtotal:      o.Subtotal().StringFixed(2),
		DeliveryFee:   o.DeliveryFee().StringFixed(2),
		Total:         o.Total().StringFixed(2),
		ProductsCount: o.ProductsCount(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
	for _, item := range o.Items() {
		addons := make([]ItemAddon, 0, len(item.Addons()))
		for _, a := range item.Addons() {
			addons = append(addons, ItemAddon{
				ID:              a.ID(),
				AddonID:         a.AddonID(),
				PriceAtPurchase: a.PriceAtPurchase().StringFixed(2),
			})
		}
		resp.Items = append(resp.Items, OrderItem{
			ID:           item.ID(),
			ProductID:    item.ProductID(),
			SizeID:       item.SizeID(),
			Quantity:     item.Quantity(),
			PricePerUnit: item.PricePerUnit().StringFixed(2),
			Addons:       addons,
		})
	}
	return resp
}

// OrderDetails is an order as listed, with the client, address, branch and
// catalog names joined in.
type OrderDetails struct {
	ID            kernel.UUID   `json:"id"`
	Status        order.Status  `json:"status"`
	PaymentMethod string        `json:"payment_method"`
	Subtotal      string        `json:"subtotal"`
	DeliveryFee   string        `json:"delivery_fee"`
	Total         string        `json:"total"`
	CourierID     *kernel.UUID  `json:"id_courier"`
	Client        Client        `json:"client"`
	Address       Address       `json:"address"`
	Branch        Branch        `json:"branch"`
	Items         []ItemDetails `json:"items"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type Client struct {
	ID       kernel.UUID `json:"id"`
	Name     string      `json:"name"`
	LastName string      `json:"lastname"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone,omitempty"`
}

type Address struct {
	ID           kernel.UUID `json:"id"`
	Address      string      `json:"address"`
	Neighborhood string      `json:"neighborhood"`
	Alias        string      `json:"alias,omitempty"`
	Lat          *float64    `json:"lat"`
	Lng          *float64    `json:"lng"`
}

type Branch struct {
	ID      kernel.UUID `json:"id"`
	Name    string      `json:"name"`
	Address string      `json:"address"`
	Phone   string      `json:"phone,omitempty"`
}

type ItemDetails struct {
	ID           kernel.UUID  `json:"id"`
	ProductID    kernel.UUID  `json:"id_product"`
	ProductName  string       `json:"product_name"`
	SizeID       *kernel.UUID `json:"id_size"`
	SizeName     string       `json:"size_name,omitempty"`
	Quantity     int          `json:"quantity"`
	PricePerUnit string       `json:"price_per_unit"`
	Addons       []ItemAddon  `json:"addons"`
}

func toOrderDetails(views []queries.OrderView) []OrderDetails {
	out := make([]OrderDetails, len(views))
	for i, v := range views {
		items := make([]ItemDetails, len(v.Items))
		for j, it := range v.Items {
			addons := make([]ItemAddon, len(it.Addons))
			for k, a := range it.Addons {
				addons[k] = ItemAddon{
					ID:              a.ID,
					AddonID:         a.AddonID,
					AddonName:       a.AddonName,
					PriceAtPurchase: a.PriceAtPurchase.StringFixed(2),
				}
			}
			items[j] = ItemDetails{
				ID:           it.ID,
				ProductID:    it.ProductID,
				ProductName:  it.ProductName,
				SizeID:       it.SizeID,
				SizeName:     it.SizeName,
				Quantity:     it.Quantity,
				PricePerUnit: it.PricePerUnit.StringFixed(2),
				Addons:       addons,
			}
		}
		out[i] = OrderDetails{
			ID:            v.ID,
			Status:        v.Status,
			PaymentMethod: v.PaymentMethod.String(),
			Subtotal:      v.Subtotal.StringFixed(2),
			DeliveryFee:   v.DeliveryFee.StringFixed(2),
			Total:         v.Total.StringFixed(2),
			CourierID:     v.CourierID,
			Client: Client{
				ID:       v.Client.ID,
				Name:     v.Client.Name,
				LastName: v.Client.LastName,
				Email:    v.Client.Email,
				Phone:    v.Client.Phone,
			},
			Address: Address{
				ID:           v.Address.ID,
				Address:      v.Address.Address,
				Neighborhood: v.Address.Neighborhood,
				Alias:        v.Address.Alias,
				Lat:          v.Address.Lat,
				Lng:          v.Address.Lng,
			},
			Branch: Branch{
				ID:      v.Branch.ID,
				Name:    v.Branch.Name,
				Address: v.Branch.Address,
				Phone:   v.Branch.Phone,
			},
			Items:     items,
			CreatedAt: v.CreatedAt,
			UpdatedAt: v.UpdatedAt,
		}
	}
	return out
}

// BranchStats counts the branch's orders per status.
type BranchStats struct {
	BranchID kernel.UUID    `json:"id_branch"`
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

func toBranchStats(s queries.BranchStats) BranchStats {
	byStatus := make(map[string]int, len(s.ByStatus))
	for status, n := range s.ByStatus {
		byStatus[status.String()] = n
	}
	return BranchStats{BranchID: s.BranchID, Total: s.Total, ByStatus: byStatus}
}

// BranchCourier is a courier working the branch, with its open workload.
type BranchCourier struct {
	ID           kernel.UUID   `json:"id"`
	Name         string        `json:"name"`
	LastName     string        `json:"lastname"`
	Email        string        `json:"email"`
	ActiveOrders int           `json:"active_orders"`
	Zones        []CourierZone `json:"zones"`
}

type CourierZone struct {
	ZoneID     kernel.UUID `json:"id_zone"`
	Name       string      `json:"name"`
	IsActive   bool        `json:"is_active"`
	AssignedAt time.Time   `json:"assigned_at"`
}

func toBranchCouriers(couriers []queries.BranchCourier) []BranchCourier {
	out := make([]BranchCourier, len(couriers))
	for i, c := range couriers {
		zones := make([]CourierZone, len(c.Zones))
		for j, z := range c.Zones {
			zones[j] = CourierZone{ZoneID: z.ZoneID, Name: z.Name, IsActive: z.Active, AssignedAt: z.AssignedAt}
		}
		out[i] = BranchCourier{
			ID:           c.ID,
			Name:         c.Name,
			LastName:     c.LastName,
			Email:        c.Email,
			ActiveOrders: c.ActiveOrders,
			Zones:        zones,
		}
	}
	return out
}

// Assignment is the outcome of a manual assignment.
type Assignment struct {
	OrderID   kernel.UUID `json:"id_order"`
	CourierID kernel.UUID `json:"id_courier"`
	ZoneID    kernel.UUID `json:"id_zone"`
	Order     Order       `json:"order"`
}
