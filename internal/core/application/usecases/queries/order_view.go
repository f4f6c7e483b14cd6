// Package queries contains read-only use cases. Handlers query the database
// directly with SQL and return flat read models; they never load aggregates.
package queries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is an order as listed to clients, staff and couriers.
type OrderView struct {
	ID            kernel.UUID
	Status        order.Status
	PaymentMethod order.PaymentMethod
	Subtotal      decimal.Decimal
	DeliveryFee   decimal.Decimal
	Total         decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CourierID     *kernel.UUID
	Client        ClientView
	Address       AddressView
	Branch        BranchView
	Items         []ItemView
}

type ClientView struct {
	ID       kernel.UUID
	Name     string
	LastName string
	Email    string
	Phone    string
}

type AddressView struct {
	ID           kernel.UUID
	Address      string
	Neighborhood string
	Alias        string
	Lat          *float64
	Lng          *float64
}

type BranchView struct {
	ID      kernel.UUID
	Name    string
	Address string
	Phone   string
}

type ItemView struct {
	ID           kernel.UUID
	ProductID    kernel.UUID
	ProductName  string
	SizeID       *kernel.UUID
	SizeName     string
	Quantity     int
	PricePerUnit decimal.Decimal
	Addons       []AddonView
}

type AddonView struct {
	ID              kernel.UUID
	AddonID         kernel.UUID
	AddonName       string
	PriceAtPurchase decimal.Decimal
}

type orderRow struct {
	ID                  uuid.UUID
	Status              string
	PaymentMethod       string
	Subtotal            decimal.Decimal
	DeliveryFee         decimal.Decimal
	Total               decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CourierID           *uuid.UUID
	ClientID            uuid.UUID
	ClientName          string
	ClientLastname      string
	ClientEmail         string
	ClientPhone         *string
	AddressID           uuid.UUID
	AddressLine         string
	AddressNeighborhood string
	AddressAlias        *string
	AddressLat          *float64
	AddressLng          *float64
	BranchID            uuid.UUID
	BranchName          string
	BranchAddress       string
	BranchPhone         *string
}

type itemRow struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	SizeID       *uuid.UUID
	SizeName     *string
	Quantity     int
	PricePerUnit decimal.Decimal
}

type addonRow struct {
	ID              uuid.UUID
	OrderItemID     uuid.UUID
	AddonID         uuid.UUID
	AddonName       string
	PriceAtPurchase decimal.Decimal
}

const orderViewSelect = `
	SELECT
		o.id, o.status, o.payment_method, o.subtotal, o.delivery_fee, o.total,
		o.created_at, o.updated_at, o.courier_id,
		c.id AS client_id, c.name AS client_name, c.lastname AS client_lastname,
		c.email AS client_email, c.phone AS client_phone,
		a.id AS address_id, a.address AS address_line, a.neighborhood AS address_neighborhood,
		a.alias AS address_alias, a.lat AS address_lat, a.lng AS address_lng,
		b.id AS branch_id, b.name AS branch_name, b.address AS branch_address, b.phone AS branch_phone
	FROM orders o
	JOIN users c ON c.id = o.client_id
	JOIN addresses a ON a.id = o.address_id
	JOIN branches b ON b.id = o.branch_id
`

// loadOrderViews runs the shared order listing with the given filter and
// ordering, then attaches items and addon selections in two batched reads.
func loadOrderViews(
	ctx context.Context,
	db *gorm.DB,
	where string,
	orderBy string,
	args ...any,
) ([]OrderView, error) {
	var rows []orderRow
	sql := fmt.Sprintf("%s WHERE %s ORDER BY %s", orderViewSelect, where, orderBy)
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		view, err := row.toView()
		if err != nil {
			return nil, err
		}
		views = append(views, view)
		ids = append(ids, row.ID)
	}

	items, err := loadItems(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	for i := range views {
		views[i].Items = items[views[i].ID.Bytes()]
		if views[i].Items == nil {
			views[i].Items = []ItemView{}
		}
	}

	return views, nil
}

func loadItems(ctx context.Context, db *gorm.DB, orderIDs []uuid.UUID) (map[uuid.UUID][]ItemView, error) {
	var items []itemRow
	if err := db.WithContext(ctx).Raw(`
		SELECT
			i.id, i.order_id, i.product_id, p.name AS product_name,
			i.size_id, s.name AS size_name, i.quantity, i.price_per_unit
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		LEFT JOIN sizes s ON s.id = i.size_id
		WHERE i.order_id IN ?
		ORDER BY i.position, i.id
	`, orderIDs).Scan(&items).Error; err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}

	addons := make(map[uuid.UUID][]AddonView)
	if len(itemIDs) > 0 {
		var rows []addonRow
		if err := db.WithContext(ctx).Raw(`
			SELECT
				ia.id, ia.order_item_id, ia.addon_id, ad.name AS addon_name, ia.price_at_purchase
			FROM order_item_addons ia
			JOIN addons ad ON ad.id = ia.addon_id
			WHERE ia.order_item_id IN ?
			ORDER BY ia.id
		`, itemIDs).Scan(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			view, err := row.toView()
			if err != nil {
				return nil, err
			}
			addons[row.OrderItemID] = append(addons[row.OrderItemID], view)
		}
	}

	byOrder := make(map[uuid.UUID][]ItemView)
	for _, row := range items {
		view, err := row.toView()
		if err != nil {
			return nil, err
		}
		view.Addons = addons[row.ID]
		if view.Addons == nil {
			view.Addons = []AddonView{}
		}
		byOrder[row.OrderID] = append(byOrder[row.OrderID], view)
	}
	return byOrder, nil
}

func (r orderRow) toView() (OrderView, error) {
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderView{}, err
	}
	ids, err := uuids(r.ID, r.ClientID, r.AddressID, r.BranchID)
	if err != nil {
		return OrderView{}, err
	}
	courierID, err := optionalUUID(r.CourierID)
	if err != nil {
		return OrderView{}, err
	}

	return OrderView{
		ID:            ids[0],
		Status:        status,
		PaymentMethod: order.PaymentMethod(strings.ToUpper(r.PaymentMethod)),
		Subtotal:      r.Subtotal,
		DeliveryFee:   r.DeliveryFee,
		Total:         r.Total,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		CourierID:     courierID,
		Client: ClientView{
			ID:       ids[1],
			Name:     r.ClientName,
			LastName: r.ClientLastname,
			Email:    r.ClientEmail,
			Phone:    deref(r.ClientPhone),
		},
		Address: AddressView{
			ID:           ids[2],
			Address:      r.AddressLine,
			Neighborhood: r.AddressNeighborhood,
			Alias:        deref(r.AddressAlias),
			Lat:          r.AddressLat,
			Lng:          r.AddressLng,
		},
		Branch: BranchView{
			ID:      ids[3],
			Name:    r.BranchName,
			Address: r.BranchAddress,
			Phone:   deref(r.BranchPhone),
		},
	}, nil
}

func (r itemRow) toView() (ItemView, error) {
	ids, err := uuids(r.ID, r.ProductID)
	if err != nil {
		return ItemView{}, err
	}
	sizeID, err := optionalUUID(r.SizeID)
	if err != nil {
		return ItemView{}, err
	}
	return ItemView{
		ID:           ids[0],
		ProductID:    ids[1],
		ProductName:  r.ProductName,
		SizeID:       sizeID,
		SizeName:     deref(r.SizeName),
		Quantity:     r.Quantity,
		PricePerUnit: r.PricePerUnit,
	}, nil
}

func (r addonRow) toView() (AddonView, error) {
	ids, err := uuids(r.ID, r.AddonID)
	if err != nil {
		return AddonView{}, err
	}
	return AddonView{
		ID:              ids[0],
		AddonID:         ids[1],
		AddonName:       r.AddonName,
		PriceAtPurchase: r.PriceAtPurchase,
	}, nil
}

func uuids(raw ...uuid.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		converted, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
