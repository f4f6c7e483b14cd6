// Package orderrepo persists the order aggregate: the order header, its line
// items and each item's addon selections. Amounts are stored as the price
// snapshots taken at creation and are never recomputed.
package orderrepo

import (
	"time"

	"pizzeria/internal/adapters/out/postgres/catalogrepo"
	"pizzeria/internal/adapters/out/postgres/directoryrepo"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the order header. Status holds the wire literal so the table
// reads the same as the API. Version is the compare-and-swap token.
type OrderDTO struct {
	ID            uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	ClientID      uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Client        *directoryrepo.UserDTO    `gorm:"foreignKey:ClientID"`
	AddressID     uuid.UUID                 `gorm:"type:uuid;not null"`
	Address       *directoryrepo.AddressDTO `gorm:"foreignKey:AddressID"`
	BranchID      uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Branch        *directoryrepo.BranchDTO  `gorm:"foreignKey:BranchID"`
	CourierID     *uuid.UUID                `gorm:"type:uuid;index"`
	Courier       *directoryrepo.UserDTO    `gorm:"foreignKey:CourierID"`
	Status        string                    `gorm:"type:varchar(20);not null;index"`
	PaymentMethod string                    `gorm:"type:varchar(20);not null"`
	Subtotal      decimal.Decimal           `gorm:"type:numeric(10,2);not null"`
	DeliveryFee   decimal.Decimal           `gorm:"type:numeric(10,2);not null"`
	Total         decimal.Decimal           `gorm:"type:numeric(10,2);not null"`
	Version       int                       `gorm:"not null"`
	CreatedAt     time.Time                 `gorm:"not null"`
	UpdatedAt     time.Time                 `gorm:"not null"`
	Items         []OrderItemDTO            `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line. Position keeps the order the client listed them in.
type OrderItemDTO struct {
	ID           uuid.UUID               `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID               `gorm:"type:uuid;not null;index"`
	Position     int                     `gorm:"not null"`
	ProductID    uuid.UUID               `gorm:"type:uuid;not null"`
	Product      *catalogrepo.ProductDTO `gorm:"foreignKey:ProductID"`
	SizeID       *uuid.UUID              `gorm:"type:uuid"`
	Size         *catalogrepo.SizeDTO    `gorm:"foreignKey:SizeID"`
	Quantity     int                     `gorm:"not null"`
	PricePerUnit decimal.Decimal         `gorm:"type:numeric(10,2);not null"`
	Addons       []OrderItemAddonDTO     `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

type OrderItemAddonDTO struct {
	ID              uuid.UUID             `gorm:"type:uuid;primaryKey"`
	OrderItemID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	AddonID         uuid.UUID             `gorm:"type:uuid;not null"`
	Addon           *catalogrepo.AddonDTO `gorm:"foreignKey:AddonID"`
	PriceAtPurchase decimal.Decimal       `gorm:"type:numeric(10,2);not null"`
}

func (OrderItemAddonDTO) TableName() string {
	return "order_item_addons"
}

// fromDomain maps the aggregate including its items. Associations to
// reference tables are left nil so Create never touches them.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for position, item := range aggregate.Items() {
		itemID := item.ID().Bytes()

		addons := make([]OrderItemAddonDTO, 0, len(item.Addons()))
		for _, addon := range item.Addons() {
			addons = append(addons, OrderItemAddonDTO{
				ID:              addon.ID().Bytes(),
				OrderItemID:     itemID,
				AddonID:         addon.AddonID().Bytes(),
				PriceAtPurchase: addon.PriceAtPurchase(),
			})
		}

		items = append(items, OrderItemDTO{
			ID:           itemID,
			OrderID:      orderID,
			Position:     position,
			ProductID:    item.ProductID().Bytes(),
			SizeID:       optionalBytes(item.SizeID()),
			Quantity:     item.Quantity(),
			PricePerUnit: item.PricePerUnit(),
			Addons:       addons,
		})
	}

	return OrderDTO{
		ID:            orderID,
		ClientID:      aggregate.ClientID().Bytes(),
		AddressID:     aggregate.AddressID().Bytes(),
		BranchID:      aggregate.BranchID().Bytes(),
		CourierID:     optionalBytes(aggregate.Courier()),
		Status:        aggregate.Status().String(),
		PaymentMethod: aggregate.PaymentMethod().String(),
		Subtotal:      aggregate.Subtotal(),
		DeliveryFee:   aggregate.DeliveryFee(),
		Total:         aggregate.Total(),
		Version:       aggregate.Version(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		Items:         items,
	}
}

// toDomain restores the header. Items are restored only when loaded.
func toDomain(dto OrderDTO) (*order.Order, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.ClientID, dto.AddressID, dto.BranchID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	courierID, err := optionalUUID(dto.CourierID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:            ids[0],
		ClientID:      ids[1],
		AddressID:     ids[2],
		BranchID:      ids[3],
		CourierID:     courierID,
		Status:        status,
		PaymentMethod: order.PaymentMethod(dto.PaymentMethod),
		Subtotal:      dto.Subtotal,
		DeliveryFee:   dto.DeliveryFee,
		Total:         dto.Total,
		Items:         items,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
		Version:       dto.Version,
	})
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	sizeID, err := optionalUUID(dto.SizeID)
	if err != nil {
		return nil, err
	}

	addons := make([]order.AddonSelection, 0, len(dto.Addons))
	for _, addonDTO := range dto.Addons {
		selectionID, idErr := kernel.UUIDFromBytes(addonDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		addonID, idErr := kernel.UUIDFromBytes(addonDTO.AddonID[:])
		if idErr != nil {
			return nil, idErr
		}
		selection, selErr := order.NewAddonSelection(selectionID, addonID, addonDTO.PriceAtPurchase)
		if selErr != nil {
			return nil, selErr
		}
		addons = append(addons, selection)
	}

	return order.NewItem(id, productID, sizeID, dto.Quantity, dto.PricePerUnit, addons)
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
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
