package pgtest

import (
	"fmt"
	"testing"
	"time"

	"pizzeria/internal/adapters/out/postgres/catalogrepo"
	"pizzeria/internal/adapters/out/postgres/directoryrepo"
	"pizzeria/internal/adapters/out/postgres/orderrepo"
	"pizzeria/internal/adapters/out/postgres/zonerepo"
	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Centro is the default branch location used by seeded branches.
var Centro = [2]float64{-34.6037, -58.3816}

// Seeder inserts reference rows directly, bypassing repositories.
type Seeder struct {
	t  testing.TB
	db *gorm.DB
	n  int
}

func NewSeeder(t testing.TB, db *gorm.DB) *Seeder {
	t.Helper()
	return &Seeder{t: t, db: db}
}

func (s *Seeder) create(value any) {
	s.t.Helper()
	require.NoError(s.t, s.db.Create(value).Error)
}

func (s *Seeder) seq() int {
	s.n++
	return s.n
}

// Branch seeds a branch located at Centro.
func (s *Seeder) Branch(name string) kernel.UUID {
	s.t.Helper()
	return s.BranchAt(name, &Centro[0], &Centro[1])
}

// BranchAt seeds a branch at the given coordinates; nil means unknown.
func (s *Seeder) BranchAt(name string, lat, lng *float64) kernel.UUID {
	s.t.Helper()
	phone := "011-4000-0000"
	dto := directoryrepo.BranchDTO{
		ID:      uuid.New(),
		Name:    name,
		Address: name + " 100",
		Phone:   &phone,
		Lat:     lat,
		Lng:     lng,
	}
	s.create(&dto)
	return toKernel(dto.ID)
}

// User seeds a user holding role. branchID is only meaningful for staff.
func (s *Seeder) User(name string, role actor.Role, branchID *kernel.UUID) kernel.UUID {
	s.t.Helper()
	id := uuid.New()
	phone := fmt.Sprintf("11-5555-%04d", s.seq())
	dto := directoryrepo.UserDTO{
		ID:        id,
		Name:      name,
		Lastname:  "Test",
		Email:     fmt.Sprintf("%s.%d@example.com", name, s.n),
		Phone:     &phone,
		BranchID:  fromKernel(branchID),
		Roles:     []directoryrepo.UserRoleDTO{{UserID: id, Role: role.String()}},
		CreatedAt: time.Now().UTC(),
	}
	s.create(&dto)
	return toKernel(id)
}

// Address seeds an address for userID. nil coordinates mean unknown.
func (s *Seeder) Address(userID kernel.UUID, lat, lng *float64) kernel.UUID {
	s.t.Helper()
	alias := "home"
	dto := directoryrepo.AddressDTO{
		ID:           uuid.New(),
		UserID:       userID.Bytes(),
		Address:      fmt.Sprintf("Calle %d", s.seq()),
		Neighborhood: "Centro",
		Alias:        &alias,
		Lat:          lat,
		Lng:          lng,
	}
	s.create(&dto)
	return toKernel(dto.ID)
}

func (s *Seeder) Category(name string) kernel.UUID {
	s.t.Helper()
	dto := catalogrepo.CategoryDTO{ID: uuid.New(), Name: name}
	s.create(&dto)
	return toKernel(dto.ID)
}

func (s *Seeder) Size(name string) kernel.UUID {
	s.t.Helper()
	dto := catalogrepo.SizeDTO{ID: uuid.New(), Name: name}
	s.create(&dto)
	return toKernel(dto.ID)
}

// Product seeds a product. A nil fixedPrice prices it by category and size.
func (s *Seeder) Product(categoryID kernel.UUID, name string, fixedPrice *decimal.Decimal, available bool) kernel.UUID {
	s.t.Helper()
	dto := catalogrepo.ProductDTO{
		ID:          uuid.New(),
		CategoryID:  categoryID.Bytes(),
		Name:        name,
		Price:       fixedPrice,
		IsAvailable: available,
	}
	s.create(&dto)
	return toKernel(dto.ID)
}

func (s *Seeder) CategoryPrice(categoryID, sizeID kernel.UUID, price string) {
	s.t.Helper()
	s.create(&catalogrepo.CategoryPriceDTO{
		CategoryID: categoryID.Bytes(),
		SizeID:     sizeID.Bytes(),
		Price:      decimal.RequireFromString(price),
	})
}

func (s *Seeder) Addon(name string) kernel.UUID {
	s.t.Helper()
	dto := catalogrepo.AddonDTO{ID: uuid.New(), Name: name}
	s.create(&dto)
	return toKernel(dto.ID)
}

func (s *Seeder) AddonPrice(addonID, sizeID kernel.UUID, price string) {
	s.t.Helper()
	s.create(&catalogrepo.AddonPriceDTO{
		AddonID: addonID.Bytes(),
		SizeID:  sizeID.Bytes(),
		Price:   decimal.RequireFromString(price),
	})
}

func (s *Seeder) Zone(branchID kernel.UUID, name string, maxKm float64, active bool) kernel.UUID {
	s.t.Helper()
	dto := zonerepo.ZoneDTO{
		ID:                    uuid.New(),
		BranchID:              branchID.Bytes(),
		Name:                  name,
		IsActive:              active,
		MaxDeliveryDistanceKm: maxKm,
	}
	s.create(&dto)
	return toKernel(dto.ID)
}

// AssignCourier links courierID to zoneID as of createdAt.
func (s *Seeder) AssignCourier(zoneID, courierID kernel.UUID, createdAt time.Time, active bool) {
	s.t.Helper()
	s.create(&zonerepo.ZoneAssignmentDTO{
		ID:        uuid.New(),
		UserID:    courierID.Bytes(),
		ZoneID:    zoneID.Bytes(),
		IsActive:  active,
		CreatedAt: createdAt,
	})
}

// OrderRow describes an order inserted straight into the orders table.
type OrderRow struct {
	ClientID  kernel.UUID
	AddressID kernel.UUID
	BranchID  kernel.UUID
	CourierID *kernel.UUID
	Status    order.Status
	Total     string
	CreatedAt time.Time
	Items     []ItemRow
}

type ItemRow struct {
	ProductID kernel.UUID
	SizeID    *kernel.UUID
	Quantity  int
	Price     string
	AddonIDs  []kernel.UUID
	AddonCost string
}

// Order seeds an order with the given rows. Amounts are taken as given and
// are not checked against the catalog.
func (s *Seeder) Order(row OrderRow) kernel.UUID {
	s.t.Helper()
	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	total := decimal.RequireFromString(row.Total)

	orderID := uuid.New()
	items := make([]orderrepo.OrderItemDTO, 0, len(row.Items))
	for position, item := range row.Items {
		itemID := uuid.New()
		addons := make([]orderrepo.OrderItemAddonDTO, 0, len(item.AddonIDs))
		for _, addonID := range item.AddonIDs {
			addons = append(addons, orderrepo.OrderItemAddonDTO{
				ID:              uuid.New(),
				OrderItemID:     itemID,
				AddonID:         addonID.Bytes(),
				PriceAtPurchase: decimal.RequireFromString(item.AddonCost),
			})
		}
		items = append(items, orderrepo.OrderItemDTO{
			ID:           itemID,
			OrderID:      orderID,
			Position:     position,
			ProductID:    item.ProductID.Bytes(),
			SizeID:       fromKernel(item.SizeID),
			Quantity:     item.Quantity,
			PricePerUnit: decimal.RequireFromString(item.Price),
			Addons:       addons,
		})
	}

	s.create(&orderrepo.OrderDTO{
		ID:            orderID,
		ClientID:      row.ClientID.Bytes(),
		AddressID:     row.AddressID.Bytes(),
		BranchID:      row.BranchID.Bytes(),
		CourierID:     fromKernel(row.CourierID),
		Status:        row.Status.String(),
		PaymentMethod: order.Cash.String(),
		Subtotal:      total,
		DeliveryFee:   decimal.Zero,
		Total:         total,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
		Items:         items,
	})
	return toKernel(orderID)
}

// Float returns a pointer to f.
func Float(f float64) *float64 {
	return &f
}

func toKernel(id uuid.UUID) kernel.UUID {
	converted, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		panic(err)
	}
	return converted
}

func fromKernel(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}
