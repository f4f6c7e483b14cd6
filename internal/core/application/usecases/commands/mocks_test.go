package commands_test

import (
	"context"
	"io"
	"log/slog"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/domain/model/courier"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/zone"
	"pizzeria/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// Update echoes the aggregate back when the expectation returns a nil order.
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) (*order.Order, error) {
	args := m.Called(ctx, o)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if args.Get(0) == nil {
		return o, nil
	}
	return args.Get(0).(*order.Order), nil
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetEligibleByZone(ctx context.Context, zoneID kernel.UUID) ([]*courier.Courier, error) {
	args := m.Called(ctx, zoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockZoneRepository struct{ mock.Mock }

func (m *MockZoneRepository) GetActiveByBranch(ctx context.Context, branchID kernel.UUID) ([]*zone.Zone, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*zone.Zone), args.Error(1)
}

func (m *MockZoneRepository) Get(ctx context.Context, id kernel.UUID) (*zone.Zone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*zone.Zone), args.Error(1)
}

func (m *MockZoneRepository) AssignCourier(ctx context.Context, zoneID, courierID kernel.UUID) error {
	args := m.Called(ctx, zoneID, courierID)
	return args.Error(0)
}

type MockDirectory struct{ mock.Mock }

func (m *MockDirectory) Client(ctx context.Context, id kernel.UUID) (ports.ClientSnapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.ClientSnapshot), args.Error(1)
}

func (m *MockDirectory) Address(ctx context.Context, id kernel.UUID) (ports.AddressSnapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.AddressSnapshot), args.Error(1)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) Product(ctx context.Context, id kernel.UUID) (catalog.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Product), args.Error(1)
}

func (m *MockCatalog) CategoryPrice(ctx context.Context, categoryID, sizeID kernel.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, categoryID, sizeID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCatalog) Addon(ctx context.Context, id kernel.UUID) (catalog.Addon, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Addon), args.Error(1)
}

func (m *MockCatalog) AddonPrice(ctx context.Context, addonID, sizeID kernel.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, addonID, sizeID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NewOrder(ctx context.Context, event ports.NewOrderEvent) {
	m.Called(ctx, event)
}

func (m *MockNotifier) StatusChanged(ctx context.Context, event ports.StatusChangedEvent) {
	m.Called(ctx, event)
}

type MockZoneCache struct{ mock.Mock }

func (m *MockZoneCache) Zones(ctx context.Context, branchID kernel.UUID) ([]*zone.Zone, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*zone.Zone), args.Error(1)
}

func (m *MockZoneCache) Invalidate(branchID kernel.UUID) {
	m.Called(branchID)
}

func (m *MockZoneCache) InvalidateAll() {
	m.Called()
}

func (m *MockZoneCache) PurgeExpired() int {
	args := m.Called()
	return args.Int(0)
}

type MockAssigner struct{ mock.Mock }

func (m *MockAssigner) Handle(ctx context.Context, cmd commands.AssignCourierCommand) (commands.AssignCourierResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.AssignCourierResult), args.Error(1)
}

// MockUoW implements every unit of work flavour the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ZoneRepository() ports.ZoneRepository {
	args := m.Called()
	return args.Get(0).(ports.ZoneRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) Directory() ports.Directory {
	args := m.Called()
	return args.Get(0).(ports.Directory)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockAssignmentUoWFactory struct{ mock.Mock }

func (m *MockAssignmentUoWFactory) Create() commands.AssignmentUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignmentUoW)
}

type MockZoneUoWFactory struct{ mock.Mock }

func (m *MockZoneUoWFactory) Create() commands.ZoneUoW {
	args := m.Called()
	return args.Get(0).(commands.ZoneUoW)
}
