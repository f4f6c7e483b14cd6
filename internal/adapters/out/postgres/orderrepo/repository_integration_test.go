package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"pizzeria/internal/adapters/out/postgres/orderrepo"
	"pizzeria/internal/adapters/out/postgres/pgtest"
	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL with the full schema and its foreign keys.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker

	clientID  kernel.UUID
	addressID kernel.UUID
	branchID  kernel.UUID
	courierID kernel.UUID
	productID kernel.UUID
	sizeID    kernel.UUID
	addonID   kernel.UUID
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.StartPostgres(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Reset(suite.db))

	seed := pgtest.NewSeeder(suite.T(), suite.db)
	suite.branchID = seed.Branch("Centro")
	suite.clientID = seed.User("ana", actor.Client, nil)
	suite.addressID = seed.Address(suite.clientID, pgtest.Float(-34.60), pgtest.Float(-58.38))
	suite.courierID = seed.User("rider", actor.Delivery, nil)
	category := seed.Category("Pizzas")
	suite.sizeID = seed.Size("Large")
	seed.CategoryPrice(category, suite.sizeID, "15.00")
	suite.productID = seed.Product(category, "Muzzarella", nil, true)
	suite.addonID = seed.Addon("Extra cheese")
	seed.AddonPrice(suite.addonID, suite.sizeID, "3.00")

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsItemsAndAddons() {
	ctx := context.Background()
	testOrder := suite.newOrder(suite.addressID, suite.productID)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	stored, err := suite.repository.GetWithItems(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Paid, stored.Status())
	suite.Equal(order.Card, stored.PaymentMethod())
	suite.True(decimal.RequireFromString("36.00").Equal(stored.Subtotal()))
	suite.True(decimal.RequireFromString("38.50").Equal(stored.Total()))
	suite.Equal(0, stored.Version())
	suite.Nil(stored.Courier())
	suite.Require().Len(stored.Items(), 1)
	item := stored.Items()[0]
	suite.Equal(2, item.Quantity())
	suite.True(decimal.RequireFromString("18.00").Equal(item.PricePerUnit()))
	suite.Require().Len(item.Addons(), 1)
	suite.True(item.Addons()[0].AddonID().IsEqual(suite.addonID))

	suite.assertCount("order_items", 1)
	suite.assertCount("order_item_addons", 1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_MissingReference_IsInvalidAndWritesNothing() {
	testCases := []struct {
		name    string
		address kernel.UUID
		product kernel.UUID
	}{
		{name: "unknown address", address: kernel.NewUUID(), product: suite.productID},
		{name: "unknown product", address: suite.addressID, product: kernel.NewUUID()},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			ctx := context.Background()
			testOrder := suite.newOrder(tc.address, tc.product)

			err := suite.db.Transaction(func(tx *gorm.DB) error {
				return orderrepo.NewGormOrderRepository(tx, suite.tracker).Add(ctx, testOrder)
			})

			suite.Require().Error(err)
			suite.ErrorIs(err, errs.ErrValueIsInvalid)
			suite.assertCount("orders", 0)
			suite.assertCount("order_items", 0)
		})
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersionAndReturnsFreshOrder() {
	ctx := context.Background()
	testOrder := suite.addOrder()

	suite.advance(testOrder, order.Preparing)
	suite.advance(testOrder, order.Dispatched)
	suite.Require().NoError(testOrder.AssignCourier(suite.courierID))
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything).Once()

	updated, err := suite.repository.Update(ctx, testOrder)
	suite.Require().NoError(err)

	suite.Equal(1, updated.Version())
	suite.Equal(order.Dispatched, updated.Status())
	suite.Require().NotNil(updated.Courier())
	suite.True(updated.Courier().IsEqual(suite.courierID))
	suite.WithinDuration(testOrder.UpdatedAt(), updated.UpdatedAt(), time.Millisecond)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_Conflict() {
	ctx := context.Background()
	testOrder := suite.addOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)

	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.advance(first, order.Preparing)
	_, err = suite.repository.Update(ctx, first)
	suite.Require().NoError(err)

	suite.advance(second, order.Cancelled)
	_, err = suite.repository.Update(ctx, second)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)
	stored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, stored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder_NotFound() {
	testOrder := suite.newOrder(suite.addressID, suite.productID)
	suite.advance(testOrder, order.Preparing)

	_, err := suite.repository.Update(context.Background(), testOrder)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(addressID, productID kernel.UUID) *order.Order {
	addon, err := order.NewAddonSelection(kernel.NewUUID(), suite.addonID, decimal.RequireFromString("3.00"))
	suite.Require().NoError(err)
	size := suite.sizeID
	item, err := order.NewItem(
		kernel.NewUUID(), productID, &size, 2, decimal.RequireFromString("18.00"), []order.AddonSelection{addon},
	)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), suite.clientID, addressID, suite.branchID,
		order.Card, []*order.Item{item}, decimal.RequireFromString("2.50"),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) addOrder() *order.Order {
	testOrder := suite.newOrder(suite.addressID, suite.productID)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), testOrder))
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) advance(o *order.Order, next order.Status) {
	branch := suite.branchID
	staff, err := actor.NewActor(kernel.NewUUID(), actor.Restaurant, &branch)
	suite.Require().NoError(err)
	_, err = o.ChangeStatus(staff, next)
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertCount(table string, expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Table(table).Count(&count).Error)
	suite.Equal(expected, count, table)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
