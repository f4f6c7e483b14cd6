package queries_test

import (
	"context"
	"testing"
	"time"

	"pizzeria/internal/adapters/out/postgres/pgtest"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	seed      *pgtest.Seeder

	branchID  kernel.UUID
	otherID   kernel.UUID
	clientID  kernel.UUID
	addressID kernel.UUID
	courierID kernel.UUID
	pizzaID   kernel.UUID
	largeID   kernel.UUID
	cheeseID  kernel.UUID
	base      time.Time
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.StartPostgres(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Reset(suite.db))

	suite.seed = pgtest.NewSeeder(suite.T(), suite.db)
	suite.branchID = suite.seed.Branch("Centro")
	suite.otherID = suite.seed.Branch("Norte")
	suite.clientID = suite.seed.User("ana", actor.Client, nil)
	suite.addressID = suite.seed.Address(suite.clientID, pgtest.Float(-34.60), pgtest.Float(-58.38))
	suite.courierID = suite.seed.User("rider", actor.Delivery, nil)
	category := suite.seed.Category("Pizzas")
	suite.largeID = suite.seed.Size("Large")
	suite.pizzaID = suite.seed.Product(category, "Muzzarella", nil, true)
	suite.cheeseID = suite.seed.Addon("Extra cheese")
	suite.base = time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) TestGetClientOrders_NewestFirstWithItems() {
	// Given
	older := suite.order(suite.branchID, order.Delivered, nil, 0)
	newer := suite.order(suite.otherID, order.Paid, nil, time.Hour)
	stranger := suite.seed.User("bob", actor.Client, nil)
	suite.seed.Order(pgtest.OrderRow{
		ClientID:  stranger,
		AddressID: suite.seed.Address(stranger, nil, nil),
		BranchID:  suite.branchID,
		Status:    order.Paid,
		Total:     "1.00",
	})

	query, err := queries.NewGetClientOrdersQuery(suite.clientID)
	suite.Require().NoError(err)

	// When
	views, err := queries.NewGetClientOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	// Then
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.True(views[0].ID.IsEqual(newer))
	suite.True(views[1].ID.IsEqual(older))

	view := views[0]
	suite.Equal(order.Paid, view.Status)
	suite.Equal(order.Cash, view.PaymentMethod)
	suite.Equal("36.00", view.Total.StringFixed(2))
	suite.Equal("ana", view.Client.Name)
	suite.Equal("Norte", view.Branch.Name)
	suite.Equal("Centro", view.Address.Neighborhood)
	suite.Require().NotNil(view.Address.Lat)
	suite.Require().Len(view.Items, 1)
	suite.Equal("Muzzarella", view.Items[0].ProductName)
	suite.Equal("Large", view.Items[0].SizeName)
	suite.Equal(2, view.Items[0].Quantity)
	suite.Require().Len(view.Items[0].Addons, 1)
	suite.Equal("Extra cheese", view.Items[0].Addons[0].AddonName)
	suite.Equal("3.00", view.Items[0].Addons[0].PriceAtPurchase.StringFixed(2))
}

func (suite *QueriesIntegrationTestSuite) TestGetClientOrders_Empty() {
	query, err := queries.NewGetClientOrdersQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	views, err := queries.NewGetClientOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(views)
	suite.Empty(views)
}

func (suite *QueriesIntegrationTestSuite) TestGetBranchOrders_FilteredByStatus() {
	// Given
	paid := suite.order(suite.branchID, order.Paid, nil, 0)
	preparing := suite.order(suite.branchID, order.Preparing, nil, time.Minute)
	suite.order(suite.otherID, order.Paid, nil, 0)
	branch := suite.branchID
	staff, err := actor.NewActor(kernel.NewUUID(), actor.Restaurant, &branch)
	suite.Require().NoError(err)
	handler := queries.NewGetBranchOrdersQueryHandler(suite.db)

	// When
	all, err := queries.NewGetBranchOrdersQuery(staff, "")
	suite.Require().NoError(err)
	everything, err := handler.Handle(context.Background(), all)
	suite.Require().NoError(err)

	onlyPaid, err := queries.NewGetBranchOrdersQuery(staff, " paid ")
	suite.Require().NoError(err)
	filtered, err := handler.Handle(context.Background(), onlyPaid)
	suite.Require().NoError(err)

	// Then
	suite.Require().Len(everything, 2)
	suite.True(everything[0].ID.IsEqual(preparing))
	suite.Require().Len(filtered, 1)
	suite.True(filtered[0].ID.IsEqual(paid))
}

func (suite *QueriesIntegrationTestSuite) TestGetCourierOrders_ActiveOnlyOldestFirst() {
	// Given
	courier := suite.courierID
	enRoute := suite.order(suite.branchID, order.EnRoute, &courier, 0)
	dispatched := suite.order(suite.branchID, order.Dispatched, &courier, time.Minute)
	suite.order(suite.branchID, order.Delivered, &courier, 2*time.Minute)
	other := suite.seed.User("other", actor.Delivery, nil)
	suite.order(suite.branchID, order.Dispatched, &other, 0)

	query, err := queries.NewGetCourierOrdersQuery(suite.courierID)
	suite.Require().NoError(err)

	// When
	views, err := queries.NewGetCourierOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	// Then
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.True(views[0].ID.IsEqual(enRoute))
	suite.True(views[1].ID.IsEqual(dispatched))
	suite.Require().NotNil(views[0].CourierID)
	suite.True(views[0].CourierID.IsEqual(suite.courierID))
}

func (suite *QueriesIntegrationTestSuite) TestGetBranchStats() {
	suite.order(suite.branchID, order.Paid, nil, 0)
	suite.order(suite.branchID, order.Paid, nil, 0)
	suite.order(suite.branchID, order.Cancelled, nil, 0)
	suite.order(suite.otherID, order.Paid, nil, 0)
	branch := suite.branchID
	staff, err := actor.NewActor(kernel.NewUUID(), actor.Restaurant, &branch)
	suite.Require().NoError(err)
	query, err := queries.NewGetBranchStatsQuery(staff)
	suite.Require().NoError(err)

	stats, err := queries.NewGetBranchStatsQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(3, stats.Total)
	suite.Equal(2, stats.ByStatus[order.Paid])
	suite.Equal(1, stats.ByStatus[order.Cancelled])
	suite.Equal(0, stats.ByStatus[order.EnRoute])
	suite.Len(stats.ByStatus, len(order.AllStatuses()))
}

func (suite *QueriesIntegrationTestSuite) TestGetUnassignedDispatchedOrders() {
	courier := suite.courierID
	waiting := suite.order(suite.branchID, order.Dispatched, nil, 0)
	suite.order(suite.branchID, order.Dispatched, &courier, 0)
	suite.order(suite.branchID, order.Preparing, nil, 0)
	query, err := queries.NewGetUnassignedDispatchedOrdersQuery(10)
	suite.Require().NoError(err)

	pending, err := queries.NewGetUnassignedDispatchedOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.True(pending[0].ID.IsEqual(waiting))
	suite.True(pending[0].BranchID.IsEqual(suite.branchID))
}

func (suite *QueriesIntegrationTestSuite) TestGetBranchCouriers_ZonesAndWorkload() {
	// Given
	centro := suite.seed.Zone(suite.branchID, "Centro", 5, true)
	palermo := suite.seed.Zone(suite.branchID, "Palermo", 3, false)
	norte := suite.seed.Zone(suite.otherID, "Norte", 5, true)
	suite.seed.AssignCourier(centro, suite.courierID, suite.base, true)
	suite.seed.AssignCourier(palermo, suite.courierID, suite.base.Add(time.Hour), false)
	bruno := suite.seed.User("bruno", actor.Delivery, nil)
	suite.seed.AssignCourier(centro, bruno, suite.base.Add(2*time.Hour), true)
	outsider := suite.seed.User("nico", actor.Delivery, nil)
	suite.seed.AssignCourier(norte, outsider, suite.base, true)

	courier := suite.courierID
	suite.order(suite.branchID, order.EnRoute, &courier, 0)
	suite.order(suite.branchID, order.Dispatched, &courier, 0)
	suite.order(suite.otherID, order.Dispatched, &courier, 0)
	suite.order(suite.branchID, order.Delivered, &courier, 0)

	branch := suite.branchID
	staff, err := actor.NewActor(kernel.NewUUID(), actor.Restaurant, &branch)
	suite.Require().NoError(err)
	query, err := queries.NewGetBranchCouriersQuery(staff)
	suite.Require().NoError(err)

	// When
	couriers, err := queries.NewGetBranchCouriersQueryHandler(suite.db).Handle(context.Background(), query)

	// Then
	suite.Require().NoError(err)
	suite.Require().Len(couriers, 2)

	suite.True(couriers[0].ID.IsEqual(bruno))
	suite.Equal(0, couriers[0].ActiveOrders)
	suite.Require().Len(couriers[0].Zones, 1)
	suite.True(couriers[0].Zones[0].ZoneID.IsEqual(centro))

	rider := couriers[1]
	suite.True(rider.ID.IsEqual(suite.courierID))
	suite.Equal("rider", rider.Name)
	suite.Equal("Test", rider.LastName)
	suite.NotEmpty(rider.Email)
	suite.Equal(3, rider.ActiveOrders)
	suite.Require().Len(rider.Zones, 2)
	suite.True(rider.Zones[0].ZoneID.IsEqual(centro))
	suite.Equal("Centro", rider.Zones[0].Name)
	suite.True(rider.Zones[0].Active)
	suite.True(rider.Zones[0].AssignedAt.Equal(suite.base))
	suite.True(rider.Zones[1].ZoneID.IsEqual(palermo))
	suite.False(rider.Zones[1].Active)
}

func (suite *QueriesIntegrationTestSuite) TestGetBranchCouriers_EmptyBranch() {
	branch := suite.otherID
	staff, err := actor.NewActor(kernel.NewUUID(), actor.Restaurant, &branch)
	suite.Require().NoError(err)
	query, err := queries.NewGetBranchCouriersQuery(staff)
	suite.Require().NoError(err)

	couriers, err := queries.NewGetBranchCouriersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(couriers)
	suite.Empty(couriers)
}

func (suite *QueriesIntegrationTestSuite) order(
	branchID kernel.UUID,
	status order.Status,
	courierID *kernel.UUID,
	offset time.Duration,
) kernel.UUID {
	large := suite.largeID
	return suite.seed.Order(pgtest.OrderRow{
		ClientID:  suite.clientID,
		AddressID: suite.addressID,
		BranchID:  branchID,
		CourierID: courierID,
		Status:    status,
		Total:     "36.00",
		CreatedAt: suite.base.Add(offset),
		Items: []pgtest.ItemRow{{
			ProductID: suite.pizzaID,
			SizeID:    &large,
			Quantity:  2,
			Price:     "18.00",
			AddonIDs:  []kernel.UUID{suite.cheeseID},
			AddonCost: "3.00",
		}},
	})
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
