package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"pizzeria/internal/adapters/out/postgres/courierrepo"
	"pizzeria/internal/adapters/out/postgres/pgtest"
	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
	seed       *pgtest.Seeder

	branchID  kernel.UUID
	zoneID    kernel.UUID
	clientID  kernel.UUID
	addressID kernel.UUID
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.StartPostgres(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Reset(suite.db))

	suite.seed = pgtest.NewSeeder(suite.T(), suite.db)
	suite.branchID = suite.seed.Branch("Centro")
	suite.zoneID = suite.seed.Zone(suite.branchID, "Centro", 5, true)
	suite.clientID = suite.seed.User("ana", actor.Client, nil)
	suite.addressID = suite.seed.Address(suite.clientID, nil, nil)

	suite.repository = courierrepo.NewGormCourierRepository(suite.db)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetEligibleByZone_CountsOnlyActiveDeliveries() {
	// Given
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	busy := suite.seed.User("busy", actor.Delivery, nil)
	idle := suite.seed.User("idle", actor.Delivery, nil)
	suite.seed.AssignCourier(suite.zoneID, busy, base, true)
	suite.seed.AssignCourier(suite.zoneID, idle, base.Add(time.Minute), true)

	suite.orderFor(busy, order.Dispatched)
	suite.orderFor(busy, order.EnRoute)
	suite.orderFor(idle, order.Delivered)
	suite.orderFor(idle, order.Cancelled)

	// When
	couriers, err := suite.repository.GetEligibleByZone(context.Background(), suite.zoneID)

	// Then
	suite.Require().NoError(err)
	suite.Require().Len(couriers, 2)
	suite.True(couriers[0].ID().IsEqual(busy))
	suite.Equal(2, couriers[0].ActiveOrders())
	suite.True(couriers[1].ID().IsEqual(idle))
	suite.Equal(0, couriers[1].ActiveOrders())
	suite.Equal("idle Test", couriers[1].Name())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetEligibleByZone_Filters() {
	// Given
	now := time.Now().UTC()
	eligible := suite.seed.User("eligible", actor.Delivery, nil)
	inactive := suite.seed.User("inactive", actor.Delivery, nil)
	notCourier := suite.seed.User("cook", actor.Restaurant, &suite.branchID)
	elsewhere := suite.seed.User("elsewhere", actor.Delivery, nil)
	otherZone := suite.seed.Zone(suite.branchID, "Norte", 10, true)

	suite.seed.AssignCourier(suite.zoneID, eligible, now, true)
	suite.seed.AssignCourier(suite.zoneID, inactive, now, false)
	suite.seed.AssignCourier(suite.zoneID, notCourier, now, true)
	suite.seed.AssignCourier(otherZone, elsewhere, now, true)

	// When
	couriers, err := suite.repository.GetEligibleByZone(context.Background(), suite.zoneID)

	// Then
	suite.Require().NoError(err)
	suite.Require().Len(couriers, 1)
	suite.True(couriers[0].ID().IsEqual(eligible))
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetEligibleByZone_TiesOrderedByUserID() {
	now := time.Now().UTC()
	first := suite.seed.User("a", actor.Delivery, nil)
	second := suite.seed.User("b", actor.Delivery, nil)
	suite.seed.AssignCourier(suite.zoneID, first, now, true)
	suite.seed.AssignCourier(suite.zoneID, second, now, true)

	couriers, err := suite.repository.GetEligibleByZone(context.Background(), suite.zoneID)

	suite.Require().NoError(err)
	suite.Require().Len(couriers, 2)
	suite.Negative(compareUUID(couriers[0].ID(), couriers[1].ID()))
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet() {
	rider := suite.seed.User("rider", actor.Delivery, nil)
	suite.orderFor(rider, order.EnRoute)

	c, err := suite.repository.Get(context.Background(), rider)

	suite.Require().NoError(err)
	suite.Equal(1, c.ActiveOrders())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NotACourier_NotFound() {
	client := suite.seed.User("bob", actor.Client, nil)

	for _, id := range []kernel.UUID{client, kernel.NewUUID()} {
		_, err := suite.repository.Get(context.Background(), id)

		suite.Require().Error(err)
		suite.ErrorIs(err, errs.ErrObjectNotFound)
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) orderFor(courierID kernel.UUID, status order.Status) {
	suite.seed.Order(pgtest.OrderRow{
		ClientID:  suite.clientID,
		AddressID: suite.addressID,
		BranchID:  suite.branchID,
		CourierID: &courierID,
		Status:    status,
		Total:     "10.00",
	})
}

func compareUUID(a, b kernel.UUID) int {
	switch {
	case a.String() < b.String():
		return -1
	case a.String() > b.String():
		return 1
	default:
		return 0
	}
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
