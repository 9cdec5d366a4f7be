package orderrepo_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies order persistence
// against a real PostgreSQL database.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.repository = orderrepo.NewGormOrderRepository(db)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddPersistsOrder() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddRejectsUnconstructedOrder() {
	ctx := context.Background()

	err := suite.repository.Add(ctx, &order.Order{})
	suite.Require().Error(err)
	suite.ErrorIs(err, order.ErrOrderIsNotConstructed)

	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetReturnsOrder() {
	ctx := context.Background()

	id := kernel.NewUUID()
	location, err := kernel.NewLocation(5, 8)
	suite.Require().NoError(err)

	originalOrder, err := order.NewOrder(id, location, 7)
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, originalOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)

	suite.Equal(id, retrievedOrder.ID())
	suite.Equal(location.X(), retrievedOrder.Location().X())
	suite.Equal(location.Y(), retrievedOrder.Location().Y())
	suite.Equal(7, retrievedOrder.Volume())
	suite.Equal(order.Created, retrievedOrder.Status())
	suite.Nil(retrievedOrder.Courier())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetNonExistentOrderReturnsNotFound() {
	ctx := context.Background()

	retrievedOrder, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdatePersistsStatusTransitions() {
	testCases := []struct {
		name          string
		initialStatus order.Status
		updatedStatus order.Status
	}{
		{
			name:          "created to assigned",
			initialStatus: order.Created,
			updatedStatus: order.Assigned,
		},
		{
			name:          "assigned to completed",
			initialStatus: order.Assigned,
			updatedStatus: order.Completed,
		},
	}

	ctx := context.Background()
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			var courierID *kernel.UUID
			if tc.initialStatus != order.Created {
				cid := kernel.NewUUID()
				courierID = &cid
			}

			initialOrder := suite.createTestOrderWithStatus(tc.initialStatus, courierID)
			err := suite.repository.Add(ctx, initialOrder)
			suite.Require().NoError(err)

			if courierID == nil {
				cid := kernel.NewUUID()
				courierID = &cid
			}

			updatedOrder, err := order.RestoreOrder(
				initialOrder.ID(),
				initialOrder.Location(),
				initialOrder.Volume(),
				tc.updatedStatus,
				courierID,
			)
			suite.Require().NoError(err)

			err = suite.repository.Update(ctx, updatedOrder)
			suite.Require().NoError(err)

			retrievedOrder, err := suite.repository.Get(ctx, initialOrder.ID())
			suite.Require().NoError(err)
			suite.Equal(tc.updatedStatus, retrievedOrder.Status())
			suite.Require().NotNil(retrievedOrder.Courier())
			suite.Equal(*courierID, *retrievedOrder.Courier())
		})
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateNonExistentOrderReturnsError() {
	ctx := context.Background()

	err := suite.repository.Update(ctx, suite.createTestOrder())
	suite.Require().Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetFirstInCreatedStatus() {
	ctx := context.Background()

	orders := suite.createOrdersWithMixedStatuses(ctx)

	retrievedOrder, err := suite.repository.GetFirstInCreatedStatus(ctx)
	suite.Require().NoError(err)
	suite.Equal(order.Created, retrievedOrder.Status())

	found := false
	for _, testOrder := range orders {
		if testOrder.Status() == order.Created && testOrder.ID() == retrievedOrder.ID() {
			found = true
			break
		}
	}
	suite.True(found, "should return one of the created orders")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetFirstInCreatedStatusEmptyBacklog() {
	ctx := context.Background()

	suite.createOrderWithStatus(ctx, order.Assigned)
	suite.createOrderWithStatus(ctx, order.Completed)

	retrievedOrder, err := suite.repository.GetFirstInCreatedStatus(ctx)

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInAssignedStatus() {
	ctx := context.Background()

	suite.createOrdersWithMixedStatuses(ctx)

	assignedOrders, err := suite.repository.GetAllInAssignedStatus(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(assignedOrders, 2)

	for _, assignedOrder := range assignedOrders {
		suite.Equal(order.Assigned, assignedOrder.Status())
		suite.NotNil(assignedOrder.Courier())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInAssignedStatusEmpty() {
	ctx := context.Background()

	suite.createOrderWithStatus(ctx, order.Created)
	suite.createOrderWithStatus(ctx, order.Completed)

	assignedOrders, err := suite.repository.GetAllInAssignedStatus(ctx)
	suite.Require().NoError(err)
	suite.Empty(assignedOrders)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus() {
	ctx := context.Background()

	suite.createOrdersWithMixedStatuses(ctx)

	testCases := []struct {
		name     string
		status   order.Status
		expected int
	}{
		{"created", order.Created, 2},
		{"assigned", order.Assigned, 2},
		{"completed", order.Completed, 1},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			orders, err := suite.repository.GetAllInStatus(ctx, tc.status)
			suite.Require().NoError(err)
			suite.Require().Len(orders, tc.expected)
			for _, o := range orders {
				suite.Equal(tc.status, o.Status())
			}
		})
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestErrorScenarios() {
	testCases := []struct {
		name      string
		operation func() error
		expected  string
	}{
		{
			name: "get with invalid UUID",
			operation: func() error {
				_, err := suite.repository.Get(context.Background(), kernel.UUID{})
				return err
			},
			expected: "required",
		},
		{
			name: "get non-existent order",
			operation: func() error {
				_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
				return err
			},
			expected: "not found",
		},
		{
			name: "update non-existent order",
			operation: func() error {
				return suite.repository.Update(context.Background(), suite.createTestOrder())
			},
			expected: "record not found",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := tc.operation()
			suite.Require().Error(err)
			suite.Contains(strings.ToLower(err.Error()), strings.ToLower(tc.expected))
		})
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestConcurrentReads() {
	ctx := context.Background()

	initialOrder := suite.createTestOrder()
	err := suite.repository.Add(ctx, initialOrder)
	suite.Require().NoError(err)

	results := make(chan *order.Order, 3)
	readErrors := make(chan error, 3)

	for range 3 {
		go func() {
			retrievedOrder, readErr := suite.repository.Get(ctx, initialOrder.ID())
			if readErr != nil {
				readErrors <- readErr
			} else {
				results <- retrievedOrder
			}
		}()
	}

	for range 3 {
		select {
		case result := <-results:
			suite.Equal(initialOrder.ID(), result.ID())
		case readErr := <-readErrors:
			suite.Failf("unexpected error in concurrent read", "%v", readErr)
		}
	}
}

// createOrdersWithMixedStatuses inserts two created, two assigned and one
// completed order.
func (suite *OrderRepositoryIntegrationTestSuite) createOrdersWithMixedStatuses(
	ctx context.Context,
) []*order.Order {
	statuses := []order.Status{order.Created, order.Created, order.Assigned, order.Assigned, order.Completed}

	orders := make([]*order.Order, 0, len(statuses))
	for i, status := range statuses {
		location, err := kernel.NewLocation(kernel.Coordinate(1+i%10), kernel.Coordinate(1+(i*2)%10))
		suite.Require().NoError(err)

		domainOrder, err := order.RestoreOrder(
			kernel.NewUUID(), location, 5+i, status, suite.courierForStatus(status))
		suite.Require().NoError(err)

		err = suite.repository.Add(ctx, domainOrder)
		suite.Require().NoError(err)

		orders = append(orders, domainOrder)
	}

	return orders
}

func (suite *OrderRepositoryIntegrationTestSuite) createOrderWithStatus(
	ctx context.Context, status order.Status,
) *order.Order {
	location, err := kernel.NewLocation(5, 5)
	suite.Require().NoError(err)

	testOrder, err := order.RestoreOrder(kernel.NewUUID(), location, 5, status, suite.courierForStatus(status))
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) courierForStatus(status order.Status) *kernel.UUID {
	if status == order.Assigned || status == order.Completed {
		cid := kernel.NewUUID()
		return &cid
	}
	return nil
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderWithStatus(
	status order.Status, courierID *kernel.UUID,
) *order.Order {
	location, err := kernel.NewLocation(5, 5)
	suite.Require().NoError(err)

	testOrder, err := order.RestoreOrder(kernel.NewUUID(), location, 5, status, courierID)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	location, err := kernel.NewLocation(5, 5)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), location, 5)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
