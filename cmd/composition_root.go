package cmd

import (
	"fmt"
	"log/slog"

	"dispatch/internal/adapters/in/http"
	inkafka "dispatch/internal/adapters/in/kafka"
	"dispatch/internal/adapters/out/geo"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters and use case handlers together.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	geoClient *geo.Client
	producer  *kafka.Producer

	kafkaBrokers         string
	kafkaConsumerGroup   string
	basketConfirmedTopic string

	outboxBatchSize int
	logger          *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	geoClient, err := geo.NewClient(configs.GeoServiceURL)
	if err != nil {
		return nil, fmt.Errorf("create geo client: %w", err)
	}

	producer, err := kafka.NewProducer(configs.KafkaBrokers, configs.KafkaTopic)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &CompositionRoot{
		gormDB:               gormDB,
		uowFactory:           *postgres.NewGormUnitOfWorkFactory(gormDB),
		geoClient:            geoClient,
		producer:             producer,
		kafkaBrokers:         configs.KafkaBrokers,
		kafkaConsumerGroup:   configs.KafkaConsumerGroup,
		basketConfirmedTopic: configs.KafkaBasketConfirmedTopic,
		outboxBatchSize:      configs.OutboxBatchSize,
		logger:               logger,
	}, nil
}

// Close releases adapter resources. Call once during shutdown.
func (c *CompositionRoot) Close() error {
	return c.producer.Close()
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateAddCourierStorageCommandHandler() commands.AddCourierStorageCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddCourierStorageCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.geoClient)
}

func (c *CompositionRoot) CreateMoveCouriersCommandHandler() commands.MoveCouriersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewMoveCouriersCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.producer, c.outboxBatchSize, c.logger)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateCourierCommandHandler(),
		c.CreateAddCourierStorageCommandHandler(),
		c.CreateCreateOrderCommandHandler(),
		c.CreateGetAllCouriersQueryHandler(),
		c.CreateGetUncompletedOrdersQueryHandler(),
	)
}

func (c *CompositionRoot) CreateBasketEventsConsumer() (*inkafka.BasketEventsConsumer, error) {
	handler := c.CreateCreateOrderCommandHandler()
	return inkafka.NewBasketEventsConsumer(
		c.kafkaBrokers,
		c.kafkaConsumerGroup,
		c.basketConfirmedTopic,
		&handler,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateMoveCouriersCommandHandler(),
		c.CreateAssignOrderCommandHandler(),
		c.CreateRelayOutboxCommandHandler(),
		c.logger,
	)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
