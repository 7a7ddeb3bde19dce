package cmd

import (
	"kitchen/internal/adapters/out/postgres"
	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/queue"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires the application's long-lived collaborators and
// produces command and query handlers on demand. The queue and scheduler
// are shared in-memory state; one instance serves the whole process.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	orderQueue  *queue.Queue
	scheduler   *services.BatchScheduler
	optimizer   services.QueueOptimizer
	publisher   ports.EventPublisher
	statusCache ports.QueueStatusCache
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	statusCache ports.QueueStatusCache,
) CompositionRoot {
	staffCount := config.KitchenStaff
	if staffCount <= 0 {
		staffCount = 5
	}
	roster := make([]kernel.UUID, 0, staffCount)
	for range staffCount {
		roster = append(roster, kernel.NewUUID())
	}

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		orderQueue:  queue.NewQueue(),
		scheduler:   services.NewBatchScheduler(services.NewRotatingStaffAssigner(roster)),
		optimizer:   services.NewQueueOptimizer(),
		publisher:   publisher,
		statusCache: statusCache,
	}
}

// Scheduler exposes the shared batch scheduler for background jobs.
func (c *CompositionRoot) Scheduler() *services.BatchScheduler {
	return c.scheduler
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.orderQueue, c.scheduler, c.publisher, c.statusCache)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.orderQueue, c.scheduler, c.publisher, c.statusCache)
}

func (c *CompositionRoot) CreateProcessNextBatchCommandHandler() commands.ProcessNextBatchCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessNextBatchCommandHandler(f, c.orderQueue, c.scheduler, c.publisher, c.statusCache)
}

func (c *CompositionRoot) CreateCompleteBatchCommandHandler() commands.CompleteBatchCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteBatchCommandHandler(f, c.scheduler, c.publisher, c.statusCache)
}

func (c *CompositionRoot) CreateOptimizeQueueCommandHandler() commands.OptimizeQueueCommandHandler {
	return commands.NewOptimizeQueueCommandHandler(c.scheduler, c.optimizer, c.statusCache)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByRestaurantQueryHandler() queries.GetOrdersByRestaurantQueryHandler {
	return queries.NewGetOrdersByRestaurantQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueueQueryHandler() queries.GetOrderQueueQueryHandler {
	return queries.NewGetOrderQueueQueryHandler(c.orderQueue)
}

func (c *CompositionRoot) CreateGetQueueStatusQueryHandler() queries.GetQueueStatusQueryHandler {
	return queries.NewGetQueueStatusQueryHandler(c.gormDB, c.orderQueue, c.scheduler, c.statusCache)
}

func (c *CompositionRoot) CreateGetOrderMetricsQueryHandler() queries.GetOrderMetricsQueryHandler {
	return queries.NewGetOrderMetricsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAverageProcessingTimeQueryHandler() queries.GetAverageProcessingTimeQueryHandler {
	return queries.NewGetAverageProcessingTimeQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
