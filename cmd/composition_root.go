package cmd

import (
	"log/slog"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/catalog"
	"storefront/internal/adapters/out/postgres"
	redisout "storefront/internal/adapters/out/redis"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into handlers. Each Create* method returns
// a ready-to-use handler; the narrow Func*UoWFactory adapters let the one
// concrete GormUnitOfWork satisfy every handler's scoped interface.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	ledger     services.InventoryLedger
	merger     services.CartMerger
	catalog    ports.CatalogClient
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCompositionRoot assembles the application graph from its external
// connections.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		ledger:     services.NewInventoryLedger(),
		merger:     services.NewCartMerger(),
		catalog:    catalog.NewHTTPClient(config.CatalogBaseURL),
		publisher:  redisout.NewEventPublisher(redisClient, config.RedisChannel, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateAddToCartCommandHandler() commands.AddToCartCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddToCartCommandHandler(f)
}

func (c *CompositionRoot) CreateRemoveFromCartCommandHandler() commands.RemoveFromCartCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveFromCartCommandHandler(f)
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClearCartCommandHandler(f)
}

func (c *CompositionRoot) CreateMergeCartCommandHandler() commands.MergeCartCommandHandler {
	var f commands.MergeUoWFactory = FuncMergeUoWFactory(func() commands.MergeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMergeCartCommandHandler(f, c.merger, c.publisher)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.ledger, c.catalog, c.publisher)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.ledger, c.publisher)
}

func (c *CompositionRoot) CreatePurgeGuestCartsCommandHandler() commands.PurgeGuestCartsCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPurgeGuestCartsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCheckAvailabilityQueryHandler() queries.CheckAvailabilityQueryHandler {
	return queries.NewCheckAvailabilityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCancellableOrdersQueryHandler() queries.GetCancellableOrdersQueryHandler {
	return queries.NewGetCancellableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRefundableOrdersQueryHandler() queries.GetRefundableOrdersQueryHandler {
	return queries.NewGetRefundableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAttentionOrdersQueryHandler() queries.GetAttentionOrdersQueryHandler {
	return queries.NewGetAttentionOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLowStockQueryHandler() queries.GetLowStockQueryHandler {
	return queries.NewGetLowStockQueryHandler(c.gormDB)
}

// CreateServer builds the HTTP adapter over all handlers.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateAddToCartCommandHandler(),
		c.CreateRemoveFromCartCommandHandler(),
		c.CreateClearCartCommandHandler(),
		c.CreateMergeCartCommandHandler(),
		c.CreateCreateOrderCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateGetCartQueryHandler(),
		c.CreateCheckAvailabilityQueryHandler(),
		c.CreateGetCancellableOrdersQueryHandler(),
		c.CreateGetRefundableOrdersQueryHandler(),
		c.CreateGetAttentionOrdersQueryHandler(),
		c.config.AttentionCutoff,
	)
}

// CreateJobManager builds the background jobs from configuration.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	cartPurgeJob := jobs.NewCartPurgeJob(
		c.CreatePurgeGuestCartsCommandHandler(),
		c.config.GuestCartTTL,
		c.config.CartPurgeSchedule,
		c.logger,
	)
	attentionScanJob := jobs.NewAttentionScanJob(
		c.CreateGetAttentionOrdersQueryHandler(),
		c.CreateGetLowStockQueryHandler(),
		c.config.AttentionCutoff,
		c.config.AttentionScanSchedule,
		c.logger,
	)
	return jobs.NewJobManager(cartPurgeJob, attentionScanJob)
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncMergeUoWFactory func() commands.MergeUoW

func (f FuncMergeUoWFactory) Create() commands.MergeUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
