package cmd

import (
	"log/slog"
	"time"

	"nexaci/internal/adapters/out/postgres"
	"nexaci/internal/adapters/out/redis/identitycache"
	"nexaci/internal/core/application/usecases/commands"
	"nexaci/internal/core/application/usecases/queries"
	"nexaci/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// identityCacheTTL bounds how long a phone-to-account mapping may be served
// without consulting the accounts table.
const identityCacheTTL = time.Hour

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	redisClient *redis.Client
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		redisClient: redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
		}),
	}
}

func (c *CompositionRoot) CreateRegisterAccountCommandHandler() commands.RegisterAccountCommandHandler {
	var f commands.AccountUoWFactory = FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterAccountCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateMandateCommandHandler() commands.CreateMandateCommandHandler {
	var f commands.MandateUoWFactory = FuncMandateUoWFactory(func() commands.MandateUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateMandateCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionEntityCommandHandler() commands.TransitionEntityCommandHandler {
	return commands.NewTransitionEntityCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateAssignAgentCommandHandler() commands.AssignAgentCommandHandler {
	return commands.NewAssignAgentCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateTrackEntityQueryHandler() queries.TrackEntityQueryHandler {
	return queries.NewTrackEntityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateResolveIdentityQueryHandler() queries.ResolveIdentityQueryHandler {
	cache := identitycache.NewRedisIdentityCache(c.redisClient, identityCacheTTL)
	return queries.NewResolveIdentityQueryHandler(c.uowFactory.Create().AccountRepository(), cache)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.createUoWFactory(), c.CreateTransitionEntityCommandHandler(), logger)
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncMandateUoWFactory func() commands.MandateUoW

func (f FuncMandateUoWFactory) Create() commands.MandateUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
