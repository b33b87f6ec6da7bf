package provider

import (
	"github.com/zydovvn/backend/internal/cache"
	"github.com/zydovvn/backend/internal/config"
	"github.com/zydovvn/backend/internal/logger"
	"github.com/zydovvn/backend/internal/models"
	"github.com/zydovvn/backend/internal/queue"
	"github.com/zydovvn/backend/internal/repository"
	"github.com/zydovvn/backend/internal/service"

	"github.com/shopspring/decimal"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo             repository.AdminRepository
	UserRepo              repository.UserRepository
	CategoryRepo          repository.CategoryRepository
	ListingRepo           repository.ListingRepository
	ListingFeeRepo        repository.ListingFeeRepository
	SellerCounterRepo     repository.SellerCounterRepository
	VoucherRepo           repository.VoucherRepository
	VoucherIssuanceRepo   repository.VoucherIssuanceRepository
	VoucherRedemptionRepo repository.VoucherRedemptionRepository
	NotificationRepo      repository.NotificationRepository

	// Services
	AuthService         *service.AuthService
	FeeService          *service.FeeService
	ListingService      *service.ListingService
	VoucherService      *service.VoucherService
	VoucherAdminService *service.VoucherAdminService
	NotificationService *service.NotificationService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ListingRepo = repository.NewListingRepository(db)
	c.ListingFeeRepo = repository.NewListingFeeRepository(db)
	c.SellerCounterRepo = repository.NewSellerCounterRepository(db)
	c.VoucherRepo = repository.NewVoucherRepository(db)
	c.VoucherIssuanceRepo = repository.NewVoucherIssuanceRepository(db)
	c.VoucherRedemptionRepo = repository.NewVoucherRedemptionRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.AdminRepo, c.UserRepo, c.Config.JWT, c.Config.SellerJWT)
	c.FeeService = service.NewFeeService(
		c.ListingFeeRepo,
		c.SellerCounterRepo,
		c.VoucherRepo,
		c.VoucherIssuanceRepo,
		c.VoucherRedemptionRepo,
		service.FeeServiceOptions{
			FreeLimit:     c.Config.Fee.FreeLimit,
			DefaultAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(c.Config.Fee.DefaultAmount)),
			CacheSeconds:  c.Config.Fee.CacheSeconds,
		},
	)
	c.ListingService = service.NewListingService(c.ListingRepo, c.CategoryRepo, c.FeeService, c.QueueClient)
	c.VoucherService = service.NewVoucherService(c.VoucherRepo, c.VoucherIssuanceRepo)
	c.VoucherAdminService = service.NewVoucherAdminService(c.VoucherRepo, c.VoucherIssuanceRepo, c.VoucherRedemptionRepo)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo)
}
