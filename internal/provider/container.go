package provider

import (
	"context"
	"errors"

	"github.com/gemledger/internal/authz"
	"github.com/gemledger/internal/cache"
	"github.com/gemledger/internal/config"
	"github.com/gemledger/internal/logger"
	"github.com/gemledger/internal/models"
	"github.com/gemledger/internal/queue"
	"github.com/gemledger/internal/repository"
	"github.com/gemledger/internal/service"
	"github.com/gemledger/internal/storage"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Presigner   storage.PhotoPresigner

	// Repositories
	AdminRepo         repository.AdminRepository
	AuthzAuditLogRepo repository.AuthzAuditLogRepository
	StoneRepo         *repository.GormStoneRepository
	ImportBatchRepo   repository.ImportBatchRepository
	QuoteRequestRepo  repository.QuoteRequestRepository

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	EmailService      *service.EmailService
	CaptchaService    *service.CaptchaService
	StoneService      *service.StoneService
	CatalogService    *service.CatalogService
	ImportService     *service.ImportService
	QuoteService      *service.QuoteService
	AuthzAuditService *service.AuthzAuditService
	DashboardService  *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 对象存储未启用时图片直传不可用
	presigner, err := storage.NewS3Presigner(context.Background(), cfg.Storage.S3)
	switch {
	case err == nil:
		c.Presigner = presigner
	case errors.Is(err, storage.ErrDisabled):
	default:
		logger.Warnw("provider_init_s3_failed", "error", err)
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
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
	c.StoneRepo = repository.NewStoneRepository(db)
	c.StoneRepo.SetInsertChunkSize(c.Config.Import.InsertChunkSize)
	c.ImportBatchRepo = repository.NewImportBatchRepository(db)
	c.QuoteRequestRepo = repository.NewQuoteRequestRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.StoneService = service.NewStoneService(c.StoneRepo, c.Presigner)
	c.CatalogService = service.NewCatalogService(c.StoneRepo)
	c.ImportService = service.NewImportService(c.Config.Import, c.StoneRepo, c.ImportBatchRepo, c.QueueClient)
	c.QuoteService = service.NewQuoteService(c.Config.Quote, c.QuoteRequestRepo, c.StoneRepo, c.QueueClient, c.EmailService)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
	c.DashboardService = service.NewDashboardService(c.StoneRepo, c.ImportBatchRepo, c.QuoteRequestRepo)
}
