package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gemledger/internal/authz"
	"github.com/gemledger/internal/cache"
	"github.com/gemledger/internal/config"
	adminhandlers "github.com/gemledger/internal/http/handlers/admin"
	publichandlers "github.com/gemledger/internal/http/handlers/public"
	"github.com/gemledger/internal/http/response"
	"github.com/gemledger/internal/logger"
	"github.com/gemledger/internal/metrics"
	"github.com/gemledger/internal/provider"

	"github.com/gin-gonic/gin"
)

const defaultMetricsPath = "/metrics"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()
	r.MaxMultipartMemory = cfg.Import.MaxUploadBytes()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "gl"
	}
	redisClient := cache.Client()
	adminLoginRule := RuleFromConfig(fmt.Sprintf("%s:rate:admin_login", redisPrefix), "error.login_too_many", cfg.Security.LoginRateLimit)
	quoteRule := RuleFromConfig(fmt.Sprintf("%s:rate:quote", redisPrefix), "error.rate_limited", cfg.Security.QuoteRateLimit)
	quoteRule.FailOpen = true

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	if cfg.Metrics.Enabled {
		r.Use(metrics.Middleware())
	}

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/stones", publicHandler.GetStones)
			public.GET("/stones/summary", publicHandler.GetStoneSummary)
			public.GET("/stones/:sku", publicHandler.GetStoneBySKU)
			public.GET("/filters", publicHandler.GetFilters)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
			public.POST("/quote-requests", RateLimitMiddleware(redisClient, quoteRule, KeyByIPAndJSONField("email")), publicHandler.CreateQuoteRequest)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetAdminMe)
				authorized.PUT("/password", adminHandler.ChangeAdminPassword)
				authorized.GET("/dashboard", adminHandler.GetDashboard)

				// 库存管理
				authorized.GET("/stones", adminHandler.ListStones)
				authorized.POST("/stones", adminHandler.UpsertStone)
				authorized.GET("/stones/:id", adminHandler.GetStone)
				authorized.PUT("/stones/:id", adminHandler.UpdateStone)
				authorized.DELETE("/stones/:id", adminHandler.DeleteStone)
				authorized.PATCH("/stones/:id/status", adminHandler.UpdateStoneStatus)
				authorized.PATCH("/stones/:id/priority", adminHandler.UpdateStonePriority)
				authorized.POST("/stones/:id/photo/presign", adminHandler.PresignStonePhoto)

				// 表格导入
				authorized.POST("/stones/import", adminHandler.ImportStones)
				authorized.POST("/stones/import/rows", adminHandler.ImportStoneRows)
				authorized.GET("/stones/import/pending", adminHandler.GetPendingImport)
				authorized.GET("/stones/import/template", adminHandler.DownloadImportTemplate)
				authorized.POST("/stones/import/:id/resolve", adminHandler.ResolveImport)
				authorized.POST("/stones/import/:id/cancel", adminHandler.CancelImport)
				authorized.GET("/import-batches", adminHandler.ListImportBatches)

				// 询价单
				authorized.GET("/quote-requests", adminHandler.ListQuoteRequests)
				authorized.GET("/quote-requests/:id", adminHandler.GetQuoteRequest)
				authorized.PATCH("/quote-requests/:id/status", adminHandler.UpdateQuoteRequestStatus)

				// 权限管理
				authorized.GET("/authz/admins", adminHandler.ListAdmins)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAdminRoles)
				authorized.GET("/authz/admins/:id/audit-logs", adminHandler.ListAuthzAuditLogs)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	if cfg.Metrics.Enabled {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = defaultMetricsPath
		}
		r.GET(path, gin.WrapH(metrics.Handler()))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildAdminPermissionCatalog 从已注册路由生成可授权的权限清单
func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	if segments[1] == "import-batches" || (segments[1] == "stones" && len(segments) > 2 && segments[2] == "import") {
		return "import"
	}
	return segments[1]
}
