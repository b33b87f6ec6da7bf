package router

import (
	"fmt"
	"strings"

	"github.com/zydovvn/backend/internal/cache"
	"github.com/zydovvn/backend/internal/config"
	"github.com/zydovvn/backend/internal/constants"
	adminhandlers "github.com/zydovvn/backend/internal/http/handlers/admin"
	publichandlers "github.com/zydovvn/backend/internal/http/handlers/public"
	"github.com/zydovvn/backend/internal/logger"
	"github.com/zydovvn/backend/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按卖家端/管理端分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	listingRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:listing_create", redisPrefix),
		WindowSeconds: cfg.Security.ListingRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ListingRateLimit.MaxAttempts,
		MessageKey:    "error.listing_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/listing-fee", publicHandler.GetCurrentListingFee)
		}

		// 卖家认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.SellerLogin)
		}

		// 卖家接口（需鉴权）
		seller := apiV1.Group("")
		seller.Use(SellerJWTAuthMiddleware(cfg.SellerJWT.SecretKey, c.UserRepo))
		{
			seller.POST("/listings", RateLimitMiddleware(redisClient, listingRule, KeyBySellerID), publicHandler.CreateListing)
			seller.GET("/listings/fee-preview", publicHandler.PreviewListingFee)
			seller.GET("/me/listings", publicHandler.GetMyListings)
			seller.GET("/me/stats", publicHandler.GetMyStats)
			seller.GET("/me/vouchers", publicHandler.GetMyVouchers)
			seller.GET("/me/notifications", publicHandler.GetMyNotifications)
			seller.GET("/me/notifications/unread-count", publicHandler.GetMyUnreadCount)
			seller.POST("/me/notifications/:id/read", publicHandler.MarkNotificationRead)
		}

		// 管理端接口
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			authorized := admin.Group("")
			authorized.Use(AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authorized.POST("/vouchers", adminHandler.CreateVoucher)
				authorized.GET("/vouchers", adminHandler.GetAdminVouchers)
				authorized.PUT("/vouchers/:id", adminHandler.UpdateVoucher)
				authorized.POST("/vouchers/:id/deactivate", adminHandler.DeactivateVoucher)
				authorized.POST("/vouchers/:id/issue", adminHandler.IssueVoucher)
				authorized.GET("/vouchers/:id/redemptions", adminHandler.GetVoucherRedemptions)

				authorized.GET("/listing-fee", adminHandler.GetListingFee)
				authorized.PUT("/listing-fee", adminHandler.SetListingFee)
				authorized.GET("/listing-fee/history", adminHandler.GetListingFeeHistory)
			}
		}
	}

	return r
}
