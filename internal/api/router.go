package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cedrulion/murika-farm/internal/api/handler"
	"github.com/cedrulion/murika-farm/internal/api/middleware"
	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
	"github.com/cedrulion/murika-farm/internal/core/service"
	"github.com/cedrulion/murika-farm/internal/infrastructure/config"
	mongodb "github.com/cedrulion/murika-farm/internal/infrastructure/db/mongo"
	redisdb "github.com/cedrulion/murika-farm/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, files ports.FileStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("murika"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	campaignRepo := mongodb.NewCampaignRepository(db)
	expenseRepo := mongodb.NewExpenseRepository(db)
	resourceRepo := mongodb.NewResourceRepository(db)
	presence := redisdb.NewPresenceStore(rdb)

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, presence, log)
	userService := service.NewUserService(userRepo, presence, log)
	messageService := service.NewMessageService(messageRepo, userRepo, log)
	productService := service.NewProductService(productRepo, log)
	campaignService := service.NewCampaignService(campaignRepo, log)
	expenseService := service.NewExpenseService(expenseRepo, log)
	resourceService := service.NewResourceService(resourceRepo, files, log)

	authHandler := handler.NewAuthHandler(authService, presence)
	userHandler := handler.NewUserHandler(userService)
	messageHandler := handler.NewMessageHandler(messageService)
	productHandler := handler.NewProductHandler(productService)
	campaignHandler := handler.NewCampaignHandler(campaignService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	resourceHandler := handler.NewResourceHandler(resourceService)

	auth := middleware.Auth(tokens, userRepo, presence)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/api/auth/signup", authHandler.SignUp)
	e.POST("/api/auth/signin", authHandler.SignIn)

	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated routes ---
	e.POST("/api/auth/logout", authHandler.Logout, auth)

	users := e.Group("/api/users", auth)
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/online", userHandler.Online, adminOnly)
	users.GET("/:id", userHandler.Get)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	messages := e.Group("/api/messages", auth)
	messages.GET("/overview", messageHandler.Inbox)
	messages.GET("/:receiverId", messageHandler.Conversation)
	messages.POST("", messageHandler.Send)
	messages.PATCH("/:id/read", messageHandler.MarkRead)

	products := e.Group("/api/products", auth)
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	productWrite := middleware.RBAC(domain.RoleAdmin, domain.RoleInventoryManager, domain.RoleSupplier)
	products.POST("", productHandler.Create, productWrite)
	products.PUT("/:id", productHandler.Update, productWrite)
	products.DELETE("/:id", productHandler.Delete, productWrite)

	campaigns := e.Group("/api/campaigns", auth)
	campaigns.GET("", campaignHandler.List)
	campaigns.GET("/:id", campaignHandler.Get)
	campaignWrite := middleware.RBAC(domain.RoleAdmin, domain.RoleMarketing)
	campaigns.POST("", campaignHandler.Create, campaignWrite)
	campaigns.PUT("/:id", campaignHandler.Update, campaignWrite)
	campaigns.DELETE("/:id", campaignHandler.Delete, campaignWrite)

	expenses := e.Group("/api/expenses", auth, middleware.RBAC(domain.RoleAdmin, domain.RoleFinance, domain.RoleManager))
	expenses.GET("", expenseHandler.List)
	expenses.GET("/summary", expenseHandler.Summary)
	expenses.GET("/:id", expenseHandler.Get)
	expenses.POST("", expenseHandler.Create)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	resources := e.Group("/api/resources", auth)
	resources.GET("", resourceHandler.List)
	resources.GET("/:id", resourceHandler.Get)
	resources.POST("", resourceHandler.Upload)
	resources.DELETE("/:id", resourceHandler.Delete, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))

	return e
}
