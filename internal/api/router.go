package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/jbinformatica/pedidos-api/internal/api/handler"
	"github.com/jbinformatica/pedidos-api/internal/api/middleware"
	"github.com/jbinformatica/pedidos-api/internal/core/domain"
	"github.com/jbinformatica/pedidos-api/internal/core/ports"
	"github.com/jbinformatica/pedidos-api/internal/core/service"
	"github.com/jbinformatica/pedidos-api/internal/core/token"
	"github.com/jbinformatica/pedidos-api/internal/infrastructure/db/postgres"
)

// Deps carries everything the router needs that is constructed at startup.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Codec    *token.Codec
	Master   service.MasterCredentials
	Notifier ports.Notifier
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("pedidos"))

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(deps.DB)
	clientRepo := postgres.NewClientRepository(deps.DB)
	planRepo := postgres.NewPlanRepository(deps.DB)
	productRepo := postgres.NewProductRepository(deps.DB)
	pedidoRepo := postgres.NewPedidoRepository(deps.DB)

	// --- Services ---
	accessResolver := service.NewAccessResolver(clientRepo, productRepo)
	authService := service.NewAuthService(userRepo, clientRepo, accessResolver, deps.Codec, deps.Master, deps.Log)
	productService := service.NewProductService(productRepo, deps.Log)
	pedidoService := service.NewPedidoService(pedidoRepo, productRepo, deps.Notifier, deps.Log)
	clientService := service.NewClientService(clientRepo, planRepo, deps.Log)
	adminService := service.NewAdminService(planRepo, clientRepo, userRepo, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	pedidoHandler := handler.NewPedidoHandler(pedidoService)
	clientHandler := handler.NewClientHandler(clientService)
	adminHandler := handler.NewAdminHandler(adminService)

	authRequired := middleware.Auth(deps.Codec)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.GET("/auth/profile", authHandler.Profile, authRequired)
	e.PUT("/auth/password", authHandler.ChangePassword, authRequired)
	e.GET("/auth/navigation", authHandler.Navigation, authRequired)

	// --- Catalog ---
	products := e.Group("/v1/products", authRequired)
	products.GET("", productHandler.List)
	products.POST("", productHandler.Create,
		middleware.RequireFeature(accessResolver, domain.FeatureCatalogEdit))
	products.PUT("/:id", productHandler.Update,
		middleware.RequireFeature(accessResolver, domain.FeatureCatalogEdit))
	products.DELETE("/:id", productHandler.Delete,
		middleware.RequireFeature(accessResolver, domain.FeatureCatalogEdit))

	// --- Orders ---
	pedidos := e.Group("/v1/pedidos", authRequired)
	pedidos.GET("", pedidoHandler.List)
	pedidos.POST("", pedidoHandler.Create)
	pedidos.PUT("/:id", pedidoHandler.Update)
	pedidos.DELETE("/:id", pedidoHandler.Delete,
		middleware.RequireRoles(accessResolver, domain.RoleAdmin, domain.RoleMaster))

	// --- Tenants ---
	clients := e.Group("/v1/clients", authRequired,
		middleware.RequireRoles(accessResolver, domain.RoleAdmin, domain.RoleMaster))
	clients.GET("", clientHandler.List)
	clients.GET("/:id", clientHandler.Get)
	clients.POST("", clientHandler.Create)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	// --- Admin surface ---
	admin := e.Group("/v1/admin", authRequired)

	// Plan listing is open to any authenticated caller; writes stay with the
	// master.
	admin.GET("/plans", adminHandler.ListPlans)

	masterOnly := middleware.RequireRoles(accessResolver, domain.RoleMaster)
	admin.POST("/plans", adminHandler.CreatePlan, masterOnly)
	admin.PUT("/plans/:id", adminHandler.UpdatePlan, masterOnly)

	adminClients := admin.Group("/clients", masterOnly)
	adminClients.GET("", clientHandler.List)
	adminClients.POST("", clientHandler.Create)
	adminClients.PUT("/:id/plan", adminHandler.ChangeClientPlan)

	users := admin.Group("/users",
		middleware.RequireRoles(accessResolver, domain.RoleAdmin, domain.RoleMaster))
	users.POST("", adminHandler.CreateUser)
	users.PUT("/:id", adminHandler.UpdateUser)
	users.PUT("/:id/password", adminHandler.SetUserPassword)
	users.DELETE("/:id", adminHandler.DeleteUser)

	// Role changes stay with the master.
	admin.PUT("/users/:id/role", adminHandler.ChangeUserRole, masterOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
