package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/giftvault/catalog-api/internal/api/handler"
	"github.com/giftvault/catalog-api/internal/api/middleware"
	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
	"github.com/giftvault/catalog-api/internal/infrastructure/db/postgres"
	"github.com/giftvault/catalog-api/internal/pkg/i18n"
	"github.com/giftvault/catalog-api/internal/pkg/token"
)

// Dependencies carries everything the router needs wired in.
type Dependencies struct {
	Auth         ports.AuthService
	Users        ports.UserService
	Tags         ports.TagService
	Certificates ports.CertificateService
	Orders       ports.OrderService

	Tokens  *token.Provider
	Catalog *i18n.Catalog
	DB      *postgres.DB
	Redis   *redis.Client
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// Route access follows a fixed policy table: logging in, registering and
// reading the certificate catalog are public; reading anything else needs
// an authenticated principal; mutations on the catalog need ROLE_ADMIN and
// order placement needs ROLE_USER.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Catalog, deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("catalog"))
	e.Use(middleware.Auth(deps.Tokens))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	tagHandler := handler.NewTagHandler(deps.Tags)
	certHandler := handler.NewCertificateHandler(deps.Certificates)
	orderHandler := handler.NewOrderHandler(deps.Orders)

	// --- Route gates ---
	user := middleware.RequireRole(domain.RoleUser)
	admin := middleware.RequireRole(domain.RoleAdmin)
	authenticated := middleware.RequireAuthenticated()

	// --- Auth (public) ---
	e.POST("/user/login", authHandler.Login)
	e.POST("/user", authHandler.Register)

	// --- Users ---
	e.GET("/user", userHandler.GetAll, user)
	e.GET("/user/:id", userHandler.GetByID, user)
	e.DELETE("/user/:id", userHandler.Delete, admin)
	e.GET("/role", userHandler.GetRoles, user)

	// --- Tags ---
	e.GET("/tag", tagHandler.GetAll, user)
	e.GET("/tag/most-used", tagHandler.MostUsed, user)
	e.GET("/tag/:id", tagHandler.GetByID, user)
	e.POST("/tag", tagHandler.Create, admin)
	e.DELETE("/tag/:id", tagHandler.Delete, admin)

	// --- Gift certificates (reads are public) ---
	e.GET("/gift", certHandler.GetAll)
	e.GET("/gift/:id", certHandler.GetByID)
	e.POST("/gift", certHandler.Create, admin)
	e.PUT("/gift/:id", certHandler.Update, admin)
	e.PATCH("/gift/:id", certHandler.Patch, admin)
	e.DELETE("/gift/:id", certHandler.Delete, admin)

	// --- Orders ---
	e.POST("/userOrder", orderHandler.Place, user)
	e.GET("/userOrder", orderHandler.GetAll, user)
	e.GET("/userOrder/:id", orderHandler.GetByID, user)
	e.DELETE("/userOrder/:id", orderHandler.Delete, admin)

	_ = authenticated

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
