package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/lifedrop/blood-donation-api/internal/api/handler"
	"github.com/lifedrop/blood-donation-api/internal/api/middleware"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
	"github.com/lifedrop/blood-donation-api/internal/infrastructure/http/handlers"
	"github.com/lifedrop/blood-donation-api/pkg/logger"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Donations ports.DonationService
	Users     ports.UserService
	Blogs     ports.BlogService
	Auth      ports.AuthService
	Verifier  ports.CredentialVerifier
	// UserLookup backs the role gate; usually the user repository.
	UserLookup middleware.UserLookup
	Checks     map[string]handlers.Check

	Logger       zerolog.Logger
	CORSOrigins  []string
	SecureCookie bool

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(contextLogger(deps.Logger))
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, handler.HeaderIdempotencyKey},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "blood_donation",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authn := middleware.Authenticate(deps.Verifier)
	users := deps.UserLookup

	// --- Session ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.SecureCookie)
	e.POST("/jwt", authHandler.IssueSession, authn)

	// --- Donation requests ---
	donations := handler.NewDonationHandler(deps.Donations)
	dr := e.Group("/donationRequests", authn)
	dr.GET("", donations.List, gate(users, OpListRequests))
	dr.POST("", donations.Create, gate(users, OpCreateRequest))
	dr.GET("/pending", donations.ListPending, gate(users, OpReadRequest))
	dr.GET("/pending/:id", donations.GetPending, gate(users, OpReadRequest))
	dr.GET("/:id", donations.Get, gate(users, OpReadRequest))
	dr.POST("/:id/confirm", donations.Confirm, gate(users, OpConfirmRequest))
	dr.PATCH("/:id/status/donor", donations.Finalize, gate(users, OpFinalize))
	dr.PATCH("/:id/status/admin", donations.Moderate, gate(users, OpModerate))
	dr.PATCH("/:id", donations.Patch, gate(users, OpUpdateRequest))
	dr.PUT("/:id", donations.Replace, gate(users, OpUpdateRequest))
	dr.DELETE("/:id", donations.Delete, gate(users, OpDeleteRequest))
	// Legacy listing path kept for existing web clients.
	e.GET("/allBloodDonationRequest", donations.List, authn, gate(users, OpListRequests))

	// --- Users ---
	userHandler := handler.NewUserHandler(deps.Users)
	u := e.Group("/users", authn)
	u.POST("", userHandler.Register) // registration: the caller has no record yet
	u.GET("", userHandler.List, gate(users, OpListUsers))
	u.GET("/search", userHandler.Search, gate(users, OpSearchUsers))
	u.GET("/:email", userHandler.Get, gate(users, OpReadProfile))
	u.PUT("/:email", userHandler.UpdateProfile, gate(users, OpEditProfile))
	u.GET("/:email/role", userHandler.Role, gate(users, OpReadRole))
	u.PATCH("/:id/status", userHandler.SetStatus, gate(users, OpAdministrate))
	u.PATCH("/:id/role", userHandler.SetRole, gate(users, OpAdministrate))

	// --- Blogs ---
	blogHandler := handler.NewBlogHandler(deps.Blogs)
	b := e.Group("/blogs", authn)
	b.GET("", blogHandler.List, gate(users, OpListBlogs))
	b.POST("", blogHandler.Create, gate(users, OpWriteBlog))
	b.PATCH("/:id/publish", blogHandler.Publish, gate(users, OpManageBlogs))
	b.PATCH("/:id/unpublish", blogHandler.Unpublish, gate(users, OpManageBlogs))
	b.DELETE("/:id", blogHandler.Delete, gate(users, OpManageBlogs))

	return e
}

// contextLogger attaches a logger carrying the request id to the request
// context, so handlers and the error handler log with it.
func contextLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			scoped := log.With().Str("request_id", id).Logger()
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context(), scoped)))
			return next(c)
		}
	}
}

// requestLogger emits one structured zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				ev = log.Error().Err(v.Error)
			case v.Error != nil:
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
