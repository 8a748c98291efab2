package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"court-reserve/internal/handler/api"
	"court-reserve/internal/handler/middleware"
	"court-reserve/internal/infra/db"
	"court-reserve/internal/pkg/config"
	"court-reserve/internal/usecase/shared"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	uow shared.UnitOfWork,
	bookingHandler *api.BookingHandler,
	availabilityHandler *api.AvailabilityHandler,
	pricingHandler *api.PricingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, uow, bookingHandler, availabilityHandler, pricingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	uow shared.UnitOfWork,
	bookingHandler *api.BookingHandler,
	availabilityHandler *api.AvailabilityHandler,
	pricingHandler *api.PricingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck(uow))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		// Availability and quotes are public: customers browse before login.
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/availability", Handler: availabilityHandler.Check},
			{Method: http.MethodPost, Path: "/availability/batch", Handler: availabilityHandler.CheckBatch},
			{Method: http.MethodGet, Path: "/pricing/quote", Handler: pricingHandler.Quote},
		})

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateReservation},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.GetMyReservations},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetReservation},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.Cancel},
			})

			staffOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(middleware.RoleStaff)}
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: bookingHandler.ConfirmPayment, Mw: staffOnly},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: bookingHandler.Complete, Mw: staffOnly},
				{Method: http.MethodPost, Path: "/:id/no-show", Handler: bookingHandler.MarkNoShow, Mw: staffOnly},
			})
		}

		staff := apiGroup.Group("")
		staff.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(middleware.RoleStaff))
		{
			addRoutes(staff, []route{
				{Method: http.MethodPost, Path: "/blocks", Handler: bookingHandler.CreateBlock},
				{Method: http.MethodPost, Path: "/admin/reservations/sweep", Handler: bookingHandler.SweepStale},
				{Method: http.MethodGet, Path: "/courts/:id/reservations", Handler: bookingHandler.GetCourtSchedule},
				{Method: http.MethodGet, Path: "/pricing/rules", Handler: pricingHandler.ListRules},
				{Method: http.MethodPut, Path: "/pricing/rules", Handler: pricingHandler.UpsertRule},
			})
		}
	}
}

// @Summary Health check
// @Description Check service and store connectivity
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func healthCheck(uow shared.UnitOfWork) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := uow.WithDB(c.Request.Context(), func(ctx context.Context, dbtx db.DBTX) error {
			_, pingErr := dbtx.Exec(ctx, "SELECT 1")
			return pingErr
		})
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "degraded",
				"message": "Store is unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Service is healthy",
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
