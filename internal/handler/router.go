package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"playpoint/internal/handler/api"
	"playpoint/internal/handler/middleware"
	"playpoint/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Session *api.SessionHandler
	Booking *api.BookingHandler
	Payment *api.PaymentHandler
	Station *api.StationHandler
	Stream  *api.StreamHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		sessions := apiGroup.Group("/sessions")
		sessions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(sessions, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Session.StartSession},
				{Method: http.MethodGet, Path: "", Handler: h.Session.ListActiveSessions},
				{Method: http.MethodPost, Path: "/:stationID/end", Handler: h.Session.EndSession},
				{Method: http.MethodPost, Path: "/:stationID/games", Handler: h.Session.AddGame},
				{Method: http.MethodGet, Path: "/:stationID/cost", Handler: h.Session.CurrentCost},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.ListBookings},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Booking.ConfirmBooking},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.CancelBooking},
				{Method: http.MethodPost, Path: "/:id/checkin", Handler: h.Booking.CheckInBooking},
			})
		}

		payments := apiGroup.Group("/payments")
		{
			// The provider webhook authenticates with a shared secret header,
			// not a staff token.
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/callbacks", Handler: h.Payment.PaymentCallback},
			})

			authed := payments.Group("")
			authed.Use(authMiddleware.RequireAuth())
			addRoutes(authed, []route{
				{Method: http.MethodGet, Path: "/overdue", Handler: h.Payment.ListOverdueTransactions},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Payment.GetTransaction},
				{Method: http.MethodPost, Path: "/:id/initiate", Handler: h.Payment.InitiatePayment},
			})
		}

		stations := apiGroup.Group("/stations")
		stations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(stations, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Station.ListStations},
				{
					Method:  http.MethodPatch,
					Path:    "/:id/status",
					Handler: h.Station.SetStationStatus,
					Mw:      []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(middleware.RoleManager)},
				},
			})
		}

		stream := apiGroup.Group("/stream")
		stream.Use(authMiddleware.OptionalAuth())
		{
			addRoutes(stream, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Stream.Stream},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
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
