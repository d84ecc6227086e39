package handler

import (
	"net/http"

	"doctor-booking/internal/domain/user"
	"doctor-booking/internal/handler/api"
	"doctor-booking/internal/handler/middleware"
	"doctor-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups the booking API handlers.
type Handlers struct {
	Appointments *api.AppointmentHandler
	Doctors      *api.DoctorHandler
	Admin        *api.AdminHandler
	Payments     *api.PaymentHandler
	Users        *api.UserHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg.CORS, logger)
	setupRoutes(engine, cfg.Payment, h, authMiddleware)
}

// NewNotifierRouter serves the notification receiver. Dead letters carry
// patient contact data and need the ops secret.
func NewNotifierRouter(engine *gin.Engine, cfg config.NotifierConfig, logger *middleware.Logger, events *api.EventHandler, outbox *api.OutboxHandler) {
	setupMiddleware(engine, config.CORSConfig{}, logger)
	engine.GET("/health", healthCheck)
	addRoutes(&engine.RouterGroup, []route{
		{Method: http.MethodPost, Path: "/events", Handler: events.Ingest},
		{Method: http.MethodGet, Path: "/outbox/dead-letters", Handler: outbox.DeadLetters,
			Mw: []gin.HandlerFunc{middleware.RequireSharedSecret(middleware.OpsSecretHeader, cfg.Ops.Secret)}},
	})
}

// NewAuditRouter serves the audit receiver.
func NewAuditRouter(engine *gin.Engine, logger *middleware.Logger, events *api.EventHandler) {
	setupMiddleware(engine, config.CORSConfig{}, logger)
	engine.GET("/health", healthCheck)
	addRoutes(&engine.RouterGroup, []route{
		{Method: http.MethodPost, Path: "/events", Handler: events.Ingest},
	})
}

func setupMiddleware(engine *gin.Engine, cors config.CORSConfig, logger *middleware.Logger) {
	slogger := logger.GetSlogLogger()
	engine.Use(middleware.Recovery(slogger))
	if len(cors.AllowOrigins) > 0 {
		engine.Use(middleware.NewCORSMiddleware(cors, slogger))
	}
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler(slogger))
}

func setupRoutes(engine *gin.Engine, payment config.PaymentConfig, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	patientOnly := middleware.RequireRole(user.RolePatient)
	doctorOnly := middleware.RequireRole(user.RoleDoctor)
	adminOnly := middleware.RequireRole(user.RoleAdmin)
	anyRole := middleware.RequireRole(user.RolePatient, user.RoleDoctor, user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		doctors := apiGroup.Group("/doctors")
		{
			addRoutes(doctors, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Doctors.List},
			})

			authRequired := doctors.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPatch, Path: "/:id/availability", Handler: h.Doctors.ChangeAvailability,
					Mw: []gin.HandlerFunc{middleware.RequireRole(user.RoleDoctor, user.RoleAdmin)}},
				{Method: http.MethodGet, Path: "/me/dashboard", Handler: h.Doctors.Dashboard, Mw: []gin.HandlerFunc{doctorOnly}},
				{Method: http.MethodGet, Path: "/me/profile", Handler: h.Doctors.Profile, Mw: []gin.HandlerFunc{doctorOnly}},
				{Method: http.MethodPatch, Path: "/me/profile", Handler: h.Doctors.UpdateProfile, Mw: []gin.HandlerFunc{doctorOnly}},
				{Method: http.MethodGet, Path: "/me/appointments", Handler: h.Doctors.Appointments, Mw: []gin.HandlerFunc{doctorOnly}},
			})
		}

		users := apiGroup.Group("/users")
		users.Use(authMiddleware.RequireAuth(), patientOnly)
		{
			addRoutes(users, []route{
				{Method: http.MethodGet, Path: "/me/profile", Handler: h.Users.Profile},
			})
		}

		appointments := apiGroup.Group("/appointments")
		appointments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(appointments, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Appointments.Book, Mw: []gin.HandlerFunc{patientOnly}},
				{Method: http.MethodGet, Path: "", Handler: h.Appointments.List, Mw: []gin.HandlerFunc{patientOnly}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Appointments.Cancel, Mw: []gin.HandlerFunc{anyRole}},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Appointments.Complete, Mw: []gin.HandlerFunc{doctorOnly}},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), adminOnly)
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/dashboard", Handler: h.Admin.Dashboard},
				{Method: http.MethodGet, Path: "/appointments", Handler: h.Admin.Appointments},
			})
		}

		payments := apiGroup.Group("/payments")
		payments.Use(middleware.RequireSharedSecret(middleware.WebhookSecretHeader, payment.WebhookSecret))
		{
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/callback", Handler: h.Payments.Callback},
			})
		}
	}
}

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
