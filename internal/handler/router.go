package handler

import (
	"net/http"

	"academy-booking/internal/domain/user"
	"academy-booking/internal/handler/api"
	"academy-booking/internal/handler/middleware"
	"academy-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth          *api.AuthHandler
	Sessions      *api.SessionHandler
	Bookings      *api.BookingHandler
	Members       *api.MemberHandler
	Announcements *api.AnnouncementHandler
	Settings      *api.SettingsHandler
	Events        *api.EventsHandler
}

// Metrics is what the router needs from the metrics registry.
type Metrics interface {
	middleware.RequestObserver
	Handler() http.Handler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, logger *middleware.Logger, metrics Metrics) {
	setupMiddleware(engine, cfg, logger, metrics)
	setupRoutes(engine, h, authMiddleware, metrics)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, metrics Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware(metrics))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, metrics Metrics) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := authMiddleware.RequireAuth()
	adminOnly := authMiddleware.RequireRole(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/admin", Handler: h.Auth.AdminLogin},
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me, Mw: []gin.HandlerFunc{requireAuth}},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/events", Handler: h.Events.Stream, Mw: []gin.HandlerFunc{requireAuth}},
			{Method: http.MethodGet, Path: "/plans", Handler: h.Members.Plans},
			{Method: http.MethodGet, Path: "/settings", Handler: h.Settings.Get},
			{Method: http.MethodPut, Path: "/settings", Handler: h.Settings.Update, Mw: []gin.HandlerFunc{requireAuth, adminOnly}},
		})

		sessions := apiGroup.Group("/sessions")
		{
			addRoutes(sessions, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Sessions.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Sessions.Get},
				{Method: http.MethodPost, Path: "", Handler: h.Sessions.Create, Mw: []gin.HandlerFunc{requireAuth, adminOnly}},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Sessions.Update, Mw: []gin.HandlerFunc{requireAuth, adminOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Sessions.Delete, Mw: []gin.HandlerFunc{requireAuth, adminOnly}},
				{Method: http.MethodGet, Path: "/:id/bookings", Handler: h.Sessions.Roster, Mw: []gin.HandlerFunc{requireAuth, adminOnly}},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(requireAuth)
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Bookings.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Bookings.List},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Bookings.Cancel},
				{Method: http.MethodPost, Path: "/:id/attendance", Handler: h.Bookings.ToggleAttendance, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		announcements := apiGroup.Group("/announcements")
		{
			addRoutes(announcements, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Announcements.List},
				{Method: http.MethodPost, Path: "", Handler: h.Announcements.Create, Mw: []gin.HandlerFunc{requireAuth, adminOnly}},
				{Method: http.MethodGet, Path: "/unseen", Handler: h.Announcements.Unseen, Mw: []gin.HandlerFunc{requireAuth}},
				{Method: http.MethodPost, Path: "/seen", Handler: h.Announcements.MarkSeen, Mw: []gin.HandlerFunc{requireAuth}},
			})
		}

		members := apiGroup.Group("/members")
		members.Use(requireAuth)
		{
			addRoutes(members, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Members.List, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPost, Path: "/me/children", Handler: h.Members.AddChild},
				{Method: http.MethodDelete, Path: "/me/children/:childId", Handler: h.Members.RemoveChild},
				{Method: http.MethodPut, Path: "/me/plan", Handler: h.Members.SelectPlan},
				{Method: http.MethodPut, Path: "/:id/payment", Handler: h.Members.SetPayment, Mw: []gin.HandlerFunc{adminOnly}},
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
		hs := make([]gin.HandlerFunc, 0, len(r.Mw)+1)
		hs = append(hs, r.Mw...)
		hs = append(hs, r.Handler)
		g.Handle(r.Method, r.Path, hs...)
	}
}
