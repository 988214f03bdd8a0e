package components

import (
	"academy-booking/internal/handler"
	"academy-booking/internal/handler/api"
	"academy-booking/internal/handler/middleware"
	"academy-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewSessionHandler,
		api.NewBookingHandler,
		api.NewMemberHandler,
		api.NewAnnouncementHandler,
		api.NewSettingsHandler,
		api.NewEventsHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(registerRoutes),
)

type routerParams struct {
	fx.In

	Engine        *gin.Engine
	Config        config.Config
	Logger        *middleware.Logger
	Metrics       handler.Metrics
	Auth          *middleware.AuthMiddleware
	AuthAPI       *api.AuthHandler
	Sessions      *api.SessionHandler
	Bookings      *api.BookingHandler
	Members       *api.MemberHandler
	Announcements *api.AnnouncementHandler
	Settings      *api.SettingsHandler
	Events        *api.EventsHandler
}

func registerRoutes(p routerParams) {
	handler.NewRouter(p.Engine, p.Config, handler.Handlers{
		Auth:          p.AuthAPI,
		Sessions:      p.Sessions,
		Bookings:      p.Bookings,
		Members:       p.Members,
		Announcements: p.Announcements,
		Settings:      p.Settings,
		Events:        p.Events,
	}, p.Auth, p.Logger, p.Metrics)
}
