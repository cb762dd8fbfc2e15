package router

import (
	"careops/config"
	"careops/internal/handlers/alert"
	"careops/internal/handlers/auth"
	"careops/internal/handlers/booking"
	"careops/internal/handlers/contact"
	"careops/internal/handlers/conversation"
	"careops/internal/handlers/dashboard"
	"careops/internal/handlers/form"
	"careops/internal/handlers/health"
	"careops/internal/handlers/inventory"
	"careops/internal/handlers/offering"
	"careops/transport/http/middleware"
	"careops/transport/websocket"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	apiPrefix = "/api"
	wsPath    = "/ws"
)

type DomainHandlers struct {
	Health       health.Handler
	Auth         auth.Handler
	Contact      contact.Handler
	Offering     offering.Handler
	Booking      booking.Handler
	Form         form.Handler
	Inventory    inventory.Handler
	Alert        alert.Handler
	Dashboard    dashboard.Handler
	Conversation conversation.Handler
}

type Middlewares struct {
	App      middleware.AppMiddleware
	AuthRole middleware.AuthRole
}

type Router struct {
	Config         *config.Config
	DomainHandlers DomainHandlers
	Middlewares    Middlewares
	Hub            http.Handler
}

func (r *Router) SetupRoutes(router chi.Router) {
	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.Config.App.CORS.AllowedHeaders,
			AllowCredentials: r.Config.App.CORS.AllowCredentials,
			MaxAge:           r.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		chiMiddleware.Recoverer,
		r.Middlewares.App.Tracing,
		r.Middlewares.App.RateLimit(),
	)

	router.Handle(wsPath, r.Hub)

	router.Route(apiPrefix, func(routerGroup chi.Router) {
		if r.Config.App.RequireAuth {
			routerGroup.Use(r.Middlewares.AuthRole.APIKey, r.Middlewares.AuthRole.Auth, r.Middlewares.AuthRole.RBAC)
		}

		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup, r.Middlewares.AuthRole.Auth)
		r.DomainHandlers.Contact.Router(routerGroup)
		r.DomainHandlers.Offering.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Form.Router(routerGroup)
		r.DomainHandlers.Inventory.Router(routerGroup)
		r.DomainHandlers.Alert.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
		r.DomainHandlers.Conversation.Router(routerGroup)
	})
}

func New(cfg *config.Config, domainHandlers DomainHandlers, middlewares Middlewares, hub *websocket.Hub) Router {
	return Router{
		Config:         cfg,
		DomainHandlers: domainHandlers,
		Middlewares:    middlewares,
		Hub:            hub,
	}
}
