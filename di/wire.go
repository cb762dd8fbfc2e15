//go:build wireinject
// +build wireinject

package di

import (
	"careops/config"
	"careops/infras/jwt"
	"careops/infras/kafka"
	"careops/infras/otel"
	"careops/infras/postgres"
	"careops/infras/redis"
	"careops/permissions"
	"careops/shared/cache"
	gRepo "careops/shared/repository"
	"careops/transport/http"
	"careops/transport/http/middleware"
	"careops/transport/http/router"
	"careops/transport/websocket"

	alertRepository "careops/internal/domains/alert/repository"
	alertService "careops/internal/domains/alert/service"
	authService "careops/internal/domains/auth/service"
	bookingRepository "careops/internal/domains/booking/repository"
	bookingService "careops/internal/domains/booking/service"
	contactRepository "careops/internal/domains/contact/repository"
	contactService "careops/internal/domains/contact/service"
	conversationRepository "careops/internal/domains/conversation/repository"
	conversationService "careops/internal/domains/conversation/service"
	dashboardService "careops/internal/domains/dashboard/service"
	formRepository "careops/internal/domains/form/repository"
	formService "careops/internal/domains/form/service"
	inventoryRepository "careops/internal/domains/inventory/repository"
	inventoryService "careops/internal/domains/inventory/service"
	offeringRepository "careops/internal/domains/offering/repository"
	offeringService "careops/internal/domains/offering/service"
	userRepository "careops/internal/domains/user/repository"

	"github.com/google/wire"

	alertHandler "careops/internal/handlers/alert"
	authHandler "careops/internal/handlers/auth"
	bookingHandler "careops/internal/handlers/booking"
	contactHandler "careops/internal/handlers/contact"
	conversationHandler "careops/internal/handlers/conversation"
	dashboardHandler "careops/internal/handlers/dashboard"
	formHandler "careops/internal/handlers/form"
	healthHandler "careops/internal/handlers/health"
	inventoryHandler "careops/internal/handlers/inventory"
	offeringHandler "careops/internal/handlers/offering"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	websocket.NewHub,
	wire.Bind(new(websocket.Broadcaster), new(*websocket.Hub)),
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Struct(new(router.Middlewares), "*"),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
)

var repositories = wire.NewSet(
	userRepository.New,
	contactRepository.New,
	offeringRepository.New,
	bookingRepository.New,
	formRepository.New,
	inventoryRepository.New,
	alertRepository.New,
	conversationRepository.New,
	conversationRepository.NewMessage,
)

var services = wire.NewSet(
	authService.New,
	contactService.New,
	offeringService.New,
	bookingService.New,
	formService.New,
	inventoryService.New,
	alertService.New,
	dashboardService.New,
	conversationService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	contactHandler.New,
	offeringHandler.New,
	bookingHandler.New,
	formHandler.New,
	inventoryHandler.New,
	alertHandler.New,
	dashboardHandler.New,
	conversationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		services,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
