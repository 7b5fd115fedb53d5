//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"innkeep/config"
	"innkeep/infras/jwt"
	"innkeep/infras/mailer"
	"innkeep/infras/otel"
	"innkeep/infras/postgres"
	"innkeep/infras/redis"
	"innkeep/permissions"
	"innkeep/shared/cache"
	"innkeep/transport/http"
	"innkeep/transport/http/middleware"
	"innkeep/transport/http/router"

	agentRepository "innkeep/internal/domains/agent/repository"
	agentService "innkeep/internal/domains/agent/service"
	authService "innkeep/internal/domains/auth/service"
	bookingRepository "innkeep/internal/domains/booking/repository"
	bookingService "innkeep/internal/domains/booking/service"
	maintenanceRepository "innkeep/internal/domains/maintenance/repository"
	maintenanceService "innkeep/internal/domains/maintenance/service"
	pricingRepository "innkeep/internal/domains/pricing/repository"
	pricingService "innkeep/internal/domains/pricing/service"
	roomRepository "innkeep/internal/domains/room/repository"
	roomService "innkeep/internal/domains/room/service"
	userRepository "innkeep/internal/domains/user/repository"
	userService "innkeep/internal/domains/user/service"

	agentHandler "innkeep/internal/handlers/agent"
	authHandler "innkeep/internal/handlers/auth"
	bookingHandler "innkeep/internal/handlers/booking"
	maintenanceHandler "innkeep/internal/handlers/maintenance"
	pricingHandler "innkeep/internal/handlers/pricing"
	roomHandler "innkeep/internal/handlers/room"
	userHandler "innkeep/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	mailer.New,
	permissions.Get,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
	userService.New,
)

var agentDomain = wire.NewSet(
	agentRepository.New,
	agentService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewCategory,
	roomService.New,
)

var maintenanceDomain = wire.NewSet(
	maintenanceRepository.New,
	maintenanceService.New,
)

var pricingDomain = wire.NewSet(
	pricingRepository.NewHoliday,
	pricingRepository.NewRateRule,
	pricingRepository.NewRateAudit,
	pricingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	authDomain,
	agentDomain,
	roomDomain,
	maintenanceDomain,
	pricingDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	agentHandler.New,
	roomHandler.New,
	maintenanceHandler.New,
	pricingHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
