//go:build wireinject
// +build wireinject

package di

import (
	"shine/config"
	"shine/infras/jwt"
	"shine/infras/kafka"
	"shine/infras/otel"
	"shine/infras/postgres"
	"shine/infras/redis"
	"shine/infras/s3"
	"shine/permissions"
	"shine/shared/cache"
	"shine/transport/http"
	"shine/transport/http/middleware"
	"shine/transport/http/router"

	"github.com/google/wire"

	availabilityRepository "shine/internal/domains/availability/repository"
	availabilityService "shine/internal/domains/availability/service"
	bookingRepository "shine/internal/domains/booking/repository"
	bookingService "shine/internal/domains/booking/service"
	catalogRepository "shine/internal/domains/catalog/repository"
	catalogService "shine/internal/domains/catalog/service"
	customerRepository "shine/internal/domains/customer/repository"
	customerService "shine/internal/domains/customer/service"

	authService "shine/internal/domains/auth/service"
	userRepository "shine/internal/domains/user/repository"

	authHandler "shine/internal/handlers/auth"
	availabilityHandler "shine/internal/handlers/availability"
	bookingHandler "shine/internal/handlers/booking"
	catalogHandler "shine/internal/handlers/catalog"
	customerHandler "shine/internal/handlers/customer"
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
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
	catalogService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityRepository.New,
	availabilityService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	catalogDomain,
	availabilityDomain,
	bookingDomain,
	customerDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	catalogHandler.New,
	availabilityHandler.New,
	bookingHandler.New,
	customerHandler.New,
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
