package router

import (
	"shine/internal/handlers/auth"
	"shine/internal/handlers/availability"
	"shine/internal/handlers/booking"
	"shine/internal/handlers/catalog"
	"shine/internal/handlers/customer"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Catalog      catalog.Handler
	Availability availability.Handler
	Booking      booking.Handler
	Customer     customer.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
