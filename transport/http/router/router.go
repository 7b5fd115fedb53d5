package router

import (
	"github.com/go-chi/chi/v5"

	"innkeep/internal/handlers/agent"
	"innkeep/internal/handlers/auth"
	"innkeep/internal/handlers/booking"
	"innkeep/internal/handlers/maintenance"
	"innkeep/internal/handlers/pricing"
	"innkeep/internal/handlers/room"
	"innkeep/internal/handlers/user"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	Agent       agent.Handler
	Room        room.Handler
	Maintenance maintenance.Handler
	Pricing     pricing.Handler
	Booking     booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Agent.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Maintenance.Router(routerGroup)
		r.DomainHandlers.Pricing.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
