package routes

import (
	"wow-campus/internal/delivery/http/handler"
	"wow-campus/internal/delivery/http/middleware"
	"wow-campus/internal/domain/permission"
	"wow-campus/internal/domain/user"
	"wow-campus/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Jobs         *handler.JobsHandler
	Jobseekers   *handler.JobseekersHandler
	Companies    *handler.CompanyHandler
	Agents       *handler.AgentHandler
	Applications *handler.ApplicationsHandler
	Matching     *handler.MatchingHandler
	Admin        *handler.AdminHandler
	Contact      *handler.ContactHandler
	Notify       *ws.Handler
}

type Registry struct {
	h       Handlers
	auth    *middleware.AuthMiddleware
	limiter *middleware.IPRateLimiter
}

// NewRegistry builds the route table. limiter may be nil to disable per-IP
// limits on the public write endpoints.
func NewRegistry(h Handlers, auth *middleware.AuthMiddleware, limiter *middleware.IPRateLimiter) *Registry {
	return &Registry{h: h, auth: auth, limiter: limiter}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app.Group("/api"))
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.h.Health != nil {
		r.h.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.h.Notify != nil {
		r.h.Notify.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(api fiber.Router) {
	authed := r.auth.Middleware()
	limited := r.limited()
	adminOnly := middleware.RequireRole(user.TypeAdmin)

	if r.h.Auth != nil {
		r.h.Auth.RegisterRoutes(api.Group("/auth"), authed, limited)
	}
	if r.h.Jobs != nil {
		r.h.Jobs.RegisterRoutes(api.Group("/jobs"), r.auth.OptionalAuth(), authed, middleware.RequireAction(permission.ActionPostJobs))
	}
	if r.h.Jobseekers != nil {
		r.h.Jobseekers.RegisterRoutes(api.Group("/jobseekers", authed))
	}
	if r.h.Companies != nil {
		r.h.Companies.RegisterAdminRoutes(api.Group("/companies", authed, adminOnly))
		r.h.Companies.RegisterProfileRoutes(api.Group("/profile/company", authed, middleware.RequireRole(user.TypeCompany)))
	}
	if r.h.Agents != nil {
		r.h.Agents.RegisterRoutes(api.Group("/agents"), r.auth.OptionalAuth(), authed, adminOnly, middleware.RequireRole(user.TypeAgent))
	}
	if r.h.Applications != nil {
		r.h.Applications.RegisterRoutes(api.Group("/applications", authed))
	}
	if r.h.Matching != nil {
		r.h.Matching.RegisterRoutes(api.Group("/matching"))
	}
	if r.h.Admin != nil {
		r.h.Admin.RegisterRoutes(api.Group("/admin", authed, adminOnly))
	}
	if r.h.Contact != nil {
		r.h.Contact.RegisterRoutes(api.Group("/contact"), limited)
	}
}

func (r *Registry) limited() fiber.Handler {
	if r.limiter == nil {
		return nil
	}
	return r.limiter.Middleware()
}
