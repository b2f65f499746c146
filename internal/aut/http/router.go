package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aut-dev/aut/internal/aut/service"
	"github.com/aut-dev/aut/internal/aut/store"
	"github.com/aut-dev/aut/pkg/httpx"
	"github.com/aut-dev/aut/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	UserService *service.UserService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService, Logger: r.logger}

	// GET / - user list, read-only page
	r.Mux.Handle("GET /{$}",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// GET /users/{username} - edit form (also the "create new" template)
	r.Mux.Handle("GET /users/{username}",
		httpx.Chain(http.HandlerFunc(h.HandleEdit),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /users - save; carries a plaintext password, so limit by
	// IP + targeted username to slow down abuse of the hashing endpoint
	r.Mux.Handle("POST /users",
		httpx.Chain(http.HandlerFunc(h.HandleSave),
			httpx.RateLimitByIPAndFormField(httpx.ModerateLimit, "name"),
		),
	)

	// GET /users/delete/{username} - delete then redirect to the list
	r.Mux.Handle("GET /users/delete/{username}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
