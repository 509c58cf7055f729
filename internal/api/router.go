package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/ev-charging/api/docs"
	"github.com/ev-charging/api/internal/api/handlers"
	mw "github.com/ev-charging/api/internal/api/middleware"
	"github.com/ev-charging/api/internal/api/types"
	"github.com/ev-charging/api/internal/auth"
)

type Dependencies struct {
	Env                string
	HideErrors         bool
	Tokens             *auth.Tokens
	CORSAllowedOrigins []string
	RateLimiter        *mw.RateLimiter
	TrustProxy         bool
	Store              handlers.Pinger
	AuthHandler        *handlers.AuthHandler
	StationsHandler    *handlers.StationsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	if dep.TrustProxy {
		r.Use(chimid.RealIP)
	}
	r.Use(mw.RequestID)
	r.Use(mw.Recovery(dep.HideErrors))
	r.Use(mw.Logging)
	r.Use(mw.SecureHeaders(dep.Env != "production"))
	r.Use(mw.CORS(dep.CORSAllowedOrigins))
	if dep.RateLimiter != nil {
		r.Use(dep.RateLimiter.Handler)
	}
	r.Use(chimid.Compress(5))

	notFound := func(w http.ResponseWriter, r *http.Request) {
		types.WriteMessage(w, http.StatusNotFound, types.MsgRouteNotFound)
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	hh := handlers.NewHealthHandler(dep.Env, dep.Store)
	r.Get("/", hh.Root)

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", hh.Liveness)
		api.Get("/ready", hh.Readiness)

		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", dep.AuthHandler.Register)
			ar.Post("/login", dep.AuthHandler.Login)

			ar.Group(func(protected chi.Router) {
				protected.Use(mw.Auth(dep.Tokens))
				protected.Get("/me", dep.AuthHandler.Me)
				protected.Post("/logout", dep.AuthHandler.Logout)
			})
		})

		api.Route("/stations", func(sr chi.Router) {
			sr.Use(mw.Auth(dep.Tokens))
			sr.Get("/", dep.StationsHandler.List)
			sr.Post("/", dep.StationsHandler.Create)
			sr.Get("/{id}", dep.StationsHandler.Get)
			sr.Put("/{id}", dep.StationsHandler.Update)
			sr.Delete("/{id}", dep.StationsHandler.Delete)
		})
	})

	return r
}
