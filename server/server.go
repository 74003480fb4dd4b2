package server

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/akriva/portal/apiclient"
	"github.com/akriva/portal/identity"
	"github.com/akriva/portal/internal/config"
	"github.com/akriva/portal/session"
)

// Deps holds the external collaborators the portal talks to.
type Deps struct {
	Identity *identity.Client  // identity provider REST client
	API      *apiclient.Client // emissions backend REST client
}

// Server is the portal's HTTP surface: auth form actions, session-guarded
// settings endpoints, and operational endpoints. Every request passes
// through the session resolver exactly once.
type Server struct {
	env      string
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	deps     Deps
	resolver *session.Resolver
	metrics  *Metrics
	validate *validator.Validate
}

func New(cfg config.Config, deps Deps) (*Server, error) {
	if deps.Identity == nil {
		return nil, errors.New("[server.New] identity client is required")
	}
	if deps.API == nil {
		return nil, errors.New("[server.New] api client is required")
	}

	metrics := NewMetrics()

	resolver, err := session.NewResolver(deps.Identity,
		session.WithSecureCookies(cfg.SecureCookies()),
		session.WithRefreshObserver(metrics.ObserveRefresh),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[server.New] failed to create session resolver")
	}

	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		deps:     deps,
		resolver: resolver,
		metrics:  metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		log.Debug().Str("route", route).Msg("registered route")
	}
}
