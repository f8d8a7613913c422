package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rosterlab/memberd/internal/api/http/handler"
	"github.com/rosterlab/memberd/internal/api/http/middleware"
	"github.com/rosterlab/memberd/internal/logger"
	"github.com/rosterlab/memberd/internal/model"
)

// Router wires handlers and middleware into the HTTP mux. Registration and
// login are the only anonymous-reachable operations; everything under
// /api/v1/members requires a verified capability.
type Router struct {
	authService    handler.AuthService
	memberService  handler.MemberService
	tokenVerifier  middleware.TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	memberService handler.MemberService,
	tokenVerifier middleware.TokenVerifier,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		memberService:  memberService,
		tokenVerifier:  tokenVerifier,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the mux with all routes and middleware.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenVerifier, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	memberHandler := handler.NewMember(r.memberService, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)

	mux.Route("/api/v1", func(api chi.Router) {
		api.Post("/register", authHandler.Register)
		api.Post("/login", authHandler.Login)

		api.Group(func(guarded chi.Router) {
			guarded.Use(authenticate.Handle)
			guarded.Get("/members", memberHandler.List)
			guarded.Get("/members/{memberID}", memberHandler.Get)
			guarded.Patch("/members/{memberID}", memberHandler.Update)
		})
	})

	return mux
}
