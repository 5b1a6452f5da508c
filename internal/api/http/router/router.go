package router

import (
	"github.com/akimsavar/authwall/internal/api/http/handler"
	"github.com/akimsavar/authwall/internal/api/http/middleware"
	"github.com/akimsavar/authwall/internal/api/http/request"
	"github.com/akimsavar/authwall/internal/logger"
	"github.com/akimsavar/authwall/internal/service"
	"github.com/gorilla/mux"
)

// Router wires HTTP handlers and middleware into a request multiplexer.
type Router struct {
	authService    *service.Auth
	tokenService   *service.TokenService
	resetService   *service.Reset
	contextManager *request.Manager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	tokenService *service.TokenService,
	resetService *service.Reset,
	contextManager *request.Manager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		tokenService:   tokenService,
		resetService:   resetService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register registers all routes and middleware.
//
// Sign-out deliberately stays off the authenticate middleware: the token
// presented there may already be revoked and the operation must still
// succeed.
func (r *Router) Register() *mux.Router {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.tokenService, r.contextManager, r.logger)
	resetHandler := handler.NewReset(r.resetService, r.logger)

	root := mux.NewRouter()
	root.Use(logging.Handle)

	api := root.PathPrefix("/api").Subrouter()
	api.HandleFunc("/signup", authHandler.SignUp).Methods("POST")
	api.HandleFunc("/signin", authHandler.SignIn).Methods("POST")
	api.HandleFunc("/refresh", authHandler.Refresh).Methods("POST")
	api.HandleFunc("/logout", authHandler.SignOut).Methods("POST")
	api.HandleFunc("/forgot-password", resetHandler.ForgotPassword).Methods("POST")
	api.HandleFunc("/reset-password/{token}", resetHandler.ResetPassword).Methods("POST")
	api.HandleFunc("/public", authHandler.Public).Methods("GET")

	protected := api.NewRoute().Subrouter()
	protected.Use(authenticate.Handle)
	protected.HandleFunc("/dashboard", authHandler.Dashboard).Methods("GET")

	return root
}
