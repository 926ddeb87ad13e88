// Package router wires handlers, middleware and the URL space together.
package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/OpenLabsEx/API/internal/api/http/handler"
	"github.com/OpenLabsEx/API/internal/api/http/middleware"
	"github.com/OpenLabsEx/API/internal/logger"
	"github.com/OpenLabsEx/API/internal/model"
	"github.com/OpenLabsEx/API/internal/service"
)

// Router builds the HTTP handler tree for the API.
type Router struct {
	prefix          string
	authService     *service.Auth
	userService     *service.User
	templateService *service.Template
	rangeService    *service.Range
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// New creates a new Router instance.
func New(
	prefix string,
	authService *service.Auth,
	userService *service.User,
	templateService *service.Template,
	rangeService *service.Range,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		prefix:          prefix,
		authService:     authService,
		userService:     userService,
		templateService: templateService,
		rangeService:    rangeService,
		contextManager:  contextManager,
		logger:          logger,
	}
}

// Handler registers all routes and middleware and returns the root handler.
func (r *Router) Handler() http.Handler {
	root := mux.NewRouter()
	root.Use(middleware.NewLogging(r.logger).Handle)
	root.Use(middleware.NewYAMLBody(r.logger).Handle)

	translate := middleware.NewTranslate(r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)
	admin := middleware.NewAdmin(r.contextManager)

	authHandler := handler.NewAuth(r.authService, r.logger)
	userHandler := handler.NewUser(r.userService, r.contextManager, r.logger)
	templateHandler := handler.NewTemplate(r.templateService, r.contextManager, r.logger)
	rangeHandler := handler.NewRange(r.rangeService, r.contextManager, r.logger)
	healthHandler := handler.NewHealth()

	api := root.PathPrefix(r.prefix).Subrouter()

	open := func(fn func(http.ResponseWriter, *http.Request) error) http.Handler {
		return translate.Wrap(fn)
	}
	protected := func(fn func(http.ResponseWriter, *http.Request) error) http.Handler {
		return translate.Wrap(authenticate.Wrap(fn))
	}
	adminOnly := func(fn func(http.ResponseWriter, *http.Request) error) http.Handler {
		return translate.Wrap(authenticate.Wrap(admin.Wrap(fn)))
	}

	api.Handle("/health", open(healthHandler.Check)).Methods(http.MethodGet)
	api.Handle("/auth/login", open(authHandler.Login)).Methods(http.MethodPost)
	api.Handle("/auth/register", open(authHandler.Register)).Methods(http.MethodPost)

	api.Handle("/users", adminOnly(userHandler.List)).Methods(http.MethodGet)
	api.Handle("/users/me", protected(userHandler.Me)).Methods(http.MethodGet)
	api.Handle("/users/password", protected(userHandler.UpdatePassword)).Methods(http.MethodPost)
	api.Handle("/users/secrets", protected(userHandler.Secrets)).Methods(http.MethodGet)
	api.Handle("/users/secrets/aws", protected(userHandler.SetAWSCredentials)).Methods(http.MethodPost)
	api.Handle("/users/secrets/azure", protected(userHandler.SetAzureCredentials)).Methods(http.MethodPost)

	api.Handle("/templates/"+handler.KindSlugPattern, protected(templateHandler.List)).Methods(http.MethodGet)
	api.Handle("/templates/"+handler.KindSlugPattern, protected(templateHandler.Create)).Methods(http.MethodPost)
	api.Handle("/templates/"+handler.KindSlugPattern+"/{id}", protected(templateHandler.Get)).Methods(http.MethodGet)

	api.Handle("/ranges", protected(rangeHandler.List)).Methods(http.MethodGet)
	api.Handle("/ranges/deploy", protected(rangeHandler.Deploy)).Methods(http.MethodPost)

	return root
}
