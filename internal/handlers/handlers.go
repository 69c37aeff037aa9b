package handlers

import (
	"SmartDocs/internal/config"
	"SmartDocs/internal/middleware"
	"SmartDocs/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler wires the routes.
func NewHandler(
	userService *service.UserService,
	documentService *service.DocumentService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	documentHandler := NewDocumentHandler(documentService, userService, logger, config)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Get("/api/user/me", userHandler.Me)

	// Document routes
	r.Post("/api/documents", documentHandler.Upload)
	r.Get("/api/documents", documentHandler.List)
	r.Get("/api/documents/{id}", documentHandler.Download)
	r.Delete("/api/documents/{id}", documentHandler.Delete)
	r.Post("/api/documents/{id}/access", documentHandler.Grant)

	return &Handler{Router: r}
}
