package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/boltayevjahongir/task-manager/docs" // Import generated docs
	"github.com/boltayevjahongir/task-manager/internal/config"
	"github.com/boltayevjahongir/task-manager/internal/handler/dto"
	"github.com/boltayevjahongir/task-manager/internal/middleware"
	"github.com/boltayevjahongir/task-manager/internal/repository"
	"github.com/boltayevjahongir/task-manager/internal/service"
	"github.com/boltayevjahongir/task-manager/internal/token"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool           *pgxpool.Pool
	taskService    *service.TaskService
	userService    *service.UserService
	taskRepo       *repository.TaskRepository
	userRepo       *repository.UserRepository
	commentRepo    *repository.CommentRepository
	authorizer     *service.Authorizer
	authMiddleware *middleware.AuthMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool, cfg *config.Config) *Handler {
	// Create repositories
	taskRepo := repository.NewTaskRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)

	// Create services
	tokens := token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	taskService := service.NewTaskService(taskRepo, userRepo)
	userService := service.NewUserService(userRepo, tokens, cfg.InitialAdminEmail)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(userRepo, tokens)

	return &Handler{
		pool:           pool,
		taskService:    taskService,
		userService:    userService,
		taskRepo:       taskRepo,
		userRepo:       userRepo,
		commentRepo:    commentRepo,
		authorizer:     service.NewAuthorizer(),
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// Authentication routes (public)
	mux.HandleFunc("POST /api/v1/auth/signup", h.handleSignup)
	mux.HandleFunc("POST /api/v1/auth/login", h.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/refresh", h.handleRefresh)
	mux.Handle("GET /api/v1/auth/me", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleMe)))

	// Task routes; literal segments win over {id} in the 1.22 mux, so
	// /tasks/overdue and /tasks/stats never collide with /tasks/{id}
	mux.Handle("GET /api/v1/tasks", h.protected(h.handleListTasks))
	mux.Handle("POST /api/v1/tasks", h.protected(h.handleCreateTask))
	mux.Handle("GET /api/v1/tasks/overdue", h.protected(h.handleOverdueTasks))
	mux.Handle("GET /api/v1/tasks/stats", h.protected(h.handleGetStats))
	mux.Handle("GET /api/v1/tasks/{id}", h.protected(h.handleGetTask))
	mux.Handle("PUT /api/v1/tasks/{id}", h.protected(h.handleUpdateTask))
	mux.Handle("DELETE /api/v1/tasks/{id}", h.protected(h.handleDeleteTask))
	mux.Handle("PATCH /api/v1/tasks/{id}/status", h.protected(h.handleTransitionStatus))

	// Comment routes
	mux.Handle("GET /api/v1/tasks/{id}/comments", h.protected(h.handleListComments))
	mux.Handle("POST /api/v1/tasks/{id}/comments", h.protected(h.handleCreateComment))
	mux.Handle("DELETE /api/v1/comments/{id}", h.protected(h.handleDeleteComment))

	// User management routes (admin only)
	mux.Handle("GET /api/v1/users", h.adminOnly(h.handleListUsers))
	mux.Handle("GET /api/v1/users/pending", h.adminOnly(h.handleListPendingUsers))
	mux.Handle("GET /api/v1/users/developers", h.adminOnly(h.handleListDevelopers))
	mux.Handle("POST /api/v1/users/{id}/approve", h.adminOnly(h.handleApproveUser))
	mux.Handle("POST /api/v1/users/{id}/reject", h.adminOnly(h.handleRejectUser))
	mux.Handle("PATCH /api/v1/users/{id}/role", h.adminOnly(h.handleChangeRole))
}

// protected chains authentication and the approved-account gate.
func (h *Handler) protected(fn http.HandlerFunc) http.Handler {
	return h.authMiddleware.Authenticate(h.authMiddleware.RequireApproved(fn))
}

// adminOnly additionally requires the admin role.
func (h *Handler) adminOnly(fn http.HandlerFunc) http.Handler {
	return h.authMiddleware.Authenticate(h.authMiddleware.RequireApproved(h.authMiddleware.RequireAdmin(fn)))
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// extractPathID extracts and validates a UUID path parameter.
// Returns (id, true) if valid, ("", false) if invalid (error already sent to client).
func extractPathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" is required")
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" must be a valid UUID")
		return "", false
	}

	return id, true
}
