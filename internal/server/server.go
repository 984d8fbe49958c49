package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dukerupert/listmate/internal/auth"
	"github.com/dukerupert/listmate/internal/email"
	"github.com/dukerupert/listmate/internal/handler"
	"github.com/dukerupert/listmate/internal/middleware"
	"github.com/dukerupert/listmate/internal/service"
	"github.com/dukerupert/listmate/internal/store"
)

type Server struct {
	db          *sql.DB
	authH       *handler.AuthHandler
	userH       *handler.UserHandler
	listH       *handler.ListHandler
	itemH       *handler.ItemHandler
	tokens      *auth.TokenManager
	rateLimiter *middleware.RateLimiter
	metrics     *middleware.Metrics
	registry    *prometheus.Registry
	logger      *slog.Logger
}

func New(db *sql.DB, tokens *auth.TokenManager, mailer *email.Client, logger *slog.Logger) *Server {
	userStore := store.NewUserStore(db)
	listStore := store.NewListStore(db)
	itemStore := store.NewItemStore(db)

	authenticator := auth.NewAuthenticator(userStore)
	listSvc := service.NewListService(listStore, itemStore, userStore)
	itemSvc := service.NewItemService(listStore, itemStore, userStore)
	userSvc := service.NewUserService(userStore, listStore)

	registry := prometheus.NewRegistry()

	return &Server{
		db:          db,
		authH:       handler.NewAuthHandler(authenticator, tokens, userStore, logger.With("component", "auth")),
		userH:       handler.NewUserHandler(userSvc, logger.With("component", "user")),
		listH:       handler.NewListHandler(listSvc, mailer, logger.With("component", "list")),
		itemH:       handler.NewItemHandler(itemSvc, logger.With("component", "item")),
		tokens:      tokens,
		rateLimiter: middleware.NewRateLimiter(),
		metrics:     middleware.NewMetrics(registry),
		registry:    registry,
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /auth/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.tokens)
	outerMux.Handle("/", authMiddleware(protectedMux))

	logged := middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
	return s.metrics.Instrument(logged)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /auth", s.authH.Me)

	mux.HandleFunc("GET /users", s.userH.List)
	mux.HandleFunc("GET /users/{id}", s.userH.Get)
	mux.HandleFunc("PUT /users/{id}", s.userH.Update)
	mux.HandleFunc("DELETE /users/{id}", s.userH.Delete)

	mux.HandleFunc("POST /lists", s.listH.Create)
	mux.HandleFunc("GET /lists", s.listH.List)
	mux.HandleFunc("GET /lists/{id}", s.listH.Get)
	mux.HandleFunc("PUT /lists/{id}", s.listH.Update)
	mux.HandleFunc("DELETE /lists/{id}", s.listH.Delete)

	mux.HandleFunc("POST /lists/{id}/participants", s.listH.AddParticipant)
	mux.HandleFunc("DELETE /lists/{id}/participants", s.listH.RemoveParticipant)
	mux.HandleFunc("GET /lists/{id}/participants", s.listH.GetParticipants)

	mux.HandleFunc("POST /lists/{list_id}/items", s.itemH.Create)
	mux.HandleFunc("PUT /lists/{list_id}/items/{item_id}", s.itemH.Update)
	mux.HandleFunc("DELETE /lists/{list_id}/items/{item_id}", s.itemH.Delete)
	mux.HandleFunc("POST /lists/{list_id}/items/{item_id}/assign", s.itemH.Claim)
	mux.HandleFunc("POST /lists/{list_id}/items/{item_id}/unassign", s.itemH.Release)
}
