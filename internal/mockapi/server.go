// Package mockapi is a development stand-in for the remote EduCart REST
// API: JWT auth, a seeded catalog, per-user server carts and order
// placement, wired the way the real backend answers.
package mockapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/fracki1010/edu-cart-app/internal/mockapi/store"
)

type ctxKey string

const (
	ctxKeyUserID    ctxKey = "user_id"
	ctxKeyRole      ctxKey = "role"
	ctxKeyRequestID ctxKey = "request_id"
)

type Server struct {
	log    *zap.Logger
	secret []byte
	carts  store.CartStore

	mu            sync.RWMutex
	users         map[string]*user // keyed by username
	usersByID     map[int64]*user
	products      []*product
	categories    []category
	orders        []*order
	nextUserID    int64
	nextProductID int64
	nextOrderID   int64
}

func New(jwtSecret string, carts store.CartStore, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		log:       log,
		secret:    []byte(jwtSecret),
		carts:     carts,
		users:     make(map[string]*user),
		usersByID: make(map[int64]*user),
	}
	s.seed()
	return s
}

// Handler builds the full router. The otelhttp wrapper mirrors how the
// real gateway instruments its inbound traffic.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/register", s.handleRegister)

	r.Get("/products", s.handleListProducts)
	r.Get("/products/{product_id}", s.handleGetProduct)
	r.Get("/categories", s.handleListCategories)

	// Authenticated surface
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Patch("/auth/me", s.handleUpdateProfile)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.handleGetCart)
			r.Post("/", s.handleAddCartItem)
			r.Put("/", s.handleUpdateCartItem)
			r.Delete("/", s.handleClearCart)
			r.Delete("/items/{product_id}", s.handleRemoveCartItem)
		})

		r.Post("/orders", s.handleCreateOrder)
		r.Get("/orders/my-orders", s.handleMyOrders)

		r.Group(func(r chi.Router) {
			r.Use(s.adminOnly)
			r.Post("/products", s.handleCreateProduct)
			r.Patch("/products/{product_id}", s.handleUpdateProduct)
			r.Delete("/products/{product_id}", s.handleDeleteProduct)
			r.Get("/orders/admin/all", s.handleAllOrders)
		})
	})

	return otelhttp.NewHandler(r, "mockapi")
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}

func contextWithUser(ctx context.Context, userID int64, role string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUserID, userID)
	return context.WithValue(ctx, ctxKeyRole, role)
}

func userIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(ctxKeyUserID).(int64); ok {
		return id
	}
	return 0
}

func roleFromContext(ctx context.Context) string {
	if role, ok := ctx.Value(ctxKeyRole).(string); ok {
		return role
	}
	return ""
}
