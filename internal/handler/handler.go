package handler

import (
	"net/http"

	"labstock/internal/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	router *chi.Mux

	tokens    *auth.TokenManager
	auth      *AuthHandler
	component *ComponentHandler
	checkout  *CheckoutHandler
}

func NewHandler(tokens *auth.TokenManager, authHandler *AuthHandler, componentHandler *ComponentHandler, checkoutHandler *CheckoutHandler) *Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	h := &Handler{
		router:    router,
		tokens:    tokens,
		auth:      authHandler,
		component: componentHandler,
		checkout:  checkoutHandler,
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.router.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)
	})

	h.router.Post("/auth/register", h.auth.Register)
	h.router.Post("/auth/login", h.auth.Login)

	h.router.Get("/components", h.component.ListAll)

	// Session-gated routes
	h.router.Group(func(r chi.Router) {
		r.Use(h.requireSession)
		r.Post("/components/add", h.component.Add)
		r.Get("/components/dashboard", h.component.Dashboard)
		r.Post("/checkout", h.checkout.Submit)
		r.Get("/checkout/my-requests", h.checkout.MyRequests)
	})

	// Admin routes
	h.router.Group(func(r chi.Router) {
		r.Use(h.requireSession, h.requireAdmin)
		r.Get("/admin/pending-checkouts", h.checkout.ListPending)
		r.Post("/admin/approve-checkout/{id}", h.checkout.Approve)
		r.Post("/admin/reject-checkout/{id}", h.checkout.Reject)
		r.Get("/admin/pending-count", h.checkout.PendingCount)
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
