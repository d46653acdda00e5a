package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopcore/shopcore/domain/entity"
	"github.com/shopcore/shopcore/infrastructure/config"
	"github.com/shopcore/shopcore/infrastructure/http/handler"
	"github.com/shopcore/shopcore/infrastructure/http/middleware"
)

type Options struct {
	Auth           *handler.AuthHandler
	UserManagement *handler.UserManagementHandler
	Catalog        *handler.CatalogHandler
	Payment        *handler.PaymentHandler

	AuthMiddleware *middleware.AuthMiddleware
	RateLimit      *middleware.RateLimitMiddleware

	Config *config.Config
}

// New assembles the /api route table. Every protected route goes through the
// same auth chain; admin routes add the role gate on top.
func New(opts Options) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	requireAuth := opts.AuthMiddleware.RequireAuth
	requireAdmin := func(next http.HandlerFunc) http.HandlerFunc {
		return opts.AuthMiddleware.RequireRole(entity.RoleAdmin, next)
	}

	// Account routes
	api.HandleFunc("/register", opts.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", opts.RateLimit.Limit("login", opts.Auth.Login)).Methods(http.MethodPost)
	api.HandleFunc("/logout", opts.Auth.Logout).Methods(http.MethodPost)
	api.HandleFunc("/forgot-password", opts.RateLimit.Limit("forgot", opts.Auth.ForgotPassword)).Methods(http.MethodPost)
	api.HandleFunc("/reset-password/{token}", opts.Auth.ResetPassword).Methods(http.MethodPost)
	api.HandleFunc("/validate-token", opts.Auth.ValidateToken).Methods(http.MethodGet, http.MethodPost)

	// Admin user management
	api.HandleFunc("/users", requireAdmin(opts.UserManagement.ListUsers)).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", requireAdmin(opts.UserManagement.UpdateUser)).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}", requireAdmin(opts.UserManagement.DeleteUser)).Methods(http.MethodDelete)

	// Catalog
	api.HandleFunc("/products", requireAuth(opts.Catalog.ListProducts)).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", requireAuth(opts.Catalog.GetProduct)).Methods(http.MethodGet)
	api.HandleFunc("/products", requireAdmin(opts.Catalog.CreateProduct)).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}", requireAdmin(opts.Catalog.UpdateProduct)).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", requireAdmin(opts.Catalog.DeleteProduct)).Methods(http.MethodDelete)

	// Payments
	api.HandleFunc("/create-payment-intent", requireAuth(opts.Payment.CreatePaymentIntent)).Methods(http.MethodPost)
	api.HandleFunc("/webhook", opts.Payment.Webhook).Methods(http.MethodPost)

	// Locally stored product images
	if opts.Config.BlobBackend == "local" {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.Config.UploadDir))))
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	if opts.Config.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	// Outermost wrappers: correlation first, then CORS, then metrics.
	var h http.Handler = r
	h = middleware.Metrics("api", h)
	if opts.Config.CORSEnabled && len(opts.Config.CORSAllowedOrigins) > 0 {
		h = middleware.CORS(h, opts.Config.CORSAllowedOrigins, opts.Config.CORSAllowCredentials)
	}
	h = middleware.CorrelationID(h)
	return h
}
