package httpx

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/sportsbazar/catalog-api/internal/core"
	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
	"github.com/sportsbazar/catalog-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Categories *service.CategoryService
	Items      *service.ItemService
	Auth       *service.AuthService
	Users      core.UserRepository
	Guard      domainauth.Guard

	// Optional metrics recorder; nil disables request, login, and mutation
	// metrics.
	Metrics MetricsRecorder
	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler

	// RateLimitRPS caps per-client request rate when positive.
	RateLimitRPS   float64
	RateLimitBurst int

	Logger *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	catalogHandlers := &CatalogHandlers{
		Categories: services.Categories,
		Items:      services.Items,
		Users:      services.Users,
		Logger:     logger,
	}
	categoryHandlers := &CategoryHandlers{
		Svc:    services.Categories,
		Guard:  services.Guard,
		Logger: logger,
	}
	itemHandlers := &ItemHandlers{
		Svc:        services.Items,
		Categories: services.Categories,
		Guard:      services.Guard,
		Logger:     logger,
	}
	authHandlers := &AuthHandlers{Svc: services.Auth, Logger: logger}
	if services.Metrics != nil {
		authHandlers.Metrics = services.Metrics
		categoryHandlers.Metrics = services.Metrics
		itemHandlers.Metrics = services.Metrics
	}

	registerCatalogRoutes(mux, catalogHandlers, services.Auth)
	registerMutationRoutes(mux, categoryHandlers, itemHandlers, services.Auth)
	registerAuthRoutes(mux, authHandlers, services.Auth)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	if services.MetricsHandler != nil {
		mux.Handle("GET /metrics", services.MetricsHandler)
	}

	var handler http.Handler = mux
	if services.RateLimitRPS > 0 {
		burst := services.RateLimitBurst
		if burst <= 0 {
			burst = int(services.RateLimitRPS)
		}
		handler = RateLimit(rate.Limit(services.RateLimitRPS), burst)(handler)
	}
	if services.Metrics != nil {
		handler = Metrics(services.Metrics)(handler)
	}
	handler = Recover(logger)(handler)
	handler = Logging(logger)(handler)
	return handler
}

func registerCatalogRoutes(mux *http.ServeMux, h *CatalogHandlers, auth *service.AuthService) {
	optional := OptionalAuth(auth)
	required := RequireAuth(auth)

	mux.Handle("GET /{$}", optional(http.HandlerFunc(h.Home)))
	mux.Handle("GET /catalog", optional(http.HandlerFunc(h.Home)))
	mux.Handle("GET /catalog/categories", optional(http.HandlerFunc(h.ListCategories)))
	mux.Handle("GET /catalog/myitems", required(http.HandlerFunc(h.MyItems)))
	mux.Handle("GET /catalog/{category}", optional(http.HandlerFunc(h.ShowItems)))
	mux.Handle("GET /catalog/{category}/{item}", optional(http.HandlerFunc(h.ShowItem)))

	// Read-only JSON export endpoints. Both spellings of the full export are
	// served for compatibility.
	mux.HandleFunc("GET /catalog.json", h.CatalogJSON)
	mux.HandleFunc("GET /catalog/JSON", h.CatalogJSON)
	mux.HandleFunc("GET /catalog/{category}/JSON", h.CategoryJSON)
	mux.HandleFunc("GET /catalog/{category}/{item}/JSON", h.ItemJSON)
}

func registerMutationRoutes(mux *http.ServeMux, ch *CategoryHandlers, ih *ItemHandlers, auth *service.AuthService) {
	required := RequireAuth(auth)

	mux.Handle("POST /catalog/new", required(http.HandlerFunc(ch.Create)))
	mux.Handle("POST /catalog/{category}/edit", required(http.HandlerFunc(ch.Edit)))
	mux.Handle("POST /catalog/{category}/delete", required(http.HandlerFunc(ch.Delete)))

	mux.Handle("POST /catalog/{category}/new", required(http.HandlerFunc(ih.Create)))
	mux.Handle("POST /catalog/{category}/{item}/edit", required(http.HandlerFunc(ih.Edit)))
	mux.Handle("POST /catalog/{category}/{item}/delete", required(http.HandlerFunc(ih.Delete)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, auth *service.AuthService) {
	optional := OptionalAuth(auth)

	mux.Handle("GET /login", optional(http.HandlerFunc(h.Login)))
	mux.HandleFunc("POST /gconnect", h.Connect)
	mux.HandleFunc("GET /gdisconnect", h.Disconnect)
	mux.HandleFunc("POST /gdisconnect", h.Disconnect)
	mux.Handle("GET /logout", optional(http.HandlerFunc(h.Logout)))
	mux.Handle("POST /logout", optional(http.HandlerFunc(h.Logout)))
}
