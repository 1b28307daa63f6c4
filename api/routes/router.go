package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/galleryhaus/gallery-backend/api/controllers"
	"github.com/galleryhaus/gallery-backend/api/middleware"
	"github.com/galleryhaus/gallery-backend/api/responses"
	inquirysvc "github.com/galleryhaus/gallery-backend/internal/inquiry"
	"github.com/galleryhaus/gallery-backend/pkg/config"
	pkgerrors "github.com/galleryhaus/gallery-backend/pkg/errors"
	"github.com/galleryhaus/gallery-backend/pkg/logger"
	"github.com/galleryhaus/gallery-backend/pkg/redis"
)

// StorefrontClient is everything the API routes need from the storefront.
type StorefrontClient interface {
	controllers.CartFetcher
	controllers.ProductLister
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	mailPinger controllers.Pinger,
	storefrontClient StorefrontClient,
	inquiryService inquirysvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	r.MethodNotAllowed(methodNotAllowed(logg))

	inquiryPolicy := middleware.NewRateLimitPolicy(
		"inquiry",
		cfg.InquiryRateLimit.Window,
		cfg.InquiryRateLimit.IPLimit,
		cfg.InquiryRateLimit.EmailLimit,
	)

	// Keep the interface nil when the client is nil, otherwise the limiter
	// sees a non-nil interface holding a nil pointer.
	var limiterStore middleware.RateLimiterStore
	if redisClient != nil {
		limiterStore = redisClient
	}

	checks := map[string]controllers.Pinger{"smtp": mailPinger}
	if redisClient != nil {
		checks["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, checks))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api", func(r chi.Router) {
		r.MethodNotAllowed(methodNotAllowed(logg))

		relayLimit := middleware.RateLimit(inquiryPolicy, limiterStore, logg)
		r.With(relayLimit).Post("/email", controllers.InquiryRelay(inquiryService, logg))
		r.With(relayLimit).Post("/contact", controllers.ContactRelay(inquiryService, logg))

		r.Get("/cart", controllers.CartFetch(storefrontClient, logg))
		r.Get("/products", controllers.ProductsList(storefrontClient, logg))
	})

	return r
}

func methodNotAllowed(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeMethodNotAllowed, "method not allowed"))
	}
}
