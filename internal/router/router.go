package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/FACorreiaa/go-travel-recommendations/docs"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/travel"
)

// Config contains dependencies needed for the router setup
type Config struct {
	TravelHandler  *travel.HandlerImpl
	WebHandler     *travel.WebHandlerImpl
	AllowedOrigins []string
}

var defaultAllowedOrigins = []string{"http://localhost:8000", "http://localhost:5173", "http://localhost:3000"}

// SetupRouter initializes the application routes. Server-wide middleware
// (request ID, logger, recoverer) is applied in main before mounting.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	// Server-rendered UI
	r.Get("/", cfg.WebHandler.Index)
	r.Post("/recommendations", cfg.WebHandler.Recommend)
	r.Post("/saved", cfg.WebHandler.LoadSaved)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = defaultAllowedOrigins
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"Link"},
			MaxAge:         300,
		}))

		r.Post("/recommendations", cfg.TravelHandler.CreateRecommendation)
		r.Get("/records", cfg.TravelHandler.GetSavedRecords)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
