package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "nutricare/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(assistantHandler *AssistantHandler) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID) // Injects a unique request ID into the context.
	r.Use(middleware.RealIP)    // Sets the remote address to the real IP from proxy headers.
	r.Use(middleware.Logger)    // Logs the start and end of each request with useful info.
	r.Use(middleware.Recoverer) // Recovers from panics and returns a 500 error.

	// Serves the auto-generated Swagger UI for API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// A simple health check endpoint for container orchestration probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON API routes get a request timeout to prevent client
		// connections from hanging indefinitely.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Post("/threads", assistantHandler.CreateThread)
			r.Get("/threads", assistantHandler.GetThreads)
			r.Get("/threads/{threadID}", assistantHandler.GetThread)
			r.Delete("/threads/{threadID}", assistantHandler.DeleteThread)
			r.Put("/threads/{threadID}/messages/{messageID}", assistantHandler.EditMessage)
			r.Post("/threads/{threadID}/reset", assistantHandler.ResetConversation)
		})

		// The streaming endpoint must NOT have a timeout: it holds the
		// connection open for the duration of the typing reveal.
		r.Group(func(r chi.Router) {
			r.Post("/threads/{threadID}/messages", assistantHandler.HandleStreamMessage)
		})
	})

	return r
}
