package transport

import (
	"net/http"

	"friender/pkg/middleware"
	"friender/services/match/handler"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(matchHandler *handler.MatchHandler, jwtSecret string) http.Handler {
	mux := chi.NewRouter()

	mux.Use(chimiddleware.Recoverer)

	// CORS 설정
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.Get("/health", matchHandler.Health)

	mux.Route("/users", func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret))

		r.Post("/like/{targetId}", matchHandler.Like)
		r.Post("/dislike/{targetId}", matchHandler.Dislike)

		r.Get("/{id}", matchHandler.GetUser)
		r.Patch("/{id}", matchHandler.UpdateUser)
		r.Get("/{id}/available-user", matchHandler.AvailableUser)
		r.Get("/{id}/matches", matchHandler.Matches)
	})

	return mux
}
