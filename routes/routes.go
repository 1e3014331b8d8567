package routes

import (
	"github.com/courtside/league-system/handlers"
	"github.com/courtside/league-system/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Config carries the route-level dependencies.
type Config struct {
	BracketHandler   *handlers.BracketHandler
	WebSocketHandler *handlers.WebSocketHandler
	JWTSecret        string
}

// InitRoutes wires the HTTP surface: bracket reads are public, bracket
// mutations require an organizer or admin token.
func InitRoutes(cfg Config) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/tournaments/{tournamentID}", func(r chi.Router) {
		// Public read surface.
		r.Get("/bracket", cfg.BracketHandler.GetBracket)
		r.Get("/overview", cfg.BracketHandler.GetOverview)
		r.Get("/matches", cfg.BracketHandler.GetMatches)
		r.Get("/rounds/{round}", cfg.BracketHandler.GetRound)
		r.Get("/teams/{teamID}/path", cfg.BracketHandler.GetTeamPath)
		r.Get("/standings", cfg.BracketHandler.GetStandings)

		// Mutations are restricted to organizers.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.JWTSecret))
			r.Use(middleware.Authorize("organizer", "admin"))

			r.Post("/bracket", cfg.BracketHandler.GenerateBracket)
			r.Delete("/bracket", cfg.BracketHandler.DeleteBracket)
			r.Post("/matches/{nodeID}/start", cfg.BracketHandler.StartMatch)
			r.Post("/matches/{nodeID}/result", cfg.BracketHandler.SubmitResult)
			r.Delete("/matches/{nodeID}/result", cfg.BracketHandler.UndoResult)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", cfg.WebSocketHandler.ServeWs)

	return router
}
