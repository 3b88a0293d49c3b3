package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"investimon-go/internal/config"
	"investimon-go/internal/transport/httpserver/handler"
	authmw "investimon-go/internal/transport/httpserver/middleware"
	"investimon-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORS.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/register", handlers.Register)
		r.Post("/auth/login", handlers.Login)

		auth := authmw.NewJWTAuth(cfg.Auth, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)
			r.Get("/users/stats", handlers.UserStats)
			r.Put("/users/profile", handlers.UpdateProfile)

			r.Post("/invites", handlers.CreateInvite)
			r.Get("/invites/{code}/qr", handlers.InviteQR)
			r.Post("/invites/redeem", handlers.RedeemInvite)

			r.Post("/children", handlers.CreateChild)
			r.Get("/children", handlers.ListChildren)
			r.Delete("/children/{child_id}", handlers.UnlinkChild)

			r.Post("/classrooms", handlers.CreateClassroom)
			r.Get("/classrooms", handlers.ListClassrooms)
			r.Delete("/classrooms/{id}", handlers.DeactivateClassroom)
			r.Post("/classrooms/{id}/students", handlers.AddClassroomStudent)
			r.Get("/classrooms/{id}/students", handlers.ListClassroomStudents)
			r.Post("/classrooms/{id}/students/bulk", handlers.BulkCreateStudents)

			r.Get("/challenges", handlers.ListChallenges)
			r.Post("/challenges/{id}/complete", handlers.CompleteChallenge)

			r.Get("/characters", handlers.ListCharacters)
			r.Post("/characters/{id}/collect", handlers.CollectCharacter)

			r.Get("/news", handlers.NewsFeed)
		})
	})

	return r
}
