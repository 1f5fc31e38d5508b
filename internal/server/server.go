package server

import (
	"fmt"
	"log"
	"net/http"

	"lingosphere/internal/config"
	rtr "lingosphere/internal/router"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

func Routes(s *rtr.Services) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.Logger,    // Log API Request Calls
		middleware.Recoverer, // A panicking handler fails only its own request
	)

	router.Route("/", func(r chi.Router) {
		r.Mount("/", rtr.HealthRoutes())
	})

	router.Route("/v1", func(r chi.Router) {
		r.Mount("/users", rtr.AuthRoutes(s))
		r.Mount("/courses", rtr.CourseRoutes(s))
		r.Mount("/tutors", rtr.TutorRoutes(s))
		r.Mount("/inquiries", rtr.InquiryRoutes(s))
		r.Mount("/settings", rtr.SettingsRoutes(s))
		r.Mount("/assistant", rtr.AssistantRoutes(s))
		r.Mount("/admin", rtr.AdminRoutes(s))
	})

	return router
}

// Handler wraps the routes with the CORS policy from the configuration.
func Handler(s *rtr.Services) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   config.Config.AllowedOrigins,
		AllowedHeaders:   []string{"Cookie", "Content-Type"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "PATCH"},
		ExposedHeaders:   []string{"Set-Cookie"},
		AllowCredentials: true,
	})
	return c.Handler(Routes(s))
}

// Start serves until the listener fails and returns its error.
func Start(s *rtr.Services) error {
	if config.Config == nil {
		log.Panic("❌ Missing or invalid configuration!")
	}

	log.Printf("Server is listening on port %v\n", config.Config.Port)
	return http.ListenAndServe(fmt.Sprintf(":%v", config.Config.Port), Handler(s))
}
