package router

import (
	"net/http"

	"lingosphere/internal/auth"
	"lingosphere/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SettingsRoutes(s *Services) *chi.Mux {
	router := chi.NewRouter()

	router.Get("/", s.getSettingsHandler)
	router.With(auth.RequireAuth(s.Auth, true)).Patch("/", s.updateSettingsHandler)

	return router
}

// GET: /
func (s *Services) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.Repository.GetSettings())
}

// PATCH: /
func (s *Services) updateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.Repository.UpdateSettings(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, http.StatusOK, "Successfully updated settings")
}
