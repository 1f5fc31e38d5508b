package router

import (
	"net/http"

	"lingosphere/internal/auth"
	"lingosphere/internal/middleware"
	"lingosphere/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func TutorRoutes(s *Services) *chi.Mux {
	router := chi.NewRouter()

	router.Get("/", s.listTutorsHandler)
	router.With(auth.RequireAuth(s.Auth, true)).Post("/", s.createTutorHandler)

	router.Route("/{tutorID}", func(r chi.Router) {
		r.Use(middleware.TutorCtx())

		r.Get("/", s.getTutorHandler)
		r.With(auth.RequireAuth(s.Auth, true)).Patch("/", s.editTutorHandler)
		r.With(auth.RequireAuth(s.Auth, true)).Delete("/", s.deleteTutorHandler)
	})

	return router
}

// GET: /
func (s *Services) listTutorsHandler(w http.ResponseWriter, r *http.Request) {
	tutors, err := s.Repository.ListTutors(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, tutors)
}

// GET: /{tutorID}
func (s *Services) getTutorHandler(w http.ResponseWriter, r *http.Request) {
	tutor, err := s.Repository.GetTutorByID(r.Context(), middleware.TutorID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, tutor)
}

// POST: /
func (s *Services) createTutorHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTutorRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	tutor, err := s.Repository.CreateTutor(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, tutor)
}

// PATCH: /{tutorID}
func (s *Services) editTutorHandler(w http.ResponseWriter, r *http.Request) {
	var req models.EditTutorRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.TutorID = middleware.TutorID(r)

	if err := s.Repository.EditTutor(r.Context(), &req); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, http.StatusOK, "Successfully edited tutor "+req.TutorID)
}

// DELETE: /{tutorID}
func (s *Services) deleteTutorHandler(w http.ResponseWriter, r *http.Request) {
	tutorID := middleware.TutorID(r)

	if err := s.Repository.DeleteTutor(r.Context(), tutorID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, http.StatusOK, "Successfully deleted tutor "+tutorID)
}
