package router

import (
	"net/http"

	"lingosphere/internal/auth"
	"lingosphere/internal/enrollment"
	"lingosphere/internal/middleware"
	"lingosphere/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const relatedCoursesLimit = 3

func CourseRoutes(s *Services) *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.OptionalAuth(s.Auth))

	router.Get("/", s.listCoursesHandler)
	router.With(auth.RequireAuth(s.Auth, true)).Post("/", s.createCourseHandler)

	router.Route("/{courseID}", func(r chi.Router) {
		// Sets "courseID" from URL param in the context
		r.Use(middleware.CourseCtx())

		r.Get("/", s.getCourseHandler)
		r.Get("/related", s.relatedCoursesHandler)

		// Ask for access to the gated content of the course
		r.With(auth.RequireAuth(s.Auth, false)).Post("/request", s.requestAccessHandler)

		// Modifying courses themselves
		r.With(auth.RequireAuth(s.Auth, true)).Patch("/", s.editCourseHandler)
		r.With(auth.RequireAuth(s.Auth, true)).Delete("/", s.deleteCourseHandler)
	})

	return router
}

// GET: /
func (s *Services) listCoursesHandler(w http.ResponseWriter, r *http.Request) {
	courses, err := s.Repository.ListCourses(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, _ := auth.GetUserFromRequest(r)
	if user != nil && user.IsAdmin {
		render.JSON(w, r, courses)
		return
	}
	render.JSON(w, r, publicCourses(courses))
}

// GET: /{courseID}
func (s *Services) getCourseHandler(w http.ResponseWriter, r *http.Request) {
	course, err := s.Repository.GetCourseByID(r.Context(), middleware.CourseID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, _ := auth.GetUserFromRequest(r)
	detail := &models.CourseDetail{Course: course.PublicView()}
	switch {
	case user != nil && user.IsAdmin:
		detail.Course = course
	case enrollment.CanViewContent(user, course):
		detail.Course = course.LearnerView()
	}
	if user != nil {
		state, err := s.Enrollment.AccessState(r.Context(), user, course)
		if err != nil {
			writeError(w, r, err)
			return
		}
		detail.AccessState = state
	}

	render.JSON(w, r, detail)
}

// GET: /{courseID}/related
func (s *Services) relatedCoursesHandler(w http.ResponseWriter, r *http.Request) {
	course, err := s.Repository.GetCourseByID(r.Context(), middleware.CourseID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	related, err := s.Repository.RelatedCourses(r.Context(), course, relatedCoursesLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, publicCourses(related))
}

// POST: /{courseID}/request
func (s *Services) requestAccessHandler(w http.ResponseWriter, r *http.Request) {
	// A missing user is reported by the workflow itself.
	user, _ := auth.GetUserFromRequest(r)

	req, err := s.Enrollment.RequestAccess(r.Context(), user, middleware.CourseID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, req)
}

// POST: /
func (s *Services) createCourseHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := s.Repository.CreateCourse(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, c)
}

// PATCH: /{courseID}
func (s *Services) editCourseHandler(w http.ResponseWriter, r *http.Request) {
	var req models.EditCourseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.CourseID = middleware.CourseID(r)

	if err := s.Repository.EditCourse(r.Context(), &req); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, http.StatusOK, "Successfully edited course "+req.CourseID)
}

// DELETE: /{courseID}
func (s *Services) deleteCourseHandler(w http.ResponseWriter, r *http.Request) {
	courseID := middleware.CourseID(r)

	if err := s.Repository.DeleteCourse(r.Context(), &models.DeleteCourseRequest{CourseID: courseID}); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, http.StatusOK, "Successfully deleted course "+courseID)
}

func publicCourses(courses []*models.Course) []*models.Course {
	out := make([]*models.Course, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.PublicView())
	}
	return out
}
