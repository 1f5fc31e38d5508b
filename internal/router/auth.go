package router

import (
	"net/http"

	"lingosphere/internal/auth"
	"lingosphere/internal/config"
	"lingosphere/internal/models"
	"lingosphere/internal/qerrors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func AuthRoutes(s *Services) *chi.Mux {
	router := chi.NewRouter()

	// Information about the current user
	router.With(auth.RequireAuth(s.Auth, false)).Get("/me", s.getMeHandler)

	// Alter the current session. No auth middlewares required.
	router.Post("/session", s.createSessionHandler)
	router.Post("/signout", signOutHandler)

	return router
}

type meResponse struct {
	*models.User
	EnrolledCourses []models.EnrolledCourse `json:"enrolledCourses"`
}

// GET: /me
func (s *Services) getMeHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		writeError(w, r, qerrors.UnauthenticatedSessionError)
		return
	}

	courses, err := s.Repository.ListCoursesForUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, meResponse{User: user, EnrolledCourses: enrolledCourses(courses)})
}

// POST: /session
func (s *Services) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Token == "" {
		writeError(w, r, qerrors.Validation("missing ID token"))
		return
	}

	expiresIn := config.Config.SessionCookieExpiration

	// To only allow session cookie setting on recent sign-in, auth_time in ID token
	// can be checked to ensure user was recently signed in before creating a session cookie.
	cookie, err := s.Auth.CreateSession(r.Context(), req.Token, expiresIn)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, sessionCookie(cookie, int(expiresIn.Seconds())))
	writeMessage(w, r, http.StatusOK, "success")
}

// POST: /signout
func signOutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, sessionCookie("", -1))
	writeMessage(w, r, http.StatusOK, "success")
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	var sameSite http.SameSite
	if config.Config.IsHTTPS {
		sameSite = http.SameSiteNoneMode
	} else {
		sameSite = http.SameSiteLaxMode
	}

	return &http.Cookie{
		Name:     config.Config.SessionCookieName,
		Value:    value,
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: sameSite,
		Secure:   config.Config.IsHTTPS,
		Path:     "/",
	}
}

func enrolledCourses(courses []*models.Course) []models.EnrolledCourse {
	out := make([]models.EnrolledCourse, 0, len(courses))
	for _, c := range courses {
		out = append(out, models.EnrolledCourse{ID: c.ID, Title: c.Title})
	}
	return out
}
