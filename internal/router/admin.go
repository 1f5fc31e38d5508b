package router

import (
	"net/http"
	"time"

	"lingosphere/internal/analytics"
	"lingosphere/internal/auth"
	"lingosphere/internal/middleware"
	"lingosphere/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"
)

func AdminRoutes(s *Services) *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.RequireAuth(s.Auth, true))

	// Enrollment requests
	router.Get("/requests", s.listRequestsHandler)
	router.Route("/requests/{requestID}", func(r chi.Router) {
		r.Use(middleware.RequestCtx())
		r.Post("/approve", s.approveRequestHandler)
	})

	router.Get("/users", s.listUsersHandler)
	router.Get("/summary", s.summaryHandler)

	return router
}

// GET: /requests
func (s *Services) listRequestsHandler(w http.ResponseWriter, r *http.Request) {
	requests, err := s.Enrollment.ListPendingRequests(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, requests)
}

// POST: /requests/{requestID}/approve
func (s *Services) approveRequestHandler(w http.ResponseWriter, r *http.Request) {
	req, err := s.Enrollment.Approve(r.Context(), middleware.RequestID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, req)
}

// GET: /users
func (s *Services) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	var (
		users   []*models.UserRecord
		courses []*models.Course
	)

	wg, ctx := errgroup.WithContext(r.Context())
	wg.Go(func() (err error) {
		users, err = s.Auth.ListUsers(ctx)
		return
	})
	wg.Go(func() (err error) {
		courses, err = s.Repository.ListCourses(ctx)
		return
	})
	if err := wg.Wait(); err != nil {
		writeError(w, r, err)
		return
	}

	byUser := make(map[string][]models.EnrolledCourse)
	for _, c := range courses {
		for _, id := range c.EnrolledUserIDs {
			byUser[id] = append(byUser[id], models.EnrolledCourse{ID: c.ID, Title: c.Title})
		}
	}

	out := make([]*models.UserWithCourses, 0, len(users))
	for _, u := range users {
		enrolled := byUser[u.ID]
		if enrolled == nil {
			enrolled = []models.EnrolledCourse{}
		}
		out = append(out, &models.UserWithCourses{UserRecord: *u, EnrolledCourses: enrolled})
	}
	render.JSON(w, r, out)
}

// GET: /summary
func (s *Services) summaryHandler(w http.ResponseWriter, r *http.Request) {
	var (
		courses   []*models.Course
		tutors    []*models.Tutor
		inquiries []*models.Inquiry
		requests  []*models.CourseRequest
	)

	wg, ctx := errgroup.WithContext(r.Context())
	wg.Go(func() (err error) {
		courses, err = s.Repository.ListCourses(ctx)
		return
	})
	wg.Go(func() (err error) {
		tutors, err = s.Repository.ListTutors(ctx)
		return
	})
	wg.Go(func() (err error) {
		inquiries, err = s.Repository.ListInquiries(ctx)
		return
	})
	wg.Go(func() (err error) {
		requests, err = s.Enrollment.ListPendingRequests(ctx)
		return
	})
	if err := wg.Wait(); err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, models.DashboardSummary{
		Courses:      len(courses),
		Tutors:       len(tutors),
		NewInquiries: analytics.CountInquiries(inquiries)[models.InquiryNew],
		Requests:     analytics.GenerateRequestAnalytics(requests, time.Now()),
	})
}
