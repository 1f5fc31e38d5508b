package router

import (
	"context"
	"net/http"
	"time"

	"lingosphere/internal/auth"
	"lingosphere/internal/middleware"
	"lingosphere/internal/models"
	"lingosphere/internal/notify"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const notifyTimeout = 10 * time.Second

func InquiryRoutes(s *Services) *chi.Mux {
	router := chi.NewRouter()

	// Contact form
	router.Post("/", s.createInquiryHandler)

	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(s.Auth, true))

		r.Get("/", s.listInquiriesHandler)
		r.With(middleware.InquiryCtx()).Patch("/{inquiryID}/status", s.setInquiryStatusHandler)
	})

	return router
}

// POST: /
func (s *Services) createInquiryHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInquiryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	inquiry, err := s.Repository.CreateInquiry(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// The visitor does not wait for staff to be notified.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		notify.Send(ctx, s.Notifier, inquiry)
	}()

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, inquiry)
}

// GET: /?status=New
func (s *Services) listInquiriesHandler(w http.ResponseWriter, r *http.Request) {
	var (
		inquiries []*models.Inquiry
		err       error
	)
	if status := models.InquiryStatus(r.URL.Query().Get("status")); status != "" {
		if !status.Valid() {
			writeMessage(w, r, http.StatusBadRequest, "unknown inquiry status "+string(status))
			return
		}
		inquiries, err = s.Repository.ListInquiriesWithStatus(r.Context(), status)
	} else {
		inquiries, err = s.Repository.ListInquiries(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, inquiries)
}

// PATCH: /{inquiryID}/status
func (s *Services) setInquiryStatusHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SetInquiryStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.InquiryID = middleware.InquiryID(r)

	if err := s.Repository.SetInquiryStatus(r.Context(), &req); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, http.StatusOK, "Successfully updated inquiry "+req.InquiryID)
}
