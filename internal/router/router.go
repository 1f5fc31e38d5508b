package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"lingosphere/internal/assistant"
	"lingosphere/internal/auth"
	"lingosphere/internal/enrollment"
	"lingosphere/internal/notify"
	"lingosphere/internal/qerrors"
	"lingosphere/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"
)

// Services holds what the handlers depend on.
type Services struct {
	Repository *repository.Repository
	Enrollment *enrollment.Service
	Assistant  assistant.Responder
	Drafter    *assistant.EmailDrafter
	Notifier   notify.Notifier
	Auth       auth.Verifier
}

func HealthRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return router
}

// Helpers

type errorResponse struct {
	Message string `json:"message"`
}

// writeError responds with the status matching the kind of err.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		glog.Errorf("%s %s: %v\n", r.Method, r.URL.Path, err)
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse{Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, qerrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, qerrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, qerrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, qerrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, qerrors.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, qerrors.ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", qerrors.InvalidBody, err)
	}
	return nil
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Message: msg})
}
