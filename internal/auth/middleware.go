package auth

import (
	"context"
	"net/http"

	"lingosphere/internal/config"
	"lingosphere/internal/models"
	"lingosphere/internal/qerrors"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

// RequireAuth is a middleware that rejects requests without a valid session cookie. The User associated with the
// request is added to the request context, and can be accessed via GetUserFromRequest.
func RequireAuth(v Verifier, adminOnly bool) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := userFromCookie(r, v)
			if err != nil {
				rejectUnauthorizedRequest(w)
				return
			}

			if adminOnly && !user.IsAdmin {
				rejectForbiddenRequest(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// OptionalAuth adds the User to the request context when the request carries a valid session
// cookie, and lets every request through.
func OptionalAuth(v Verifier) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, err := userFromCookie(r, v); err == nil {
				r = r.WithContext(WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// GetUserFromRequest returns a User if it exists within the request context. Only works with routes that implement the
// RequireAuth or OptionalAuth middleware.
func GetUserFromRequest(r *http.Request) (*models.User, error) {
	user, ok := r.Context().Value(currentUserKey).(*models.User)
	if ok && user != nil {
		return user, nil
	}

	return nil, qerrors.UserNotFoundError
}

// Helpers

func userFromCookie(r *http.Request, v Verifier) (*models.User, error) {
	tokenCookie, err := r.Cookie(config.Config.SessionCookieName)
	if err != nil {
		// Missing session cookie.
		return nil, qerrors.UnauthenticatedSessionError
	}
	return v.VerifySession(r.Context(), tokenCookie.Value)
}

func rejectUnauthorizedRequest(w http.ResponseWriter) {
	http.Error(w, "You must be authenticated to access this resource", http.StatusUnauthorized)
}

func rejectForbiddenRequest(w http.ResponseWriter) {
	http.Error(w, "You do not have permission to access this resource", http.StatusForbidden)
}
