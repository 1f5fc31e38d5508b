package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type contextKey string

const (
	courseIDKey  contextKey = "courseID"
	requestIDKey contextKey = "requestID"
	tutorIDKey   contextKey = "tutorID"
	inquiryIDKey contextKey = "inquiryID"
)

// CourseCtx sets "courseID" from the URL param in the context.
func CourseCtx() func(handler http.Handler) http.Handler {
	return paramCtx("courseID", courseIDKey)
}

// RequestCtx sets "requestID" from the URL param in the context.
func RequestCtx() func(handler http.Handler) http.Handler {
	return paramCtx("requestID", requestIDKey)
}

func TutorCtx() func(handler http.Handler) http.Handler {
	return paramCtx("tutorID", tutorIDKey)
}

func InquiryCtx() func(handler http.Handler) http.Handler {
	return paramCtx("inquiryID", inquiryIDKey)
}

func CourseID(r *http.Request) string  { return value(r, courseIDKey) }
func RequestID(r *http.Request) string { return value(r, requestIDKey) }
func TutorID(r *http.Request) string   { return value(r, tutorIDKey) }
func InquiryID(r *http.Request) string { return value(r, inquiryIDKey) }

func paramCtx(param string, key contextKey) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), key, chi.URLParam(r, param))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func value(r *http.Request, key contextKey) string {
	v, _ := r.Context().Value(key).(string)
	return v
}
