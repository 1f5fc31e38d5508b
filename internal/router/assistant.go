package router

import (
	"net/http"
	"strings"

	"lingosphere/internal/assistant"
	"lingosphere/internal/qerrors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const maxQuestionLength = 1000

func AssistantRoutes(s *Services) *chi.Mux {
	router := chi.NewRouter()

	router.Post("/ask", s.askHandler)
	router.Post("/email-draft", s.emailDraftHandler)

	return router
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

// POST: /ask
func (s *Services) askHandler(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" || len(question) > maxQuestionLength {
		writeError(w, r, qerrors.Validation("question must be between 1 and %d characters", maxQuestionLength))
		return
	}

	render.JSON(w, r, askResponse{Answer: s.Assistant.Respond(r.Context(), question)})
}

// POST: /email-draft
func (s *Services) emailDraftHandler(w http.ResponseWriter, r *http.Request) {
	var req assistant.EmailDraftRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	draft, err := s.Drafter.Draft(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, draft)
}
