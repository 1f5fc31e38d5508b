package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"text/template"
	"time"

	"lingosphere/internal/llm"

	"github.com/golang/glog"
)

// ApologyMessage is returned whenever the hosted model cannot produce an answer.
const ApologyMessage = "Sorry, I'm having a little trouble connecting right now. Please try again in a moment."

var promptTemplate = template.Must(template.New("tutorAssistant").Parse(`You are a friendly and helpful AI assistant for LingoSphere, an online English tutoring platform.
Your goal is to answer user questions accurately and concisely based on the provided context.
If the user's question is outside of the provided context, politely state that you cannot answer it and suggest they use the contact form for more specific inquiries.

Keep your answers brief and to the point.

CONTEXT:
---
Frequently Asked Questions (FAQ):
{{.FAQ}}
---
Available Courses:
{{.Courses}}
---

User's Question: {{.Question}}
`))

// Hosted answers through a hosted language model given the FAQ and catalog as context.
type Hosted struct {
	client  llm.Client
	faq     string
	courses string
	timeout time.Duration
}

func NewHosted(client llm.Client, faqText string, catalog []CourseSummary, timeout time.Duration) (*Hosted, error) {
	var courses bytes.Buffer
	enc := json.NewEncoder(&courses)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(catalog); err != nil {
		return nil, err
	}
	return &Hosted{
		client:  client,
		faq:     strings.TrimSpace(faqText),
		courses: strings.TrimSpace(courses.String()),
		timeout: timeout,
	}, nil
}

// Respond returns the model's answer verbatim, or ApologyMessage if the call fails.
func (h *Hosted) Respond(ctx context.Context, question string) string {
	prompt, err := h.prompt(question)
	if err != nil {
		glog.Errorf("error rendering assistant prompt: %v\n", err)
		return ApologyMessage
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	answer, err := h.client.Generate(ctx, prompt)
	if err != nil {
		glog.Warningf("hosted assistant failed: %v\n", err)
		return ApologyMessage
	}
	if strings.TrimSpace(answer) == "" {
		return ApologyMessage
	}
	return answer
}

func (h *Hosted) prompt(question string) (string, error) {
	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, struct {
		FAQ      string
		Courses  string
		Question string
	}{h.faq, h.courses, strings.TrimSpace(question)})
	return buf.String(), err
}
