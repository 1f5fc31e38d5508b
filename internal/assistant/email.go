package assistant

import (
	"bytes"
	"context"
	"strings"
	"text/template"
	"time"

	"lingosphere/internal/llm"
	"lingosphere/internal/qerrors"

	"github.com/go-playground/validator/v10"
	"github.com/golang/glog"
)

// EmailDraftRequest holds what a student wants to ask their tutor.
type EmailDraftRequest struct {
	StudentName string `json:"studentName" validate:"required"`
	TutorName   string `json:"tutorName" validate:"required"`
	CourseName  string `json:"courseName" validate:"required"`
	// Questions the assistant could not answer.
	Questions string `json:"aiUnansweredQuestions" validate:"required"`
}

type EmailDraft struct {
	EmailDraft string `json:"emailDraft"`
}

var emailPromptTemplate = template.Must(template.New("emailTutorAssistant").Parse(`You are an AI assistant helping students draft emails to their tutors.

Draft an email to the tutor with the questions that the AI Tutor Assistant could not answer. Make sure the email is polite and clearly states the questions.

Student Name: {{.StudentName}}
Tutor Name: {{.TutorName}}
Course Name: {{.CourseName}}
AI Unanswered Questions: {{.Questions}}
`))

var emailTemplate = template.Must(template.New("emailDraft").Parse(`Subject: Questions about {{.CourseName}}

Dear {{.TutorName}},

I hope you are well. I am a student in {{.CourseName}} and I have a few questions I could not find answers to:

{{range .QuestionList}}- {{.}}
{{end}}
Thank you for your time. I look forward to hearing from you.

Best regards,
{{.StudentName}}
`))

// EmailDrafter writes a polite email from a student to a tutor. It uses the hosted model when
// one is configured and a fixed template otherwise, or when the model fails.
type EmailDrafter struct {
	client   llm.Client
	timeout  time.Duration
	validate *validator.Validate
}

// NewEmailDrafter accepts a nil client.
func NewEmailDrafter(client llm.Client, timeout time.Duration) *EmailDrafter {
	return &EmailDrafter{client: client, timeout: timeout, validate: validator.New()}
}

func (d *EmailDrafter) Draft(ctx context.Context, req *EmailDraftRequest) (*EmailDraft, error) {
	if err := d.validate.Struct(req); err != nil {
		return nil, qerrors.Validation("student, tutor, course and questions are required")
	}

	if d.client != nil {
		draft, err := d.draftHosted(ctx, req)
		if err == nil {
			return &EmailDraft{EmailDraft: draft}, nil
		}
		glog.Warningf("hosted email draft failed, using template: %v\n", err)
	}

	draft, err := d.draftLocal(req)
	if err != nil {
		return nil, err
	}
	return &EmailDraft{EmailDraft: draft}, nil
}

func (d *EmailDrafter) draftHosted(ctx context.Context, req *EmailDraftRequest) (string, error) {
	var buf bytes.Buffer
	if err := emailPromptTemplate.Execute(&buf, req); err != nil {
		return "", err
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	draft, err := d.client.Generate(ctx, buf.String())
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(draft) == "" {
		return "", qerrors.External(nil, "hosted model returned an empty draft")
	}
	return draft, nil
}

func (d *EmailDrafter) draftLocal(req *EmailDraftRequest) (string, error) {
	var questions []string
	for _, line := range strings.Split(req.Questions, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*"))
		if line != "" {
			questions = append(questions, line)
		}
	}

	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, struct {
		*EmailDraftRequest
		QuestionList []string
	}{req, questions})
	return buf.String(), err
}
