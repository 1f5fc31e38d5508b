package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lingosphere/internal/config"
)

type fakeClient struct {
	answer  string
	err     error
	prompts []string
}

func (f *fakeClient) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

// blockingClient never answers before the context ends.
type blockingClient struct{}

func (blockingClient) Generate(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

const bookingAnswer = `To book a class, go to the Tutors page, select a tutor, and click the "Book Trial" or "Book Lesson" button. You will then be able to see their calendar and choose a time that works for you.`

func TestParseFAQ(t *testing.T) {
	entries := ParseFAQ(FAQText)
	if len(entries) != 5 {
		t.Fatalf("Expected 5 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Question != "how do i book a class?" {
		t.Errorf("Expected lower-cased question, got %q", first.Question)
	}
	if first.Answer != bookingAnswer {
		t.Errorf("Expected booking answer, got %q", first.Answer)
	}
	if len(first.keywords) != 2 || first.keywords[0] != "how" || first.keywords[1] != "do" {
		t.Errorf("Expected keywords [how do], got %v", first.keywords)
	}
}

func TestParseFAQSkipsMalformedBlocks(t *testing.T) {
	text := "Q: Only a question\n\nnot an entry\nA: orphan answer\n\r\nQ: Is it free?\r\nA: The first lesson is.\n"
	entries := ParseFAQ(text)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d: %+v", len(entries), entries)
	}
	if entries[0].Answer != "The first lesson is." {
		t.Errorf("Unexpected answer %q", entries[0].Answer)
	}
}

func TestRulesFAQMatch(t *testing.T) {
	r := NewRules(FAQText, DefaultCatalog)

	got := r.Respond(context.Background(), "how do I book?")
	if got != bookingAnswer {
		t.Errorf("Expected booking answer, got %q", got)
	}
}

func TestRulesFAQBeatsTutorKeyword(t *testing.T) {
	r := NewRules(FAQText, DefaultCatalog)

	got := r.Respond(context.Background(), "Can my tutor help with pronunciation?")
	if !strings.HasPrefix(got, "Yes, you can switch tutors") {
		t.Errorf("Expected the change-tutor answer, got %q", got)
	}
	if got == TutorMessage {
		t.Errorf("Tutor rule fired before the FAQ rule")
	}
}

func TestRulesCourseKeyword(t *testing.T) {
	r := NewRules(FAQText, DefaultCatalog)

	got := r.Respond(context.Background(), "Which courses are available?")
	expected := "We offer courses like Beginner English: The Basics and Intermediate Conversation Skills. Would you like to know more about any of them?"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	single := NewRules(FAQText, DefaultCatalog[:1])
	if got := single.Respond(context.Background(), "classes?"); !strings.Contains(got, "Beginner English: The Basics") {
		t.Errorf("Expected the only course to be named, got %q", got)
	}
}

func TestRulesTutorKeyword(t *testing.T) {
	r := NewRules(FAQText, DefaultCatalog)

	if got := r.Respond(context.Background(), "tutors from the UK?"); got != TutorMessage {
		t.Errorf("Expected tutor message, got %q", got)
	}
}

func TestRulesGreeting(t *testing.T) {
	r := NewRules(FAQText, DefaultCatalog)

	for _, input := range []string{"hi there", "Hello!", "HI"} {
		if got := r.Respond(context.Background(), input); got != GreetingMessage {
			t.Errorf("%q: expected greeting, got %q", input, got)
		}
	}
}

func TestRulesDefault(t *testing.T) {
	r := NewRules(FAQText, DefaultCatalog)

	for _, input := range []string{"weather today", "", "prices?", "this thing"} {
		if got := r.Respond(context.Background(), input); got != DefaultMessage {
			t.Errorf("%q: expected default message, got %q", input, got)
		}
	}
}

func TestHostedReturnsAnswerVerbatim(t *testing.T) {
	client := &fakeClient{answer: "Lessons are 50 minutes."}
	h, err := NewHosted(client, FAQText, DefaultCatalog, time.Second)
	if err != nil {
		t.Fatal(err)
	}

	if got := h.Respond(context.Background(), "  How long is a lesson? "); got != "Lessons are 50 minutes." {
		t.Errorf("Expected the model answer, got %q", got)
	}
	if len(client.prompts) != 1 {
		t.Fatalf("Expected 1 prompt, got %d", len(client.prompts))
	}
	prompt := client.prompts[0]
	for _, want := range []string{"User's Question: How long is a lesson?", "Q: What materials do I need?", `"title": "Grammar Guru"`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestHostedFailsClosed(t *testing.T) {
	for name, client := range map[string]*fakeClient{
		"error": {err: errors.New("connection refused")},
		"empty": {answer: "   "},
	} {
		h, err := NewHosted(client, FAQText, DefaultCatalog, time.Second)
		if err != nil {
			t.Fatal(err)
		}
		if got := h.Respond(context.Background(), "hi"); got != ApologyMessage {
			t.Errorf("%s: expected apology, got %q", name, got)
		}
	}
}

func TestHostedTimeout(t *testing.T) {
	h, err := NewHosted(blockingClient{}, FAQText, DefaultCatalog, 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if got := h.Respond(context.Background(), "hi"); got != ApologyMessage {
		t.Errorf("Expected apology, got %q", got)
	}
}

func TestNewSelectsStrategy(t *testing.T) {
	c := config.DefaultConfig()

	c.AssistantMode = config.AssistantRules
	if _, ok := New(c, &fakeClient{}).(*Rules); !ok {
		t.Errorf("Expected rules responder")
	}

	c.AssistantMode = config.AssistantHosted
	if _, ok := New(c, &fakeClient{}).(*Hosted); !ok {
		t.Errorf("Expected hosted responder")
	}
	if _, ok := New(c, nil).(*Rules); !ok {
		t.Errorf("Expected rules responder without a client")
	}
}

func TestEmailDraftLocal(t *testing.T) {
	d := NewEmailDrafter(nil, time.Second)

	draft, err := d.Draft(context.Background(), &EmailDraftRequest{
		StudentName: "Alex",
		TutorName:   "Jane Doe",
		CourseName:  "Grammar Guru",
		Questions:   "- When is the next live class?\n\n* Can I get extra homework?",
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Dear Jane Doe,", "- When is the next live class?\n- Can I get extra homework?\n", "Alex", "Grammar Guru"} {
		if !strings.Contains(draft.EmailDraft, want) {
			t.Errorf("Expected draft to contain %q, got:\n%s", want, draft.EmailDraft)
		}
	}
}

func TestEmailDraftHostedFallsBackToTemplate(t *testing.T) {
	client := &fakeClient{err: errors.New("unavailable")}
	d := NewEmailDrafter(client, time.Second)

	draft, err := d.Draft(context.Background(), &EmailDraftRequest{
		StudentName: "Alex", TutorName: "Jane Doe", CourseName: "Grammar Guru", Questions: "Homework?",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(draft.EmailDraft, "Dear Jane Doe,") {
		t.Errorf("Expected template draft, got %q", draft.EmailDraft)
	}
	if len(client.prompts) != 1 || !strings.Contains(client.prompts[0], "AI Unanswered Questions: Homework?") {
		t.Errorf("Expected the hosted prompt to be tried first, got %v", client.prompts)
	}
}

func TestEmailDraftHosted(t *testing.T) {
	d := NewEmailDrafter(&fakeClient{answer: "Hi Jane, ..."}, time.Second)

	draft, err := d.Draft(context.Background(), &EmailDraftRequest{
		StudentName: "Alex", TutorName: "Jane Doe", CourseName: "Grammar Guru", Questions: "Homework?",
	})
	if err != nil {
		t.Fatal(err)
	}
	if draft.EmailDraft != "Hi Jane, ..." {
		t.Errorf("Expected hosted draft, got %q", draft.EmailDraft)
	}
}

func TestEmailDraftValidation(t *testing.T) {
	d := NewEmailDrafter(nil, time.Second)
	if _, err := d.Draft(context.Background(), &EmailDraftRequest{StudentName: "Alex"}); err == nil {
		t.Errorf("Expected a validation error")
	}
}
