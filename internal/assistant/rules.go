package assistant

import (
	"context"
	"fmt"
	"strings"
)

const (
	TutorMessage    = "You can browse all of our tutors on the Tutors page, where you can read their profiles and book a lesson."
	GreetingMessage = "Hello! I'm the LingoSphere assistant. You can ask me about our courses, tutors, booking a class, or lesson length."
	DefaultMessage  = "I'm not sure about that one. Try asking about our courses or tutors, or use the contact page to reach our team."
)

// Rules answers from the FAQ and the catalog with fixed keyword rules. The first rule that
// fires wins:
//
//  1. an FAQ entry whose first or second question word appears in the input
//  2. "course" or "class"
//  3. "tutor"
//  4. "hello" or "hi"
//  5. the default message
type Rules struct {
	faq     []FAQEntry
	courses []string
}

func NewRules(faqText string, catalog []CourseSummary) *Rules {
	courses := make([]string, 0, len(catalog))
	for _, c := range catalog {
		courses = append(courses, c.Title)
	}
	return &Rules{faq: ParseFAQ(faqText), courses: courses}
}

// Respond never fails and never blocks.
func (r *Rules) Respond(_ context.Context, question string) string {
	input := strings.ToLower(question)
	words := make(map[string]bool)
	for _, w := range tokenize(input) {
		words[w] = true
	}

	for _, entry := range r.faq {
		for _, k := range entry.keywords {
			if words[k] {
				return entry.Answer
			}
		}
	}

	switch {
	case strings.Contains(input, "course") || strings.Contains(input, "class"):
		return r.courseMessage()
	case strings.Contains(input, "tutor"):
		return TutorMessage
	case words["hello"] || words["hi"]:
		return GreetingMessage
	default:
		return DefaultMessage
	}
}

func (r *Rules) courseMessage() string {
	switch len(r.courses) {
	case 0:
		return "Take a look at the Courses page to see everything we currently offer."
	case 1:
		return fmt.Sprintf("We offer courses like %s. Would you like to know more about it?", r.courses[0])
	default:
		return fmt.Sprintf("We offer courses like %s and %s. Would you like to know more about any of them?", r.courses[0], r.courses[1])
	}
}
