package repository

import (
	"context"

	"lingosphere/internal/docstore"
	"lingosphere/internal/models"

	"github.com/golang/glog"
)

const placeholderVideo = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

var placeholderCourses = []*models.Course{
	{
		Title:       "Beginner English: The Basics",
		Level:       "Beginner",
		AgeGroup:    "Adults",
		Goal:        "Grammar",
		Description: "Master the fundamentals of English, from basic vocabulary to simple sentence structures.",
		Badge:       "Free Trial",
		Image:       "https://images.unsplash.com/photo-1543165794-803225536569?q=80&w=600&auto=format&fit=crop",
		DataAIHint:  "abc blocks",
		Modules: []models.CourseModule{
			{Title: "Introduction to Greetings", Description: "Learn how to greet people and introduce yourself.", VideoLink: placeholderVideo},
			{Title: "The Alphabet and Pronunciation", Description: "Master the English alphabet and basic sounds.", VideoLink: placeholderVideo},
		},
	},
	{
		Title:       "Intermediate Conversation Skills",
		Level:       "Intermediate",
		AgeGroup:    "Adults",
		Goal:        "Conversation",
		Description: "Build confidence in speaking and listening with real-world conversation practice.",
		Badge:       "Popular",
		Image:       "https://images.unsplash.com/photo-1522202176988-66273c2fd55f?q=80&w=600&auto=format&fit=crop",
		DataAIHint:  "people talking",
		Modules: []models.CourseModule{
			{Title: "Everyday Conversations", Description: "Practice common scenarios like ordering food and making appointments.", VideoLink: placeholderVideo},
			{Title: "Expressing Opinions", Description: "Learn phrases to share your thoughts and opinions politely.", VideoLink: placeholderVideo},
		},
	},
	{
		Title:       "Advanced Business English",
		Level:       "Advanced",
		AgeGroup:    "Adults",
		Goal:        "Business English",
		Description: "Perfect your professional communication for meetings, presentations, and negotiations.",
		Image:       "https://images.unsplash.com/photo-1556761175-b413da4baf72?q=80&w=600&auto=format&fit=crop",
		DataAIHint:  "business meeting",
		Modules: []models.CourseModule{
			{Title: "Mastering Meetings", Description: "Learn vocabulary and etiquette for effective participation in business meetings.", VideoLink: placeholderVideo},
		},
	},
}

var placeholderTutors = []*models.Tutor{
	{
		Name:        "Jane Doe",
		Country:     "USA",
		Experience:  5,
		Rating:      4.9,
		Accent:      "American",
		Avatar:      "https://images.unsplash.com/photo-1494790108377-be9c29b29330?q=80&w=150&auto=format&fit=crop",
		DataAIHint:  "woman smiling",
		Bio:         "Jane is a certified ESL instructor with a passion for making learning fun and accessible. She specializes in helping beginners build a strong foundation and gain confidence in their speaking abilities.",
		Specialties: []string{"Beginner English", "Conversational Practice", "Pronunciation", "Confidence Building"},
	},
	{
		Name:        "John Smith",
		Country:     "UK",
		Experience:  8,
		Rating:      4.8,
		Accent:      "British",
		Avatar:      "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?q=80&w=150&auto=format&fit=crop",
		DataAIHint:  "man portrait",
		Bio:         "John has extensive experience in corporate training and business English. He excels at helping professionals refine their language skills for the global workplace, focusing on clarity, precision, and cultural nuance.",
		Specialties: []string{"Business English", "Advanced Grammar", "Presentation Skills", "Negotiation"},
	},
}

// SeedPlaceholders fills the course and tutor collections with sample content when they are empty.
func (r *Repository) SeedPlaceholders(ctx context.Context) error {
	seeded, err := r.seedCollection(ctx, models.FirestoreCoursesCollection, len(placeholderCourses), func(i int) docstore.Record {
		return courseRecord(placeholderCourses[i])
	})
	if err != nil {
		return err
	}
	if seeded {
		glog.Infof("seeded %d placeholder courses\n", len(placeholderCourses))
	}

	seeded, err = r.seedCollection(ctx, models.FirestoreTutorsCollection, len(placeholderTutors), func(i int) docstore.Record {
		return tutorRecord(placeholderTutors[i])
	})
	if err != nil {
		return err
	}
	if seeded {
		glog.Infof("seeded %d placeholder tutors\n", len(placeholderTutors))
	}
	return nil
}

func (r *Repository) seedCollection(ctx context.Context, collection string, n int, record func(i int) docstore.Record) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	existing, err := r.store.List(ctx, collection, docstore.Query{Limit: 1})
	if err != nil {
		return false, classify(err, nil, "error checking "+collection)
	}
	if len(existing) > 0 {
		return false, nil
	}

	for i := 0; i < n; i++ {
		if _, err := r.store.Create(ctx, collection, record(i)); err != nil {
			return false, classify(err, nil, "error seeding "+collection)
		}
	}
	return true, nil
}
