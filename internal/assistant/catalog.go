package assistant

// FAQText is the knowledge base the assistant answers from. Entries are separated by blank lines;
// each has a "Q:" line followed by an "A:" line.
const FAQText = `
Q: How do I book a class?
A: To book a class, go to the Tutors page, select a tutor, and click the "Book Trial" or "Book Lesson" button. You will then be able to see their calendar and choose a time that works for you.

Q: Can I change my tutor?
A: Yes, you can switch tutors at any time. We encourage you to try different tutors to find the one that best fits your learning style.

Q: What happens if I miss a class?
A: If you miss a class without canceling at least 24 hours in advance, the class credit may be forfeited. Please check our cancellation policy for more details.

Q: How long is a typical lesson?
A: Standard lessons are 50 minutes long, but some tutors may offer different durations. You can see the available options on their profile.

Q: What materials do I need?
A: All you need is a stable internet connection, a device with a camera and microphone (like a computer or tablet), and a willingness to learn! Tutors will provide all necessary learning materials.
`

// CourseSummary is a course as the assistant knows it. It is independent of the courses
// collection.
type CourseSummary struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Level       string `json:"level"`
	AgeGroup    string `json:"ageGroup"`
	Goal        string `json:"goal"`
	Description string `json:"description"`
}

// DefaultCatalog is the course context given to the assistant.
var DefaultCatalog = []CourseSummary{
	{
		ID:          1,
		Title:       "Beginner English: The Basics",
		Level:       "Beginner",
		AgeGroup:    "Adults",
		Goal:        "Grammar",
		Description: "Master the fundamentals of English, from basic vocabulary to simple sentence structures.",
	},
	{
		ID:          2,
		Title:       "Intermediate Conversation Skills",
		Level:       "Intermediate",
		AgeGroup:    "Adults",
		Goal:        "Conversation",
		Description: "Build confidence in speaking and listening with real-world conversation practice.",
	},
	{
		ID:          3,
		Title:       "Advanced Business English",
		Level:       "Advanced",
		AgeGroup:    "Adults",
		Goal:        "Business English",
		Description: "Perfect your professional communication for meetings, presentations, and negotiations.",
	},
	{
		ID:          5,
		Title:       "English for Kids: Fun & Games",
		Level:       "Beginner",
		AgeGroup:    "Kids",
		Goal:        "Conversation",
		Description: "An exciting, game-based curriculum to get young learners excited about English.",
	},
	{
		ID:          6,
		Title:       "Grammar Guru",
		Level:       "Intermediate",
		AgeGroup:    "Teens",
		Goal:        "Grammar",
		Description: "Deep dive into complex grammar topics to write and speak with precision.",
	},
}
