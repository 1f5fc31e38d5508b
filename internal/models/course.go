package models

var (
	FirestoreCoursesCollection = "courses"
)

// CourseModule is one lesson of a course. Modules are only visible to enrolled learners.
type CourseModule struct {
	Title       string `json:"title" mapstructure:"title" validate:"required"`
	Description string `json:"description" mapstructure:"description"`
	VideoLink   string `json:"videoLink" mapstructure:"videoLink"`
}

type Course struct {
	ID            string         `json:"id" mapstructure:"id"`
	Title         string         `json:"title" mapstructure:"title" validate:"required"`
	Level         string         `json:"level" mapstructure:"level"`
	AgeGroup      string         `json:"ageGroup" mapstructure:"ageGroup"`
	Goal          string         `json:"goal" mapstructure:"goal"`
	Description   string         `json:"description" mapstructure:"description"`
	Badge         string         `json:"badge,omitempty" mapstructure:"badge"`
	Image         string         `json:"image" mapstructure:"image"`
	DataAIHint    string         `json:"dataAiHint,omitempty" mapstructure:"dataAiHint"`
	LiveClassLink string         `json:"liveClassLink,omitempty" mapstructure:"liveClassLink"`
	Modules       []CourseModule `json:"modules,omitempty" mapstructure:"modules" validate:"dive"`
	// Set of learner IDs granted access. Only grows through request approval.
	EnrolledUserIDs []string `json:"enrolledUserIds,omitempty" mapstructure:"enrolledUserIds"`
}

// IsEnrolled reports whether the learner has been granted access to the course.
func (c *Course) IsEnrolled(userID string) bool {
	for _, id := range c.EnrolledUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// PublicView strips the gated content and the enrollment list.
func (c *Course) PublicView() *Course {
	return &Course{
		ID:          c.ID,
		Title:       c.Title,
		Level:       c.Level,
		AgeGroup:    c.AgeGroup,
		Goal:        c.Goal,
		Description: c.Description,
		Badge:       c.Badge,
		Image:       c.Image,
		DataAIHint:  c.DataAIHint,
	}
}

// LearnerView keeps the gated content but hides who else is enrolled.
func (c *Course) LearnerView() *Course {
	v := *c
	v.EnrolledUserIDs = nil
	return &v
}

// AccessState is where a learner stands in the enrollment workflow for one course.
type AccessState string

const (
	AccessNotRequested AccessState = "NOT_REQUESTED"
	AccessPending      AccessState = "PENDING"
	AccessEnrolled     AccessState = "ENROLLED"
)

// CourseDetail is the response of the course detail endpoint.
type CourseDetail struct {
	*Course
	AccessState AccessState `json:"accessState,omitempty"`
}

// CreateCourseRequest is the parameter struct for the CreateCourse function.
type CreateCourseRequest struct {
	Title         string         `json:"title" validate:"required,min=2"`
	Level         string         `json:"level" validate:"required"`
	AgeGroup      string         `json:"ageGroup" validate:"required"`
	Goal          string         `json:"goal" validate:"required"`
	Description   string         `json:"description" validate:"required"`
	Badge         string         `json:"badge"`
	Image         string         `json:"image" validate:"omitempty,url"`
	DataAIHint    string         `json:"dataAiHint"`
	LiveClassLink string         `json:"liveClassLink" validate:"omitempty,url"`
	Modules       []CourseModule `json:"modules" validate:"dive"`
}

// EditCourseRequest is the parameter struct for the EditCourse function. Nil fields are left
// unchanged.
type EditCourseRequest struct {
	CourseID      string          `json:"-"`
	Title         *string         `json:"title" validate:"omitempty,min=2"`
	Level         *string         `json:"level"`
	AgeGroup      *string         `json:"ageGroup"`
	Goal          *string         `json:"goal"`
	Description   *string         `json:"description"`
	Badge         *string         `json:"badge"`
	Image         *string         `json:"image" validate:"omitempty,url"`
	DataAIHint    *string         `json:"dataAiHint"`
	LiveClassLink *string         `json:"liveClassLink" validate:"omitempty,url"`
	Modules       *[]CourseModule `json:"modules"`
}

type DeleteCourseRequest struct {
	CourseID string `json:"courseID"`
}
