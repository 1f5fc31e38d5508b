package models

import "time"

var (
	FirestoreCourseRequestsCollection = "courseRequests"
)

// CourseRequest is a learner's pending ask for access to a course. Its existence is the pending
// state; approval deletes it.
type CourseRequest struct {
	ID          string    `json:"id" mapstructure:"id"`
	UserID      string    `json:"userId" mapstructure:"userId" validate:"required"`
	UserEmail   string    `json:"userEmail" mapstructure:"userEmail"`
	CourseID    string    `json:"courseId" mapstructure:"courseId" validate:"required"`
	CourseTitle string    `json:"courseTitle" mapstructure:"courseTitle"`
	CreatedAt   time.Time `json:"createdAt" mapstructure:"createdAt"`
}

// CreateCourseRequestRequest is the parameter struct for the CreateCourseRequest function.
type CreateCourseRequestRequest struct {
	UserID      string `validate:"required"`
	UserEmail   string
	CourseID    string `validate:"required"`
	CourseTitle string
}
