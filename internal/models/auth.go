package models

import "time"

// User represents an authenticated user.
type User struct {
	ID          string `json:"id" mapstructure:"id"`
	Email       string `json:"email" mapstructure:"email"`
	DisplayName string `json:"displayName,omitempty" mapstructure:"displayName"`
	IsAdmin     bool   `json:"isAdmin" mapstructure:"isAdmin"`
}

// UserRecord is an account listed from the auth provider.
type UserRecord struct {
	ID        string    `json:"uid"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Disabled  bool      `json:"disabled"`
}

// EnrolledCourse is the short form of a course shown next to a user.
type EnrolledCourse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// UserWithCourses joins an account with the courses it is enrolled in.
type UserWithCourses struct {
	UserRecord
	EnrolledCourses []EnrolledCourse `json:"enrolledCourses"`
}
