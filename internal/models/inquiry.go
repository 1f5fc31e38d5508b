package models

import "time"

var (
	FirestoreInquiriesCollection = "inquiries"
)

type InquiryStatus string

const (
	InquiryNew     InquiryStatus = "New"
	InquiryRead    InquiryStatus = "Read"
	InquiryReplied InquiryStatus = "Replied"
)

// Valid reports whether s is a known inquiry status.
func (s InquiryStatus) Valid() bool {
	return s == InquiryNew || s == InquiryRead || s == InquiryReplied
}

// Inquiry is a message sent through the contact form.
type Inquiry struct {
	ID        string        `json:"id" mapstructure:"id"`
	Name      string        `json:"name" mapstructure:"name" validate:"required"`
	Email     string        `json:"email" mapstructure:"email" validate:"required"`
	Message   string        `json:"message" mapstructure:"message"`
	Status    InquiryStatus `json:"status" mapstructure:"status"`
	CreatedAt time.Time     `json:"createdAt" mapstructure:"createdAt"`
}

// CreateInquiryRequest is the parameter struct for the CreateInquiry function.
type CreateInquiryRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10"`
}

// SetInquiryStatusRequest is the parameter struct for the SetInquiryStatus function.
type SetInquiryStatusRequest struct {
	InquiryID string        `json:"-"`
	Status    InquiryStatus `json:"status" validate:"required"`
}
