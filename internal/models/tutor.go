package models

var (
	FirestoreTutorsCollection = "tutors"
)

type Tutor struct {
	ID          string   `json:"id" mapstructure:"id"`
	Name        string   `json:"name" mapstructure:"name" validate:"required"`
	Country     string   `json:"country" mapstructure:"country"`
	Experience  int      `json:"experience" mapstructure:"experience" validate:"gte=0"`
	Rating      float64  `json:"rating" mapstructure:"rating" validate:"gte=0,lte=5"`
	Accent      string   `json:"accent" mapstructure:"accent"`
	Avatar      string   `json:"avatar" mapstructure:"avatar"`
	DataAIHint  string   `json:"dataAiHint,omitempty" mapstructure:"dataAiHint"`
	Bio         string   `json:"bio" mapstructure:"bio"`
	Specialties []string `json:"specialties" mapstructure:"specialties"`
}

// CreateTutorRequest is the parameter struct for the CreateTutor function.
type CreateTutorRequest struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Country     string   `json:"country" validate:"required"`
	Experience  int      `json:"experience" validate:"gte=0"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
	Accent      string   `json:"accent"`
	Avatar      string   `json:"avatar" validate:"omitempty,url"`
	DataAIHint  string   `json:"dataAiHint"`
	Bio         string   `json:"bio"`
	Specialties []string `json:"specialties"`
}

// EditTutorRequest is the parameter struct for the EditTutor function. Nil fields are left
// unchanged.
type EditTutorRequest struct {
	TutorID     string    `json:"-"`
	Name        *string   `json:"name" validate:"omitempty,min=2"`
	Country     *string   `json:"country"`
	Experience  *int      `json:"experience" validate:"omitempty,gte=0"`
	Rating      *float64  `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Accent      *string   `json:"accent"`
	Avatar      *string   `json:"avatar" validate:"omitempty,url"`
	DataAIHint  *string   `json:"dataAiHint"`
	Bio         *string   `json:"bio"`
	Specialties *[]string `json:"specialties"`
}
