package models

var (
	FirestoreSettingsCollection = "settings"
	HomepageConfigDocument      = "homepageConfig"
)

type Hero struct {
	Title      string `json:"title" mapstructure:"title"`
	Subtitle   string `json:"subtitle" mapstructure:"subtitle"`
	ButtonText string `json:"buttonText" mapstructure:"buttonText"`
	ImageURL   string `json:"imageUrl" mapstructure:"imageUrl"`
}

type ContactDetails struct {
	Address string `json:"address" mapstructure:"address"`
	Email   string `json:"email" mapstructure:"email"`
	Phone   string `json:"phone" mapstructure:"phone"`
}

type Socials struct {
	Twitter   string `json:"twitter" mapstructure:"twitter"`
	Facebook  string `json:"facebook" mapstructure:"facebook"`
	Instagram string `json:"instagram" mapstructure:"instagram"`
}

// SiteSettings is the homepage and footer configuration editable from the admin dashboard.
type SiteSettings struct {
	SiteName string         `json:"siteName" mapstructure:"siteName"`
	Hero     Hero           `json:"hero" mapstructure:"hero"`
	Contact  ContactDetails `json:"contact" mapstructure:"contact"`
	Socials  Socials        `json:"socials" mapstructure:"socials"`
}

// UpdateSettingsRequest is a partial SiteSettings. Only the present keys are written.
type UpdateSettingsRequest map[string]interface{}
