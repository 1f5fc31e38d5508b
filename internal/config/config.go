package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Config *ServerConfig

// AssistantMode selects the strategy used to answer chat assistant questions.
type AssistantMode string

const (
	AssistantRules  AssistantMode = "rules"
	AssistantHosted AssistantMode = "hosted"
)

// ServerConfig is a struct that contains configuration values for the server.
type ServerConfig struct {
	// AllowedOrigins is a list of URLs that the server will accept requests from.
	AllowedOrigins []string
	// AdminEmails is a list of verified email addresses that are granted admin access in addition
	// to users carrying the "admin" custom claim.
	AdminEmails []string
	// SessionCookieName is the name to use for the session cookie.
	SessionCookieName string
	// SessionCookieExpiration is the amount of time a session cookie is valid. Max 14 days.
	SessionCookieExpiration time.Duration
	// IsHTTPS should be set when the server is served behind TLS, so cookies are marked Secure.
	IsHTTPS bool
	// Port is the port the server should run on.
	Port int

	// CredentialsFile is the path to the Firebase service account key.
	CredentialsFile string
	// ProjectID is the Firebase project ID. Optional when the credentials file carries it.
	ProjectID string
	// Store is either "firestore" or "memory". The memory store is for local development only.
	Store string
	// StoreTimeout bounds every document store call.
	StoreTimeout time.Duration
	// SeedPlaceholders fills empty courses and tutors collections with placeholder data.
	SeedPlaceholders bool

	// AssistantMode picks the chat assistant strategy.
	AssistantMode AssistantMode
	// AssistantModel is the hosted model name, e.g. "gemini-1.5-flash".
	AssistantModel string
	// AssistantAPIKey authenticates calls to the hosted model.
	AssistantAPIKey string
	// AssistantEndpoint is the root URL of the hosted model API, without the version path.
	AssistantEndpoint string
	// AssistantTimeout bounds every hosted model call.
	AssistantTimeout time.Duration

	// SendGridAPIKey enables inquiry notification emails. If empty, notifications are logged.
	SendGridAPIKey string
	// NotificationFromEmail is the sender address of notification emails.
	NotificationFromEmail string
	// NotificationToEmail receives new inquiry notifications.
	NotificationToEmail string
	// SiteName is used as the sender name and subject prefix of notification emails.
	SiteName string
}

func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		AllowedOrigins:          []string{"http://localhost:3000", "http://localhost:9002"},
		AdminEmails:             []string{},
		SessionCookieName:       "lingosphere-session",
		SessionCookieExpiration: time.Hour * 24 * 5,
		IsHTTPS:                 false,
		Port:                    8080,
		CredentialsFile:         "firebase-config.json",
		Store:                   "firestore",
		StoreTimeout:            5 * time.Second,
		SeedPlaceholders:        true,
		AssistantMode:           AssistantRules,
		AssistantModel:          "gemini-1.5-flash",
		AssistantEndpoint:       "https://generativelanguage.googleapis.com/",
		AssistantTimeout:        10 * time.Second,
		NotificationFromEmail:   "noreply@localhost",
		SiteName:                "English Excellence",
	}
}

// Load overlays the default configuration with values from the environment. A .env file in the
// working directory is read first if it exists. Variables use the LINGO_ prefix, e.g. LINGO_PORT.
func Load() (*ServerConfig, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetEnvPrefix("lingo")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	c := DefaultConfig()
	setDefaults(v, c)

	c.AllowedOrigins = splitList(v.GetString("allowed_origins"))
	c.AdminEmails = splitList(v.GetString("admin_emails"))
	c.SessionCookieName = v.GetString("session_cookie_name")
	c.SessionCookieExpiration = v.GetDuration("session_cookie_expiration")
	c.IsHTTPS = v.GetBool("https")
	c.Port = v.GetInt("port")
	c.CredentialsFile = v.GetString("credentials_file")
	c.ProjectID = v.GetString("project_id")
	c.Store = v.GetString("store")
	c.StoreTimeout = v.GetDuration("store_timeout")
	c.SeedPlaceholders = v.GetBool("seed_placeholders")
	c.AssistantMode = AssistantMode(strings.ToLower(v.GetString("assistant_mode")))
	c.AssistantModel = v.GetString("assistant_model")
	c.AssistantAPIKey = v.GetString("assistant_api_key")
	c.AssistantEndpoint = v.GetString("assistant_endpoint")
	c.AssistantTimeout = v.GetDuration("assistant_timeout")
	c.SendGridAPIKey = v.GetString("sendgrid_api_key")
	c.NotificationFromEmail = v.GetString("notification_from_email")
	c.NotificationToEmail = v.GetString("notification_to_email")
	c.SiteName = v.GetString("site_name")

	if c.AssistantMode != AssistantHosted {
		c.AssistantMode = AssistantRules
	}

	return c, nil
}

func setDefaults(v *viper.Viper, c *ServerConfig) {
	v.SetDefault("allowed_origins", strings.Join(c.AllowedOrigins, ","))
	v.SetDefault("admin_emails", strings.Join(c.AdminEmails, ","))
	v.SetDefault("session_cookie_name", c.SessionCookieName)
	v.SetDefault("session_cookie_expiration", c.SessionCookieExpiration)
	v.SetDefault("https", c.IsHTTPS)
	v.SetDefault("port", c.Port)
	v.SetDefault("credentials_file", c.CredentialsFile)
	v.SetDefault("project_id", c.ProjectID)
	v.SetDefault("store", c.Store)
	v.SetDefault("store_timeout", c.StoreTimeout)
	v.SetDefault("seed_placeholders", c.SeedPlaceholders)
	v.SetDefault("assistant_mode", string(c.AssistantMode))
	v.SetDefault("assistant_model", c.AssistantModel)
	v.SetDefault("assistant_api_key", c.AssistantAPIKey)
	v.SetDefault("assistant_endpoint", c.AssistantEndpoint)
	v.SetDefault("assistant_timeout", c.AssistantTimeout)
	v.SetDefault("sendgrid_api_key", c.SendGridAPIKey)
	v.SetDefault("notification_from_email", c.NotificationFromEmail)
	v.SetDefault("notification_to_email", c.NotificationToEmail)
	v.SetDefault("site_name", c.SiteName)
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	log.Println("🙂️ No configuration loaded yet. Using the default configuration.")
	Config = DefaultConfig()
}
