package firebase

import (
	"context"

	firebaseSDK "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"lingosphere/internal/config"
)

// NewApp initializes the Firebase App using the service account key named in the configuration.
func NewApp(ctx context.Context, c *config.ServerConfig) (*firebaseSDK.App, error) {
	var fbConfig *firebaseSDK.Config
	if c.ProjectID != "" {
		fbConfig = &firebaseSDK.Config{ProjectID: c.ProjectID}
	}

	opts := []option.ClientOption{}
	if c.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(c.CredentialsFile))
	}

	return firebaseSDK.NewApp(ctx, fbConfig, opts...)
}
