package auth

import (
	"context"
	"strings"
	"time"

	"lingosphere/internal/models"
	"lingosphere/internal/qerrors"

	firebaseAuth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

// Verifier turns client ID tokens into session cookies and session cookies into users.
type Verifier interface {
	// CreateSession verifies idToken and mints a session cookie valid for expiresIn.
	CreateSession(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	// VerifySession returns the user a session cookie belongs to.
	VerifySession(ctx context.Context, cookie string) (*models.User, error)
	// ListUsers returns every account.
	ListUsers(ctx context.Context) ([]*models.UserRecord, error)
}

// FirebaseProvider is a Verifier backed by Firebase Auth.
type FirebaseProvider struct {
	client *firebaseAuth.Client
	// admins holds lower-cased emails that are admins regardless of claims.
	admins map[string]bool
}

var _ Verifier = (*FirebaseProvider)(nil)

func NewFirebaseProvider(client *firebaseAuth.Client, adminEmails []string) *FirebaseProvider {
	return &FirebaseProvider{client: client, admins: adminSet(adminEmails)}
}

func (p *FirebaseProvider) CreateSession(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	// Creating the session cookie also verifies the ID token. The session cookie will have the
	// same claims as the ID token.
	cookie, err := p.client.SessionCookie(ctx, idToken, expiresIn)
	if err != nil {
		return "", errors.Wrap(qerrors.UnauthenticatedSessionError, err.Error())
	}
	return cookie, nil
}

func (p *FirebaseProvider) VerifySession(ctx context.Context, cookie string) (*models.User, error) {
	// Also detects if the user's session was revoked, or the user deleted or disabled.
	token, err := p.client.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	if err != nil {
		return nil, errors.Wrap(qerrors.UnauthenticatedSessionError, err.Error())
	}
	return userFromClaims(token.UID, token.Claims, p.admins), nil
}

func (p *FirebaseProvider) ListUsers(ctx context.Context) ([]*models.UserRecord, error) {
	users := make([]*models.UserRecord, 0)
	iter := p.client.Users(ctx, "")
	for {
		u, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, qerrors.External(err, "error listing users")
		}

		record := &models.UserRecord{ID: u.UID, Email: u.Email, Disabled: u.Disabled}
		if u.UserMetadata != nil {
			record.CreatedAt = time.Unix(0, u.UserMetadata.CreationTimestamp*int64(time.Millisecond))
		}
		users = append(users, record)
	}
	return users, nil
}

// Helpers

func userFromClaims(uid string, claims map[string]interface{}, admins map[string]bool) *models.User {
	user := &models.User{ID: uid}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		user.DisplayName = name
	}
	if isAdmin, ok := claims["admin"].(bool); ok && isAdmin {
		user.IsAdmin = true
	}
	// Only verified addresses match the admin list.
	if verified, _ := claims["email_verified"].(bool); verified && admins[strings.ToLower(user.Email)] {
		user.IsAdmin = true
	}
	return user
}

func adminSet(emails []string) map[string]bool {
	set := make(map[string]bool, len(emails))
	for _, e := range emails {
		if e = strings.TrimSpace(e); e != "" {
			set[strings.ToLower(e)] = true
		}
	}
	return set
}
