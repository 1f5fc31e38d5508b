package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"lingosphere/internal/docstore"
	"lingosphere/internal/models"
	"lingosphere/internal/qerrors"

	"github.com/go-playground/validator/v10"
	"github.com/golang/glog"
	"github.com/mitchellh/mapstructure"
)

// Repository is the typed view of the document store used by the services and handlers.
type Repository struct {
	store    docstore.Store
	timeout  time.Duration
	siteName string
	validate *validator.Validate

	settingsLock *sync.RWMutex
	settings     *models.SiteSettings
	unsubscribe  docstore.Unsubscribe
}

type Options struct {
	// Timeout bounds every store call. Zero means no bound beyond the caller's context.
	Timeout time.Duration
	// SiteName is served until a settings document exists.
	SiteName string
}

// New creates a Repository and starts the site settings listener.
func New(ctx context.Context, store docstore.Store, opts Options) (*Repository, error) {
	r := &Repository{
		store:        store,
		timeout:      opts.Timeout,
		siteName:     opts.SiteName,
		validate:     validator.New(),
		settingsLock: &sync.RWMutex{},
	}

	unsubscribe, err := store.Subscribe(ctx, models.FirestoreSettingsCollection, models.HomepageConfigDocument, r.handleSettingsDoc)
	if err != nil {
		return nil, classify(err, nil, "error subscribing to site settings")
	}
	r.unsubscribe = unsubscribe

	return r, nil
}

// Close stops the listeners. The underlying store is left open.
func (r *Repository) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
}

// Validate checks a request or entity against its validate tags, returning a ValidationError.
func (r *Repository) Validate(v interface{}) error {
	if err := r.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return qerrors.Validation("invalid %s: failed %q", fe.Field(), fe.Tag())
		}
		return qerrors.Validation("invalid input: %v", err)
	}
	return nil
}

// Helpers

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// decode converts a raw document into out and validates it. Malformed documents are rejected
// rather than returned half-populated.
func (r *Repository) decode(doc *docstore.Document, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(map[string]interface{}(doc.Data)); err != nil {
		return qerrors.Validation("malformed document %s: %v", doc.ID, err)
	}
	if err := r.validate.Struct(out); err != nil {
		return qerrors.Validation("malformed document %s: %v", doc.ID, err)
	}
	return nil
}

// classify maps a store failure onto the error taxonomy. Errors that already carry a kind are
// returned unchanged; notFound, if set, replaces docstore.ErrNotFound.
func classify(err error, notFound error, msg string) error {
	switch {
	case err == nil:
		return nil
	case isClassified(err):
		return err
	case errors.Is(err, docstore.ErrNotFound):
		if notFound != nil {
			return notFound
		}
		return qerrors.NotFound("%s", msg)
	case errors.Is(err, context.DeadlineExceeded):
		return qerrors.Timeout(err, "%s", msg)
	default:
		return qerrors.Persistence(err, "%s", msg)
	}
}

func isClassified(err error) bool {
	for _, kind := range []error{
		qerrors.ErrValidation,
		qerrors.ErrPersistence,
		qerrors.ErrExternalService,
		qerrors.ErrTimeout,
		qerrors.ErrNotFound,
		qerrors.ErrUnauthorized,
		qerrors.ErrForbidden,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func logDecodeError(collection string, err error) {
	glog.Warningf("skipping %s document: %v\n", collection, err)
}
