package repository

import (
	"context"

	"lingosphere/internal/docstore"
	"lingosphere/internal/models"
	"lingosphere/internal/qerrors"

	"github.com/golang/glog"
	"github.com/mitchellh/mapstructure"
)

func (r *Repository) handleSettingsDoc(doc *docstore.Document) {
	if doc == nil {
		r.settingsLock.Lock()
		r.settings = nil
		r.settingsLock.Unlock()
		return
	}

	var s models.SiteSettings
	if err := r.decode(doc, &s); err != nil {
		glog.Errorf("ignoring site settings update: %v\n", err)
		return
	}

	r.settingsLock.Lock()
	r.settings = &s
	r.settingsLock.Unlock()
}

// GetSettings returns the live site settings. Until an admin saves settings, the defaults are
// returned.
func (r *Repository) GetSettings() models.SiteSettings {
	r.settingsLock.RLock()
	defer r.settingsLock.RUnlock()

	if r.settings == nil {
		return models.SiteSettings{SiteName: r.siteName}
	}
	s := *r.settings
	if s.SiteName == "" {
		s.SiteName = r.siteName
	}
	return s
}

// UpdateSettings merges the given fields into the settings document. Unknown fields are rejected.
func (r *Repository) UpdateSettings(ctx context.Context, c models.UpdateSettingsRequest) error {
	if len(c) == 0 {
		return qerrors.Validation("no fields to update")
	}

	var scratch models.SiteSettings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &scratch,
		TagName:     "mapstructure",
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(map[string]interface{}(c)); err != nil {
		return qerrors.Validation("invalid settings: %v", err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err = r.store.Set(ctx, models.FirestoreSettingsCollection, models.HomepageConfigDocument, docstore.Record(c), true)
	return classify(err, nil, "error saving site settings")
}
