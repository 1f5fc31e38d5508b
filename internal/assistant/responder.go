// Package assistant answers visitor questions about the school from a fixed FAQ and course
// catalog.
package assistant

import (
	"context"

	"lingosphere/internal/config"
	"lingosphere/internal/llm"

	"github.com/golang/glog"
)

// Responder turns a free-text question into an answer. Implementations report failures as
// answer text; callers always get something to show.
type Responder interface {
	Respond(ctx context.Context, question string) string
}

var (
	_ Responder = (*Rules)(nil)
	_ Responder = (*Hosted)(nil)
)

// New returns the responder selected by the configuration. Hosted mode without a usable client
// falls back to the rules.
func New(c *config.ServerConfig, client llm.Client) Responder {
	rules := NewRules(FAQText, DefaultCatalog)
	if c.AssistantMode != config.AssistantHosted {
		return rules
	}
	if client == nil {
		glog.Warningf("assistant mode %q requested without a model client; using rules\n", c.AssistantMode)
		return rules
	}

	hosted, err := NewHosted(client, FAQText, DefaultCatalog, c.AssistantTimeout)
	if err != nil {
		glog.Errorf("error building hosted assistant, using rules: %v\n", err)
		return rules
	}
	return hosted
}
