package main

import (
	"context"
	"flag"
	"log"

	"lingosphere/internal/assistant"
	"lingosphere/internal/auth"
	"lingosphere/internal/config"
	"lingosphere/internal/docstore"
	"lingosphere/internal/enrollment"
	"lingosphere/internal/firebase"
	"lingosphere/internal/llm"
	"lingosphere/internal/notify"
	"lingosphere/internal/repository"
	rtr "lingosphere/internal/router"
	"lingosphere/internal/server"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

func main() {
	// glog registers its flags on the default flag set.
	flag.Parse()

	err := run()
	glog.Flush()
	if err != nil {
		log.Fatalf("❌ Server stopped: %v\n", err)
	}
}

// run serves until the listener fails. Deferred cleanup runs before main exits.
func run() error {
	c, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "error loading configuration")
	}
	config.Config = c

	ctx := context.Background()

	app, err := firebase.NewApp(ctx, c)
	if err != nil {
		return errors.Wrap(err, "error initializing Firebase app")
	}
	log.Printf("✅ Successfully initialized Firebase app")

	authClient, err := app.Auth(ctx)
	if err != nil {
		return errors.Wrap(err, "error creating auth client")
	}

	var store docstore.Store
	switch c.Store {
	case "memory":
		log.Printf("⚠️ Using the in-memory store. Data is lost on restart.")
		store = docstore.NewMemory(nil)
	default:
		firestoreClient, err := app.Firestore(ctx)
		if err != nil {
			return errors.Wrap(err, "error creating Firestore client")
		}
		store = docstore.NewFirestore(firestoreClient)
	}
	defer store.Close()

	repo, err := repository.New(ctx, store, repository.Options{Timeout: c.StoreTimeout, SiteName: c.SiteName})
	if err != nil {
		return errors.Wrap(err, "error creating repository")
	}
	defer repo.Close()
	log.Printf("✅ Successfully created repository")

	if c.SeedPlaceholders {
		if err := repo.SeedPlaceholders(ctx); err != nil {
			glog.Warningf("error seeding placeholder data: %v\n", err)
		}
	}

	var client llm.Client
	if c.AssistantAPIKey != "" {
		gemini, err := llm.NewGemini(ctx, llm.GeminiOptions{
			Endpoint: c.AssistantEndpoint,
			Model:    c.AssistantModel,
			APIKey:   c.AssistantAPIKey,
			Timeout:  c.AssistantTimeout,
		})
		if err != nil {
			return errors.Wrap(err, "error creating hosted model client")
		}
		client = gemini
	}

	var notifier notify.Notifier = notify.Log{}
	if c.SendGridAPIKey != "" && c.NotificationToEmail != "" {
		notifier = notify.NewSendGrid(notify.SendGridOptions{
			APIKey:    c.SendGridAPIKey,
			SiteName:  c.SiteName,
			FromEmail: c.NotificationFromEmail,
			ToEmail:   c.NotificationToEmail,
		})
	}

	return server.Start(&rtr.Services{
		Repository: repo,
		Enrollment: enrollment.NewService(repo),
		Assistant:  assistant.New(c, client),
		Drafter:    assistant.NewEmailDrafter(client, c.AssistantTimeout),
		Notifier:   notifier,
		Auth:       auth.NewFirebaseProvider(authClient, c.AdminEmails),
	})
}
