package repository

import (
	"context"
	"time"

	"lingosphere/internal/docstore"
	"lingosphere/internal/models"
	"lingosphere/internal/qerrors"
)

// CreateInquiry stores a contact form submission with status New.
func (r *Repository) CreateInquiry(ctx context.Context, c *models.CreateInquiryRequest) (*models.Inquiry, error) {
	if err := r.Validate(c); err != nil {
		return nil, err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	ID, err := r.store.Create(ctx, models.FirestoreInquiriesCollection, docstore.Record{
		"name":      c.Name,
		"email":     c.Email,
		"message":   c.Message,
		"status":    string(models.InquiryNew),
		"createdAt": docstore.ServerTimestamp,
	})
	if err != nil {
		return nil, classify(err, nil, "error creating inquiry")
	}

	return &models.Inquiry{
		ID:        ID,
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		Status:    models.InquiryNew,
		CreatedAt: time.Now(),
	}, nil
}

// ListInquiries returns every inquiry, most recent first.
func (r *Repository) ListInquiries(ctx context.Context) ([]*models.Inquiry, error) {
	return r.listInquiries(ctx, docstore.Query{OrderBy: "createdAt", Direction: docstore.Desc})
}

// ListInquiriesWithStatus returns the inquiries in the given status.
func (r *Repository) ListInquiriesWithStatus(ctx context.Context, status models.InquiryStatus) ([]*models.Inquiry, error) {
	return r.listInquiries(ctx, docstore.Query{
		Filters: []docstore.Filter{docstore.Where("status", string(status))},
	})
}

func (r *Repository) SetInquiryStatus(ctx context.Context, c *models.SetInquiryStatusRequest) error {
	if !c.Status.Valid() {
		return qerrors.InvalidStatusError
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.store.Update(ctx, models.FirestoreInquiriesCollection, c.InquiryID, []docstore.Update{
		{Path: "status", Value: string(c.Status)},
	})
	return classify(err, qerrors.InquiryNotFoundError, "error updating inquiry status")
}

// Helpers

func (r *Repository) listInquiries(ctx context.Context, q docstore.Query) ([]*models.Inquiry, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	docs, err := r.store.List(ctx, models.FirestoreInquiriesCollection, q)
	if err != nil {
		return nil, classify(err, nil, "error listing inquiries")
	}

	inquiries := make([]*models.Inquiry, 0, len(docs))
	for _, doc := range docs {
		var inq models.Inquiry
		if err := r.decode(doc, &inq); err != nil {
			logDecodeError(models.FirestoreInquiriesCollection, err)
			continue
		}
		inq.ID = doc.ID
		inquiries = append(inquiries, &inq)
	}
	return inquiries, nil
}
