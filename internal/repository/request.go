package repository

import (
	"context"
	"errors"
	"time"

	"lingosphere/internal/docstore"
	"lingosphere/internal/models"
	"lingosphere/internal/qerrors"
)

// CreateCourseRequest stores a pending access request. The creation time is assigned by the store.
func (r *Repository) CreateCourseRequest(ctx context.Context, c *models.CreateCourseRequestRequest) (*models.CourseRequest, error) {
	if err := r.Validate(c); err != nil {
		return nil, err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	ID, err := r.store.Create(ctx, models.FirestoreCourseRequestsCollection, docstore.Record{
		"userId":      c.UserID,
		"userEmail":   c.UserEmail,
		"courseId":    c.CourseID,
		"courseTitle": c.CourseTitle,
		"createdAt":   docstore.ServerTimestamp,
	})
	if err != nil {
		return nil, classify(err, nil, "error creating course request")
	}

	return &models.CourseRequest{
		ID:          ID,
		UserID:      c.UserID,
		UserEmail:   c.UserEmail,
		CourseID:    c.CourseID,
		CourseTitle: c.CourseTitle,
		CreatedAt:   time.Now(),
	}, nil
}

// ListCourseRequests returns every pending request, most recent first.
func (r *Repository) ListCourseRequests(ctx context.Context) ([]*models.CourseRequest, error) {
	return r.listCourseRequests(ctx, docstore.Query{OrderBy: "createdAt", Direction: docstore.Desc})
}

// ListCourseRequestsFor returns the pending requests of one learner for one course.
func (r *Repository) ListCourseRequestsFor(ctx context.Context, userID, courseID string) ([]*models.CourseRequest, error) {
	return r.listCourseRequests(ctx, docstore.Query{
		Filters: []docstore.Filter{
			docstore.Where("userId", userID),
			docstore.Where("courseId", courseID),
		},
	})
}

func (r *Repository) GetCourseRequestByID(ctx context.Context, ID string) (*models.CourseRequest, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc, err := r.store.Get(ctx, models.FirestoreCourseRequestsCollection, ID)
	if err != nil {
		return nil, classify(err, qerrors.RequestNotFoundError, "error getting course request")
	}
	return r.decodeCourseRequest(doc)
}

// ApproveCourseRequest grants the requesting learner access to the course and removes the
// request, in one transaction. Other pending requests by the same learner for the same course
// are removed with it. Approving a request that no longer exists fails with
// qerrors.RequestNotFoundError and changes nothing. A request whose course has been deleted is
// removed and reported with qerrors.CourseNotFoundError.
func (r *Repository) ApproveCourseRequest(ctx context.Context, ID string) (*models.CourseRequest, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var (
		approved *models.CourseRequest
		orphaned bool
	)
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		orphaned = false

		doc, err := tx.Get(models.FirestoreCourseRequestsCollection, ID)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				return qerrors.RequestNotFoundError
			}
			return err
		}
		req, err := r.decodeCourseRequest(doc)
		if err != nil {
			return err
		}

		if _, err := tx.Get(models.FirestoreCoursesCollection, req.CourseID); err != nil {
			if !errors.Is(err, docstore.ErrNotFound) {
				return err
			}
			orphaned = true
		}

		duplicates, err := tx.List(models.FirestoreCourseRequestsCollection, docstore.Query{
			Filters: []docstore.Filter{
				docstore.Where("userId", req.UserID),
				docstore.Where("courseId", req.CourseID),
			},
		})
		if err != nil {
			return err
		}

		// All reads are done; writes follow.
		if !orphaned {
			err = tx.Update(models.FirestoreCoursesCollection, req.CourseID, []docstore.Update{
				{Path: "enrolledUserIds", Value: docstore.ArrayUnion(req.UserID)},
			})
			if err != nil {
				return err
			}
		}
		if err := tx.Delete(models.FirestoreCourseRequestsCollection, req.ID); err != nil {
			return err
		}
		for _, d := range duplicates {
			if d.ID == req.ID {
				continue
			}
			if err := tx.Delete(models.FirestoreCourseRequestsCollection, d.ID); err != nil {
				return err
			}
		}

		approved = req
		return nil
	})
	if err != nil {
		return nil, classify(err, nil, "error approving course request")
	}
	if orphaned {
		return nil, qerrors.CourseNotFoundError
	}
	return approved, nil
}

// Helpers

func (r *Repository) listCourseRequests(ctx context.Context, q docstore.Query) ([]*models.CourseRequest, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	docs, err := r.store.List(ctx, models.FirestoreCourseRequestsCollection, q)
	if err != nil {
		return nil, classify(err, nil, "error listing course requests")
	}

	requests := make([]*models.CourseRequest, 0, len(docs))
	for _, doc := range docs {
		req, err := r.decodeCourseRequest(doc)
		if err != nil {
			logDecodeError(models.FirestoreCourseRequestsCollection, err)
			continue
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func (r *Repository) decodeCourseRequest(doc *docstore.Document) (*models.CourseRequest, error) {
	var req models.CourseRequest
	if err := r.decode(doc, &req); err != nil {
		return nil, err
	}
	req.ID = doc.ID
	return &req, nil
}
