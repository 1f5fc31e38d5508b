// Package enrollment mediates access to gated course content. Learners ask for access; only an
// administrator's approval adds them to a course.
package enrollment

import (
	"context"

	"lingosphere/internal/models"
	"lingosphere/internal/qerrors"

	"github.com/golang/glog"
)

// Store is the persistence the workflow needs. *repository.Repository implements it.
type Store interface {
	GetCourseByID(ctx context.Context, ID string) (*models.Course, error)
	CreateCourseRequest(ctx context.Context, c *models.CreateCourseRequestRequest) (*models.CourseRequest, error)
	ListCourseRequests(ctx context.Context) ([]*models.CourseRequest, error)
	ListCourseRequestsFor(ctx context.Context, userID, courseID string) ([]*models.CourseRequest, error)
	ApproveCourseRequest(ctx context.Context, ID string) (*models.CourseRequest, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// RequestAccess records that the learner wants access to the course. Repeated calls create
// repeated requests; approving any one of them resolves all of them.
func (s *Service) RequestAccess(ctx context.Context, learner *models.User, courseID string) (*models.CourseRequest, error) {
	if learner == nil || learner.ID == "" {
		return nil, qerrors.UnauthenticatedError
	}

	course, err := s.store.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.IsEnrolled(learner.ID) {
		return nil, qerrors.AlreadyEnrolledError
	}

	req, err := s.store.CreateCourseRequest(ctx, &models.CreateCourseRequestRequest{
		UserID:      learner.ID,
		UserEmail:   learner.Email,
		CourseID:    course.ID,
		CourseTitle: course.Title,
	})
	if err != nil {
		return nil, err
	}

	glog.Infof("user %s requested access to course %s\n", learner.ID, course.ID)
	return req, nil
}

// ListPendingRequests returns every outstanding request, most recent first.
func (s *Service) ListPendingRequests(ctx context.Context) ([]*models.CourseRequest, error) {
	return s.store.ListCourseRequests(ctx)
}

// Approve enrolls the requesting learner and removes the request in one transaction.
func (s *Service) Approve(ctx context.Context, requestID string) (*models.CourseRequest, error) {
	req, err := s.store.ApproveCourseRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	glog.Infof("approved request %s: user %s enrolled in course %s\n", req.ID, req.UserID, req.CourseID)
	return req, nil
}

// HasRequested reports whether the learner has an outstanding request for the course.
func (s *Service) HasRequested(ctx context.Context, userID, courseID string) (bool, error) {
	requests, err := s.store.ListCourseRequestsFor(ctx, userID, courseID)
	if err != nil {
		return false, err
	}
	return len(requests) > 0, nil
}

// AccessState returns where the learner stands for the course. A nil learner is NotRequested.
func (s *Service) AccessState(ctx context.Context, learner *models.User, course *models.Course) (models.AccessState, error) {
	if learner == nil || learner.ID == "" {
		return models.AccessNotRequested, nil
	}
	if course.IsEnrolled(learner.ID) {
		return models.AccessEnrolled, nil
	}

	pending, err := s.HasRequested(ctx, learner.ID, course.ID)
	if err != nil {
		return "", err
	}
	if pending {
		return models.AccessPending, nil
	}
	return models.AccessNotRequested, nil
}

// CanViewContent reports whether the gated fields of the course may be shown to the user.
func CanViewContent(user *models.User, course *models.Course) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin || course.IsEnrolled(user.ID)
}
