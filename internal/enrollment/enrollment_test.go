package enrollment

import (
	"context"
	"errors"
	"testing"
	"time"

	"lingosphere/internal/docstore"
	"lingosphere/internal/models"
	"lingosphere/internal/qerrors"
	"lingosphere/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var learner = &models.User{ID: "u1", Email: "u1@example.com"}

func setup(t *testing.T) (*Service, *repository.Repository, *docstore.Memory) {
	t.Helper()
	store := docstore.NewMemory(nil)
	repo, err := repository.New(context.Background(), store, repository.Options{Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(repo.Close)

	require.NoError(t, store.Set(context.Background(), models.FirestoreCoursesCollection, "c1", docstore.Record{
		"title":           "Grammar Guru",
		"level":           "Intermediate",
		"enrolledUserIds": []string{},
	}, false))
	return NewService(repo), repo, store
}

func pendingIDs(t *testing.T, s *Service) []string {
	t.Helper()
	requests, err := s.ListPendingRequests(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestRequestThenApprove(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := setup(t)

	req, err := s.RequestAccess(ctx, learner, "c1")
	require.NoError(t, err)
	assert.Equal(t, "u1", req.UserID)
	assert.Equal(t, "c1", req.CourseID)
	assert.Equal(t, "Grammar Guru", req.CourseTitle)
	assert.Equal(t, "u1@example.com", req.UserEmail)

	requests, err := s.ListPendingRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "u1", requests[0].UserID)
	assert.Equal(t, "c1", requests[0].CourseID)
	assert.False(t, requests[0].CreatedAt.IsZero())

	_, err = s.Approve(ctx, req.ID)
	require.NoError(t, err)

	course, err := repo.GetCourseByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, course.EnrolledUserIDs)
	assert.NotContains(t, pendingIDs(t, s), req.ID)
}

func TestApproveTwiceEnrollsOnce(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := setup(t)

	req, err := s.RequestAccess(ctx, learner, "c1")
	require.NoError(t, err)

	_, err = s.Approve(ctx, req.ID)
	require.NoError(t, err)
	_, err = s.Approve(ctx, req.ID)
	assert.True(t, errors.Is(err, qerrors.ErrNotFound))

	course, err := repo.GetCourseByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, course.EnrolledUserIDs)
}

func TestApproveAlreadyEnrolledLearner(t *testing.T) {
	ctx := context.Background()
	s, repo, store := setup(t)

	req, err := s.RequestAccess(ctx, learner, "c1")
	require.NoError(t, err)

	// An admin enrolled the learner directly in the meantime.
	require.NoError(t, store.Update(ctx, models.FirestoreCoursesCollection, "c1", []docstore.Update{
		{Path: "enrolledUserIds", Value: docstore.ArrayUnion("u1")},
	}))

	_, err = s.Approve(ctx, req.ID)
	require.NoError(t, err)

	course, err := repo.GetCourseByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, course.EnrolledUserIDs)
	assert.Empty(t, pendingIDs(t, s))
}

func TestRequestWhenEnrolledIsRejected(t *testing.T) {
	ctx := context.Background()
	s, _, store := setup(t)
	require.NoError(t, store.Set(ctx, models.FirestoreCoursesCollection, "c1", docstore.Record{
		"enrolledUserIds": []string{"u1"},
	}, true))

	_, err := s.RequestAccess(ctx, learner, "c1")
	assert.True(t, errors.Is(err, qerrors.ErrValidation))
	assert.True(t, errors.Is(err, qerrors.AlreadyEnrolledError))
	assert.Empty(t, pendingIDs(t, s))
}

func TestRequestUnauthenticated(t *testing.T) {
	s, _, _ := setup(t)

	_, err := s.RequestAccess(context.Background(), nil, "c1")
	assert.True(t, errors.Is(err, qerrors.ErrValidation))
	_, err = s.RequestAccess(context.Background(), &models.User{}, "c1")
	assert.True(t, errors.Is(err, qerrors.ErrValidation))
}

func TestRequestUnknownCourse(t *testing.T) {
	s, _, _ := setup(t)
	_, err := s.RequestAccess(context.Background(), learner, "missing")
	assert.True(t, errors.Is(err, qerrors.CourseNotFoundError))
}

func TestDuplicateRequestsAreAccepted(t *testing.T) {
	ctx := context.Background()
	s, _, _ := setup(t)

	first, err := s.RequestAccess(ctx, learner, "c1")
	require.NoError(t, err)
	second, err := s.RequestAccess(ctx, learner, "c1")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, pendingIDs(t, s), 2)

	// Approving one resolves both.
	_, err = s.Approve(ctx, second.ID)
	require.NoError(t, err)
	assert.Empty(t, pendingIDs(t, s))
}

func TestAccessState(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := setup(t)

	course, err := repo.GetCourseByID(ctx, "c1")
	require.NoError(t, err)

	state, err := s.AccessState(ctx, nil, course)
	require.NoError(t, err)
	assert.Equal(t, models.AccessNotRequested, state)

	state, err = s.AccessState(ctx, learner, course)
	require.NoError(t, err)
	assert.Equal(t, models.AccessNotRequested, state)

	has, err := s.HasRequested(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.False(t, has)

	req, err := s.RequestAccess(ctx, learner, "c1")
	require.NoError(t, err)

	has, err = s.HasRequested(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.True(t, has)
	has, err = s.HasRequested(ctx, "u2", "c1")
	require.NoError(t, err)
	assert.False(t, has)

	state, err = s.AccessState(ctx, learner, course)
	require.NoError(t, err)
	assert.Equal(t, models.AccessPending, state)

	_, err = s.Approve(ctx, req.ID)
	require.NoError(t, err)
	course, err = repo.GetCourseByID(ctx, "c1")
	require.NoError(t, err)

	state, err = s.AccessState(ctx, learner, course)
	require.NoError(t, err)
	assert.Equal(t, models.AccessEnrolled, state)
}

func TestCanViewContent(t *testing.T) {
	course := &models.Course{ID: "c1", EnrolledUserIDs: []string{"u1"}}

	assert.False(t, CanViewContent(nil, course))
	assert.True(t, CanViewContent(learner, course))
	assert.False(t, CanViewContent(&models.User{ID: "u2"}, course))
	assert.True(t, CanViewContent(&models.User{ID: "u2", IsAdmin: true}, course))
}
