package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lingosphere/internal/docstore"
	"lingosphere/internal/models"
	"lingosphere/internal/qerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tickingClock advances by one second on every call so server timestamps are ordered.
func tickingClock() docstore.Clock {
	var mu sync.Mutex
	t := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newTestRepository(t *testing.T) (*Repository, *docstore.Memory) {
	t.Helper()
	store := docstore.NewMemory(tickingClock())
	r, err := New(context.Background(), store, Options{Timeout: time.Second, SiteName: "English Excellence"})
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r, store
}

func createCourse(t *testing.T, r *Repository, title, level string) *models.Course {
	t.Helper()
	c, err := r.CreateCourse(context.Background(), &models.CreateCourseRequest{
		Title:       title,
		Level:       level,
		AgeGroup:    "Adults",
		Goal:        "Grammar",
		Description: "A course.",
	})
	require.NoError(t, err)
	return c
}

// failingStore fails every call with err.
type failingStore struct {
	docstore.Store
	err error
}

func (f *failingStore) Get(ctx context.Context, collection, id string) (*docstore.Document, error) {
	return nil, f.err
}

func (f *failingStore) List(ctx context.Context, collection string, q docstore.Query) ([]*docstore.Document, error) {
	return nil, f.err
}

func (f *failingStore) Create(ctx context.Context, collection string, data docstore.Record) (string, error) {
	return "", f.err
}

func (f *failingStore) Subscribe(ctx context.Context, collection, id string, fn func(*docstore.Document)) (docstore.Unsubscribe, error) {
	return func() {}, nil
}

func TestCourseCRUD(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepository(t)

	created := createCourse(t, r, "Grammar Guru", "Intermediate")
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.EnrolledUserIDs)

	got, err := r.GetCourseByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grammar Guru", got.Title)
	assert.Equal(t, "Intermediate", got.Level)

	title := "Grammar Guru II"
	require.NoError(t, r.EditCourse(ctx, &models.EditCourseRequest{CourseID: created.ID, Title: &title}))
	got, err = r.GetCourseByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grammar Guru II", got.Title)
	assert.Equal(t, "Intermediate", got.Level)

	require.NoError(t, r.DeleteCourse(ctx, &models.DeleteCourseRequest{CourseID: created.ID}))
	_, err = r.GetCourseByID(ctx, created.ID)
	assert.True(t, errors.Is(err, qerrors.CourseNotFoundError))
}

func TestCreateCourseValidation(t *testing.T) {
	r, _ := newTestRepository(t)
	_, err := r.CreateCourse(context.Background(), &models.CreateCourseRequest{Title: "x"})
	assert.True(t, errors.Is(err, qerrors.ErrValidation))
}

func TestEditMissingCourse(t *testing.T) {
	r, _ := newTestRepository(t)
	title := "Anything"
	err := r.EditCourse(context.Background(), &models.EditCourseRequest{CourseID: "nope", Title: &title})
	assert.True(t, errors.Is(err, qerrors.ErrNotFound))
}

func TestMalformedCourseIsRejected(t *testing.T) {
	ctx := context.Background()
	r, store := newTestRepository(t)
	require.NoError(t, store.Set(ctx, models.FirestoreCoursesCollection, "bad", docstore.Record{
		"title":           "Broken",
		"enrolledUserIds": "not-a-list",
	}, false))

	_, err := r.GetCourseByID(ctx, "bad")
	assert.True(t, errors.Is(err, qerrors.ErrValidation))

	// Lists skip the malformed document instead of failing.
	createCourse(t, r, "Grammar Guru", "Intermediate")
	courses, err := r.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Grammar Guru", courses[0].Title)
}

func TestCourseMissingTitleIsRejected(t *testing.T) {
	ctx := context.Background()
	r, store := newTestRepository(t)
	require.NoError(t, store.Set(ctx, models.FirestoreCoursesCollection, "untitled", docstore.Record{"level": "Beginner"}, false))

	_, err := r.GetCourseByID(ctx, "untitled")
	assert.True(t, errors.Is(err, qerrors.ErrValidation))
}

func TestRelatedCourses(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepository(t)

	target := createCourse(t, r, "Alphabet Basics", "Beginner")
	createCourse(t, r, "Basic Greetings", "Beginner")
	createCourse(t, r, "Business Writing", "Advanced")
	createCourse(t, r, "Daily Phrases", "Beginner")
	createCourse(t, r, "Everyday Verbs", "Beginner")
	createCourse(t, r, "First Words", "Beginner")

	related, err := r.RelatedCourses(ctx, target, 3)
	require.NoError(t, err)
	require.Len(t, related, 3)
	for _, c := range related {
		assert.Equal(t, "Beginner", c.Level)
		assert.NotEqual(t, target.ID, c.ID)
	}
}

func TestCourseRequestsNewestFirst(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepository(t)

	for _, user := range []string{"u1", "u2", "u3"} {
		_, err := r.CreateCourseRequest(ctx, &models.CreateCourseRequestRequest{UserID: user, CourseID: "c1"})
		require.NoError(t, err)
	}

	requests, err := r.ListCourseRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, "u3", requests[0].UserID)
	assert.Equal(t, "u1", requests[2].UserID)
	assert.True(t, requests[0].CreatedAt.After(requests[2].CreatedAt))
}

func TestApproveCourseRequest(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepository(t)
	course := createCourse(t, r, "Grammar Guru", "Intermediate")

	first, err := r.CreateCourseRequest(ctx, &models.CreateCourseRequestRequest{UserID: "u1", CourseID: course.ID})
	require.NoError(t, err)
	// A duplicate request and one by another learner.
	_, err = r.CreateCourseRequest(ctx, &models.CreateCourseRequestRequest{UserID: "u1", CourseID: course.ID})
	require.NoError(t, err)
	other, err := r.CreateCourseRequest(ctx, &models.CreateCourseRequestRequest{UserID: "u2", CourseID: course.ID})
	require.NoError(t, err)

	approved, err := r.ApproveCourseRequest(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", approved.UserID)

	got, err := r.GetCourseByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.EnrolledUserIDs)

	requests, err := r.ListCourseRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, other.ID, requests[0].ID)

	// Retrying changes nothing.
	_, err = r.ApproveCourseRequest(ctx, first.ID)
	assert.True(t, errors.Is(err, qerrors.RequestNotFoundError))
	got, err = r.GetCourseByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.EnrolledUserIDs)
}

func TestApproveRequestForDeletedCourse(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepository(t)

	req, err := r.CreateCourseRequest(ctx, &models.CreateCourseRequestRequest{UserID: "u1", CourseID: "gone"})
	require.NoError(t, err)

	_, err = r.ApproveCourseRequest(ctx, req.ID)
	assert.True(t, errors.Is(err, qerrors.CourseNotFoundError))

	_, err = r.GetCourseRequestByID(ctx, req.ID)
	assert.True(t, errors.Is(err, qerrors.RequestNotFoundError), "a request for a deleted course is dropped")

	_, err = r.ApproveCourseRequest(ctx, req.ID)
	assert.True(t, errors.Is(err, qerrors.RequestNotFoundError))
}

func TestDeleteCourseDropsPendingRequests(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepository(t)

	doomed := createCourse(t, r, "Grammar Guru", "Intermediate")
	kept := createCourse(t, r, "Business English", "Advanced")
	for _, courseID := range []string{doomed.ID, doomed.ID, kept.ID} {
		_, err := r.CreateCourseRequest(ctx, &models.CreateCourseRequestRequest{UserID: "u1", CourseID: courseID})
		require.NoError(t, err)
	}

	require.NoError(t, r.DeleteCourse(ctx, &models.DeleteCourseRequest{CourseID: doomed.ID}))

	requests, err := r.ListCourseRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, kept.ID, requests[0].CourseID)

	err = r.DeleteCourse(ctx, &models.DeleteCourseRequest{CourseID: doomed.ID})
	assert.True(t, errors.Is(err, qerrors.CourseNotFoundError))
}

func TestTutorCRUD(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepository(t)

	tutor, err := r.CreateTutor(ctx, &models.CreateTutorRequest{
		Name:        "Jane Doe",
		Country:     "USA",
		Experience:  5,
		Rating:      4.9,
		Specialties: []string{"Pronunciation"},
	})
	require.NoError(t, err)

	rating := 4.5
	require.NoError(t, r.EditTutor(ctx, &models.EditTutorRequest{TutorID: tutor.ID, Rating: &rating}))

	got, err := r.GetTutorByID(ctx, tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.Rating)
	assert.Equal(t, 5, got.Experience)
	assert.Equal(t, []string{"Pronunciation"}, got.Specialties)

	bad := 7.0
	err = r.EditTutor(ctx, &models.EditTutorRequest{TutorID: tutor.ID, Rating: &bad})
	assert.True(t, errors.Is(err, qerrors.ErrValidation))

	require.NoError(t, r.DeleteTutor(ctx, tutor.ID))
	err = r.DeleteTutor(ctx, tutor.ID)
	assert.True(t, errors.Is(err, qerrors.TutorNotFoundError))
}

func TestInquiries(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepository(t)

	_, err := r.CreateInquiry(ctx, &models.CreateInquiryRequest{Name: "A", Email: "a@example.com", Message: "Hello there, friends"})
	assert.True(t, errors.Is(err, qerrors.ErrValidation), "name too short")
	_, err = r.CreateInquiry(ctx, &models.CreateInquiryRequest{Name: "Alex", Email: "not-an-email", Message: "Hello there, friends"})
	assert.True(t, errors.Is(err, qerrors.ErrValidation), "bad email")
	_, err = r.CreateInquiry(ctx, &models.CreateInquiryRequest{Name: "Alex", Email: "a@example.com", Message: "short"})
	assert.True(t, errors.Is(err, qerrors.ErrValidation), "message too short")

	inq, err := r.CreateInquiry(ctx, &models.CreateInquiryRequest{Name: "Alex", Email: "a@example.com", Message: "When does the next course start?"})
	require.NoError(t, err)
	assert.Equal(t, models.InquiryNew, inq.Status)

	require.NoError(t, r.SetInquiryStatus(ctx, &models.SetInquiryStatusRequest{InquiryID: inq.ID, Status: models.InquiryRead}))
	err = r.SetInquiryStatus(ctx, &models.SetInquiryStatusRequest{InquiryID: inq.ID, Status: "Archived"})
	assert.True(t, errors.Is(err, qerrors.InvalidStatusError))
	err = r.SetInquiryStatus(ctx, &models.SetInquiryStatusRequest{InquiryID: "nope", Status: models.InquiryRead})
	assert.True(t, errors.Is(err, qerrors.InquiryNotFoundError))

	all, err := r.ListInquiries(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.InquiryRead, all[0].Status)

	unread, err := r.ListInquiriesWithStatus(ctx, models.InquiryNew)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestSettingsAreLive(t *testing.T) {
	ctx := context.Background()
	r, store := newTestRepository(t)

	assert.Equal(t, "English Excellence", r.GetSettings().SiteName)

	require.NoError(t, r.UpdateSettings(ctx, models.UpdateSettingsRequest{
		"contact": map[string]interface{}{"email": "hello@example.com", "phone": "123"},
	}))
	require.NoError(t, r.UpdateSettings(ctx, models.UpdateSettingsRequest{
		"siteName": "LingoSphere",
		"contact":  map[string]interface{}{"phone": "456"},
	}))

	s := r.GetSettings()
	assert.Equal(t, "LingoSphere", s.SiteName)
	assert.Equal(t, "hello@example.com", s.Contact.Email)
	assert.Equal(t, "456", s.Contact.Phone)

	// Writes made by someone else show up too.
	require.NoError(t, store.Set(ctx, models.FirestoreSettingsCollection, models.HomepageConfigDocument, docstore.Record{
		"socials": map[string]interface{}{"twitter": "https://twitter.com/lingosphere"},
	}, true))
	assert.Equal(t, "https://twitter.com/lingosphere", r.GetSettings().Socials.Twitter)
}

func TestUpdateSettingsRejectsUnknownFields(t *testing.T) {
	r, _ := newTestRepository(t)
	err := r.UpdateSettings(context.Background(), models.UpdateSettingsRequest{"theme": "dark"})
	assert.True(t, errors.Is(err, qerrors.ErrValidation))
}

func TestSeedPlaceholders(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepository(t)

	require.NoError(t, r.SeedPlaceholders(ctx))
	require.NoError(t, r.SeedPlaceholders(ctx))

	courses, err := r.ListCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, len(placeholderCourses))
	tutors, err := r.ListTutors(ctx)
	require.NoError(t, err)
	assert.Len(t, tutors, len(placeholderTutors))
	assert.Equal(t, "Jane Doe", tutors[0].Name)
}

func TestStoreErrorsAreClassified(t *testing.T) {
	ctx := context.Background()

	r, err := New(ctx, &failingStore{err: errors.New("unavailable")}, Options{})
	require.NoError(t, err)
	_, err = r.ListCourses(ctx)
	assert.True(t, errors.Is(err, qerrors.ErrPersistence))
	_, err = r.CreateCourseRequest(ctx, &models.CreateCourseRequestRequest{UserID: "u1", CourseID: "c1"})
	assert.True(t, errors.Is(err, qerrors.ErrPersistence))

	r, err = New(ctx, &failingStore{err: context.DeadlineExceeded}, Options{})
	require.NoError(t, err)
	_, err = r.GetCourseByID(ctx, "c1")
	assert.True(t, errors.Is(err, qerrors.ErrTimeout))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
