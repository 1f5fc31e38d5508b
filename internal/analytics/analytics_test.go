package analytics

import (
	"math"
	"reflect"
	"testing"
	"time"

	"lingosphere/internal/models"
)

func createRequest(userID, courseID string, now time.Time, waitSeconds int) *models.CourseRequest {
	return &models.CourseRequest{
		UserID:    userID,
		CourseID:  courseID,
		CreatedAt: now.Add(-time.Duration(waitSeconds) * time.Second),
	}
}

func TestGenerateRequestAnalytics(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	requests := []*models.CourseRequest{
		createRequest("1", "grammar", now, 10),
		createRequest("2", "grammar", now, 5),
		createRequest("1", "business", now, 2),
		// Duplicate request by the same learner
		createRequest("1", "grammar", now, 1),
		// Not yet timestamped
		{UserID: "3", CourseID: "business"},
	}

	analytics := GenerateRequestAnalytics(requests, now)

	if analytics.Pending != 5 {
		t.Errorf("Expected 5 pending requests, got %d", analytics.Pending)
	}

	expectedByCourse := map[string]int{"grammar": 3, "business": 2}
	if !reflect.DeepEqual(analytics.PendingByCourse, expectedByCourse) {
		t.Errorf("Expected pending by course to be %v, got %v", expectedByCourse, analytics.PendingByCourse)
	}

	if analytics.DistinctLearners != 3 {
		t.Errorf("Expected 3 distinct learners, got %d", analytics.DistinctLearners)
	}

	// Waits are 1, 2, 5, 10.
	if !approximatelyEqual(analytics.WaitSeconds.P50, 3.5) {
		t.Errorf("Expected P50 wait to be 3.5, got %f", analytics.WaitSeconds.P50)
	}
}

func TestGenerateRequestAnalyticsEmpty(t *testing.T) {
	analytics := GenerateRequestAnalytics(nil, time.Now())

	if analytics.Pending != 0 || analytics.DistinctLearners != 0 {
		t.Errorf("Expected empty analytics, got %+v", analytics)
	}
	if analytics.PendingByCourse == nil {
		t.Errorf("Expected an empty, non-nil map")
	}
	if analytics.WaitSeconds != (models.Percentiles{}) {
		t.Errorf("Expected zero percentiles, got %+v", analytics.WaitSeconds)
	}
}

func TestCountInquiries(t *testing.T) {
	counts := CountInquiries([]*models.Inquiry{
		{Status: models.InquiryNew},
		{Status: models.InquiryNew},
		{Status: models.InquiryReplied},
	})

	expected := map[models.InquiryStatus]int{
		models.InquiryNew:     2,
		models.InquiryRead:    0,
		models.InquiryReplied: 1,
	}
	if !reflect.DeepEqual(counts, expected) {
		t.Errorf("Expected counts to be %v, got %v", expected, counts)
	}
}

func approximatelyEqual(a float64, b float64) bool {
	return math.Abs(a-b) < 0.00001
}

func TestCalculatePercentiles(t *testing.T) {
	basicDistribution := []int{2, 5, 10}
	basicPercentiles := CalculatePercentiles(basicDistribution)
	expectedBasicPercentiles := &models.Percentiles{
		P50: 5,
		P90: 9,
		P99: 9.9,
	}

	if !approximatelyEqual(basicPercentiles.P50, expectedBasicPercentiles.P50) {
		t.Errorf("Expected P50 to be %f, got %f", expectedBasicPercentiles.P50, basicPercentiles.P50)
	}
	if !approximatelyEqual(basicPercentiles.P90, expectedBasicPercentiles.P90) {
		t.Errorf("Expected P90 to be %f, got %f", expectedBasicPercentiles.P90, basicPercentiles.P90)
	}
	if !approximatelyEqual(basicPercentiles.P99, expectedBasicPercentiles.P99) {
		t.Errorf("Expected P99 to be %f, got %f", expectedBasicPercentiles.P99, basicPercentiles.P99)
	}
}

func TestCalculatePercentilesSingleValue(t *testing.T) {
	p := CalculatePercentiles([]int{42})
	if p.P50 != 42 || p.P90 != 42 || p.P99 != 42 {
		t.Errorf("Expected all percentiles to be 42, got %+v", p)
	}
}
