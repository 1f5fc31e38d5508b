package analytics

import (
	"sort"
	"time"

	"lingosphere/internal/models"
)

// GenerateRequestAnalytics summarizes the pending course requests as of now. Does not need/use
// any store connection.
func GenerateRequestAnalytics(requests []*models.CourseRequest, now time.Time) models.RequestAnalytics {
	analytics := models.RequestAnalytics{
		Pending:         len(requests),
		PendingByCourse: make(map[string]int),
	}

	learners := make(map[string]bool)
	waits := make([]int, 0, len(requests))
	for _, req := range requests {
		analytics.PendingByCourse[req.CourseID]++
		learners[req.UserID] = true

		// Requests read before their server timestamp resolved have no creation time yet.
		if req.CreatedAt.IsZero() {
			continue
		}
		wait := now.Sub(req.CreatedAt).Seconds()
		if wait < 0 {
			wait = 0
		}
		waits = append(waits, int(wait))
	}

	analytics.DistinctLearners = len(learners)
	analytics.WaitSeconds = CalculatePercentiles(waits)
	return analytics
}

// CountInquiries returns how many inquiries are in each status.
func CountInquiries(inquiries []*models.Inquiry) map[models.InquiryStatus]int {
	counts := map[models.InquiryStatus]int{
		models.InquiryNew:     0,
		models.InquiryRead:    0,
		models.InquiryReplied: 0,
	}
	for _, inq := range inquiries {
		counts[inq.Status]++
	}
	return counts
}

func CalculatePercentiles(data []int) models.Percentiles {
	if len(data) == 0 {
		return models.Percentiles{}
	}

	sort.Ints(data)

	calculatePercentile := func(percentile float64) float64 {
		rank := percentile / 100 * float64(len(data)-1)
		rankInt := int(rank)

		// If the rank is an integer, return the value at that index
		if rank == float64(rankInt) {
			return float64(data[rankInt])
		}

		// Otherwise, linearly interpolate
		baseline := data[rankInt]
		interpolation := (rank - float64(rankInt)) * float64(data[rankInt+1]-data[rankInt])

		return float64(baseline) + interpolation
	}

	return models.Percentiles{
		P50: calculatePercentile(50),
		P90: calculatePercentile(90),
		P99: calculatePercentile(99),
	}
}
