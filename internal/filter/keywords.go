package filter

import (
	"strings"
	"time"

	"go-jobscout/internal/models"
)

// ShouldIncludeJob drops results without a title and postings older than maxAge
func ShouldIncludeJob(job models.JobCandidate, now time.Time, maxAge time.Duration) bool {
	//must have a title to score against
	if strings.TrimSpace(job.Title) == "" {
		return false
	}

	//must be recent
	return IsRecentJob(job.DetectedExtensions.PostedAt, now, maxAge)
}
