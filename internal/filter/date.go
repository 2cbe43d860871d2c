package filter

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	yearOnlyRegex = regexp.MustCompile(`\b(20\d{2})\b`)
	relativeRegex = regexp.MustCompile(`(?i)\b(\d+)\+?\s*(minute|hour|day|week|month)s?\s+ago\b`)
)

// IsRecentJob reports whether a posted-at string is within maxAge of now.
// Unknown formats are kept. maxAge <= 0 disables the check.
func IsRecentJob(dateStr string, now time.Time, maxAge time.Duration) bool {
	dateStr = strings.TrimSpace(dateStr)
	if maxAge <= 0 || dateStr == "" || dateStr == "N/A" || dateStr == "Recent" {
		return true
	}

	//case 1: "3 days ago", "30+ days ago", "12 hours ago"
	if match := relativeRegex.FindStringSubmatch(dateStr); match != nil {
		n, _ := strconv.Atoi(match[1])
		return isWithin(now, now.Add(-time.Duration(n)*unitOf(match[2])), maxAge)
	}

	lower := strings.ToLower(dateStr)
	if strings.Contains(lower, "just posted") || strings.Contains(lower, "today") {
		return true
	}
	if strings.Contains(lower, "yesterday") {
		return isWithin(now, now.Add(-24*time.Hour), maxAge)
	}

	//case 2: ISO format "2026-01-27" or 2026-01-27T...
	if isoDateRegex.MatchString(dateStr) {
		if jobDate, err := time.Parse("2006-01-02", dateStr[:10]); err == nil {
			return isWithin(now, jobDate, maxAge)
		}
	}

	//case 3: dd/mm/yyyy
	if strings.Contains(dateStr, "/") {
		parts := strings.Split(dateStr, "/")
		if len(parts) >= 3 {
			day, _ := strconv.Atoi(parts[0])
			month, _ := strconv.Atoi(parts[1])
			year, _ := strconv.Atoi(parts[2])
			jobDate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			return isWithin(now, jobDate, maxAge)
		}
	}

	//case 4: year only fallback
	if match := yearOnlyRegex.FindStringSubmatch(dateStr); match != nil {
		year, _ := strconv.Atoi(match[1])
		return year == now.Year() || year == now.Year()-1
	}

	return true
}

func unitOf(unit string) time.Duration {
	switch strings.ToLower(unit) {
	case "minute":
		return time.Minute
	case "hour":
		return time.Hour
	case "week":
		return 7 * 24 * time.Hour
	case "month":
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

func isWithin(now, jobDate time.Time, maxAge time.Duration) bool {
	diff := now.Sub(jobDate)
	if diff > maxAge {
		return false
	}

	//reject if future date >2 days (timezone issues)
	if diff < -2*24*time.Hour {
		return false
	}
	return true
}
