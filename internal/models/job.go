package models

// ApplyOption is one of the "apply on ..." links attached to a search result
type ApplyOption struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// RelatedLink is a link the search provider associates with the result
type RelatedLink struct {
	Link string `json:"link"`
	Text string `json:"text"`
}

type DetectedExtensions struct {
	PostedAt     string `json:"posted_at,omitempty"`
	ScheduleType string `json:"schedule_type,omitempty"`
	WorkFromHome bool   `json:"work_from_home,omitempty"`
}

// JobCandidate is a single job listing as returned by the search provider.
// CompanyCareerURL, CareerPageURL and URLSource are filled in by the caller
// after URL selection.
type JobCandidate struct {
	Title              string             `json:"title"`
	CompanyName        string             `json:"company_name"`
	Location           string             `json:"location"`
	Via                string             `json:"via,omitempty"`
	Description        string             `json:"description,omitempty"`
	JobID              string             `json:"job_id,omitempty"`
	ApplyLink          string             `json:"apply_link,omitempty"`
	ApplyOptions       []ApplyOption      `json:"apply_options,omitempty"`
	RelatedLinks       []RelatedLink      `json:"related_links,omitempty"`
	ShareURL           string             `json:"share_url,omitempty"`
	DetectedExtensions DetectedExtensions `json:"detected_extensions,omitempty"`

	CompanyCareerURL string `json:"company_career_url,omitempty"`
	CareerPageURL    string `json:"career_page_url,omitempty"`
	URLSource        string `json:"url_source,omitempty"`
}

// Analysis is the scoring oracle's verdict for one job posting
type Analysis struct {
	MatchScore int     `json:"match_score"`
	Reason     string  `json:"reason"`
	ApplyLink  *string `json:"apply_link"`
}

// Match is a job that scored at or above the run's threshold
type Match struct {
	Title     string `json:"title"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	Score     int    `json:"score"`
	Reason    string `json:"reason"`
	URL       string `json:"url"`
	URLSource string `json:"url_source"`
	ApplyLink string `json:"apply_link"`
	// scraped or provider_description
	ContentSource string `json:"content_source"`
}
