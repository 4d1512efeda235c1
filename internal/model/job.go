package model

import "time"

// JobStatus represents the current state of a competitor analysis job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// AnalysisJob tracks one competitor discovery batch for a profile.
// Status transitions happen at batch boundaries only, never per candidate.
type AnalysisJob struct {
	ID               string     `json:"id"`
	ProfileID        string     `json:"profile_id"`
	Status           JobStatus  `json:"status"`
	CompetitorsFound int        `json:"competitors_found"`
	ErrorMessage     string     `json:"error_message,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// DiscoveredViaWebSearch tags relations produced by the search-based batch.
const DiscoveredViaWebSearch = "web_search"

// BatchResult summarizes one competitor batch run.
type BatchResult struct {
	JobID            string    `json:"job_id"`
	Status           JobStatus `json:"status"`
	CompetitorsFound int       `json:"competitors_found"`
}
