package models

import "time"

// Release represents the latest release fetched from the tracker repository.
// Releases are ephemeral - fetched fresh each reconciliation cycle, never persisted.
type Release struct {
	Name      string    `json:"name"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	URL       string    `json:"html_url"`
}

// NewIssue holds the fields for filing a new tracker issue
type NewIssue struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty"`
}

// Issue represents an issue created in the tracker repository
type Issue struct {
	Number int    `json:"number"`
	URL    string `json:"html_url"`
}
