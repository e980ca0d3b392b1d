package domain

import "time"

// ProcessEvent represents a status update reported for a service process.
type ProcessEvent struct {
	Protocol  string
	Status    ProcessStatus
	Timestamp time.Time
	Source    string
	Notes     string
}
