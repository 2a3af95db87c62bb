package notify

import "time"

// Event is the run summary delivered to notification sinks after a batch.
type Event struct {
	Status       string    `json:"status"`
	Total        int       `json:"total_articles"`
	Uploaded     int       `json:"uploaded_articles"`
	FailedRowIDs []string  `json:"failed_row_ids,omitempty"`
	CompletedAt  time.Time `json:"completed_at"`
}

// NewEvent constructs an Event for a finished run.
func NewEvent(status string, total, uploaded int, failedRowIDs []string) Event {
	return Event{
		Status:       status,
		Total:        total,
		Uploaded:     uploaded,
		FailedRowIDs: failedRowIDs,
		CompletedAt:  time.Now().UTC(),
	}
}
