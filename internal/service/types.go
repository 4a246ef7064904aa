// Package service defines the backend-agnostic interface for Taskflow operations.
package service

// Todo is a task as the backend represents it on the wire.
//
// Depending on backend version, completion arrives either as the
// Completed boolean or as Status ("COMPLETED" vs. anything else).
// Consumers should call Done() rather than reading either field; the
// store normalizes to a single boolean at ingestion.
type Todo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   *bool  `json:"completed,omitempty"`
	Status      string `json:"status,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Done reports whether the wire representation marks the todo completed,
// whichever of the two fields the backend used.
func (t Todo) Done() bool {
	if t.Completed != nil {
		return *t.Completed
	}
	return t.Status == "COMPLETED"
}

// Health is the backend's liveness report.
type Health struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
