package idempotency

import "time"

// Status values for idempotency entries
const (
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
	StatusFailed     = "FAILED"
)

// Record is one Idempotency-Key seen by checkout, persisted in the
// idempotency collection.
type Record struct {
	Key            string    `json:"idempotency_key" validate:"required"`
	Status         string    `json:"status" validate:"oneof=IN_PROGRESS DONE FAILED"`
	OrderID        string    `json:"order_id,omitempty"`
	ResponseBody   string    `json:"response_body,omitempty"` // small JSON responses only
	ResponseStatus int       `json:"response_status,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	ExpiresAt      int64     `json:"expires_at"` // epoch seconds
	Note           string    `json:"note,omitempty"`
}

func (r Record) expired(now time.Time) bool {
	return r.ExpiresAt > 0 && now.Unix() >= r.ExpiresAt
}
