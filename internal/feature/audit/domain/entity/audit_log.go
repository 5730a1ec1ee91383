package entity

import "time"

// AuditLog records one successful call of a request-handling endpoint.
// UserID and Email are nil when the caller was not authenticated.
type AuditLog struct {
	ID        int64
	Action    string
	UserID    *int64
	Email     *string
	Details   string
	Timestamp time.Time
}
