// Package entity defines the domain entities for the transaction feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one income or expense of a user.
type Transaction struct {
	ID          int64
	UserID      int64
	Amount      decimal.Decimal
	Category    Category
	Description string
	// Date is a calendar date held as 00:00 UTC.
	Date   time.Time
	Income bool
}

// Day returns the calendar date of t as 00:00 UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthBounds returns the first and the last calendar day of the UTC month
// containing t.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.UTC().Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
