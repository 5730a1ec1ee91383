// Package entity defines the domain entities for the spending limit feature.
package entity

import "github.com/shopspring/decimal"

// SpendingLimit caps a user's monthly consumption. Inactive limits are ignored.
type SpendingLimit struct {
	ID     int64
	UserID int64
	Limit  decimal.Decimal
	Active bool
}

// ExceededBy reports whether consumption is strictly above the limit.
func (l SpendingLimit) ExceededBy(consumption decimal.Decimal) bool {
	return consumption.GreaterThan(l.Limit)
}
