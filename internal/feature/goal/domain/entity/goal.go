// Package entity defines the domain entities for the goal feature.
package entity

import "github.com/shopspring/decimal"

// Goal is an amount a user wants to save up for.
type Goal struct {
	ID           int64
	UserID       int64
	Description  string
	TargetAmount decimal.Decimal
}
