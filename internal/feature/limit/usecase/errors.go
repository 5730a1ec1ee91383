package usecase

import (
	"fmt"

	"finance_tracker/internal/shared/apperr"
)

// ErrSpendingLimitNotFound is returned when a spending limit cannot be found by ID.
var ErrSpendingLimitNotFound = fmt.Errorf("spending limit %w", apperr.ErrNotFound)
