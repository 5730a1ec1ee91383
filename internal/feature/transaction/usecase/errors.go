package usecase

import (
	"fmt"

	"finance_tracker/internal/shared/apperr"
)

// ErrTransactionNotFound is returned when a transaction cannot be found by ID,
// or when an update or delete by ID matched no row.
var ErrTransactionNotFound = fmt.Errorf("transaction %w", apperr.ErrNotFound)
