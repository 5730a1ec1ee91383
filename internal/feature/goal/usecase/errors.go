package usecase

import (
	"fmt"

	"finance_tracker/internal/shared/apperr"
)

// ErrGoalNotFound is returned when a goal cannot be found by ID.
var ErrGoalNotFound = fmt.Errorf("goal %w", apperr.ErrNotFound)
