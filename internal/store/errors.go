package store

import (
	"errors"
	"fmt"
)

// ErrNoStore is returned when a view or form is wired up without a Store.
// It signals a construction mistake, not a runtime condition.
var ErrNoStore = errors.New("roster: view constructed without a store")

// SeedError reports seed data that violates the roster invariants.
type SeedError struct {
	Kind   string
	ID     string
	Reason string
}

func (e *SeedError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid seed %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid seed %s %s: %s", e.Kind, e.ID, e.Reason)
}
