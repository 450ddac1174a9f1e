package driving

import (
	"time"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// IncrementalSearch is a debounced search-as-you-type field.
type IncrementalSearch interface {
	// OnQueryChange feeds the field's current raw text.
	OnQueryChange(raw string)

	// SearchNow issues a search for raw immediately, skipping the debounce.
	SearchNow(raw string)

	// Flush fires a pending debounce timer immediately.
	Flush()

	// State returns a snapshot of the field.
	State() domain.SearchState

	// Changed receives after state changes. Notifications coalesce.
	Changed() <-chan struct{}

	// SetDelay changes the debounce delay for later keystrokes.
	SetDelay(d time.Duration)

	// Close cancels pending and in-flight work.
	Close()
}
