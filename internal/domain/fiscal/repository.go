package fiscal

import "context"

// Repository persists the fiscal settings singleton.
type Repository interface {
	// Load returns the current settings, or nil when none exist yet.
	Load(ctx context.Context) (*Settings, error)

	// Save creates or updates the settings row.
	Save(ctx context.Context, settings *Settings) error
}
