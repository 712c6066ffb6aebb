package driving

import "github.com/custodia-labs/wordspace/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with defaults applied.
	Get() (*domain.Settings, error)

	// Set validates and persists a single setting by dotted key.
	Set(key, value string) error

	// Reset restores every setting to its default.
	Reset() error

	// Keys lists the recognised setting keys.
	Keys() []string

	// Values returns the effective value of every key, formatted as text.
	Values() (map[string]string, error)
}
