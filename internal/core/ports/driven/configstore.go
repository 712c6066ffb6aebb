package driven

// ConfigStore holds flat dot-notation settings such as "training.window".
// Typed getters return the zero value for missing keys or mismatched types.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int

	// GetFloat also accepts integer values.
	GetFloat(key string) float64
	GetBool(key string) bool

	// Set stores a value. File-backed stores persist it immediately.
	Set(key string, value any) error

	// Delete removes a key. Missing keys are ignored.
	Delete(key string) error
}
