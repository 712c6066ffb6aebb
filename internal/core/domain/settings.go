package domain

// PreprocessSettings controls tokenisation of raw text.
type PreprocessSettings struct {
	// MinTokenLength drops tokens shorter than this many runes.
	MinTokenLength int

	// MaxTokenLength drops tokens longer than this many runes.
	MaxTokenLength int
}

// ServerSettings configures the MCP HTTP transport.
type ServerSettings struct {
	// Port is the HTTP listen port. Zero means stdio.
	Port int

	// RateLimit is the sustained requests per second allowed. Zero disables limiting.
	RateLimit float64

	// Burst is the token bucket size.
	Burst int
}

// Settings holds all application settings.
type Settings struct {
	// Training holds the default hyperparameters for new runs.
	Training Hyperparameters

	// ModelPath is where the trained model artifact lives.
	ModelPath string

	// DataDir holds the corpus database.
	DataDir string

	// Preprocess holds tokeniser settings.
	Preprocess PreprocessSettings

	// Server holds serving settings.
	Server ServerSettings

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultPreprocessSettings mirrors the usual simple tokeniser bounds.
func DefaultPreprocessSettings() PreprocessSettings {
	return PreprocessSettings{
		MinTokenLength: 2,
		MaxTokenLength: 15,
	}
}

// DefaultSettings returns settings with sensible defaults. Paths are left
// empty and resolved against the config directory by the settings service.
func DefaultSettings() Settings {
	return Settings{
		Training:   DefaultHyperparameters(),
		Preprocess: DefaultPreprocessSettings(),
		Server: ServerSettings{
			Port:      0,
			RateLimit: 20,
			Burst:     40,
		},
	}
}
