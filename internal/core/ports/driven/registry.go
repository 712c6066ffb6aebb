package driven

// NormaliserRegistry selects a text extractor by file extension before
// tokenising. Documents with no registered extractor are read as plain
// text.
type NormaliserRegistry interface {
	Normaliser

	// Register adds an extractor. Later registrations win for an extension.
	Register(extractor TextExtractor)

	// SupportedExtensions returns every extension with an extractor, sorted.
	SupportedExtensions() []string
}
