// Package prometheus records query, model and training measurements as
// Prometheus metrics. Each Recorder owns its registry so tests and
// multiple servers do not share global state.
package prometheus
