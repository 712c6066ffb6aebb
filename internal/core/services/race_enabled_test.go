//go:build race

package services

// raceEnabled skips tests whose unsynchronised training updates the race
// detector would report.
const raceEnabled = true
