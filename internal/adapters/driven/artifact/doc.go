// Package artifact persists trained models to disk.
//
// Two formats are supported, chosen by file extension:
//   - .txt and .vec: the word2vec text format, for exchange with other tools
//   - anything else: the native binary format described in binary.go
//
// Writes go to a temporary file in the destination directory which is
// synced and renamed into place, so readers never see a partial artifact.
package artifact
