// Package plaintext tokenises plain text into training sentences.
package plaintext
