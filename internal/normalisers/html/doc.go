// Package html extracts readable text from HTML documents. Scripts, styles
// and markup are stripped, entities decoded, and each block element becomes
// its own line.
package html
