// Package markdown extracts prose from Markdown documents.
package markdown
