// Package normalisers turns documents into training sentences. Format
// packages (html, markdown, pdf) extract plain text; the plaintext package
// tokenises it. Registry ties them together by file extension.
package normalisers
