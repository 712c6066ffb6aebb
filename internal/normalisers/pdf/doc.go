// Package pdf extracts text from PDF documents using the pdftotext tool
// from poppler. The tool must be on PATH; CheckAvailable reports whether
// it is.
package pdf
