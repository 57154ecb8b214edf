// Package pdfcheck verifies that harvested PDF links actually point at
// readable PDFs.
package pdfcheck

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Verify checks that data parses as a PDF and returns its page count.
// The underlying parser panics on some malformed files, so that is
// caught and reported as an ordinary error.
func Verify(data []byte) (pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("parsing PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("parsing PDF: %w", err)
	}
	pages = reader.NumPage()
	if pages < 1 {
		return 0, fmt.Errorf("PDF has no pages")
	}
	return pages, nil
}
