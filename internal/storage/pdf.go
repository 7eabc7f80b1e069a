package storage

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/campusgrid/timetable-backend/internal/model"
)

var pdfMagic = []byte("%PDF-")

// CheckExtension accepts only names ending in .pdf (any case).
func CheckExtension(filename string) error {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return fmt.Errorf("%w: only PDF files are allowed", model.ErrUnsupportedFile)
	}
	return nil
}

// InspectPDF checks that body is a readable PDF with between 1 and maxPages
// pages and returns the page count. maxPages <= 0 disables the upper bound.
func InspectPDF(body []byte, maxPages int) (int, error) {
	if !bytes.HasPrefix(body, pdfMagic) {
		return 0, fmt.Errorf("%w: missing PDF header", model.ErrUnsupportedFile)
	}

	pages, err := countPages(trimAfterEOF(body))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrUnsupportedFile, err)
	}
	if pages == 0 {
		return 0, fmt.Errorf("%w: PDF has no pages", model.ErrUnsupportedFile)
	}
	if maxPages > 0 && pages > maxPages {
		return pages, fmt.Errorf("%w: PDF has %d pages, the limit is %d", model.ErrFileTooLarge, pages, maxPages)
	}
	return pages, nil
}

// countPages recovers from parser panics on malformed input.
func countPages(body []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unreadable PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return 0, fmt.Errorf("unreadable PDF: %w", err)
	}
	return reader.NumPage(), nil
}

// trimAfterEOF drops trailing bytes after the last %%EOF marker, which some
// generators append and the parser rejects.
func trimAfterEOF(body []byte) []byte {
	marker := []byte("%%EOF")
	idx := bytes.LastIndex(body, marker)
	if idx == -1 {
		return body
	}
	end := idx + len(marker)
	for end < len(body) && (body[end] == '\n' || body[end] == '\r') {
		end++
	}
	return body[:end]
}
