package services

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type pdfParserService struct{}

// NewPDFParserService extracts PDF text with ledongthuc/pdf.
func NewPDFParserService() TextExtractor {
	return &pdfParserService{}
}

// ExtractText implements TextExtractor.
func (p *pdfParserService) ExtractText(filePath string) (text string, err error) {
	// ledongthuc/pdf reports many malformed-file conditions by panicking.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	totalPage := r.NumPage()
	pages := make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", pageIndex, err)
		}

		pages = append(pages, pageText)
	}

	return strings.Join(pages, "\n"), nil
}
