package services

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

type fitzParserService struct{}

// NewFitzParserService extracts PDF text with MuPDF through go-fitz.
func NewFitzParserService() TextExtractor {
	return &fitzParserService{}
}

// ExtractText implements TextExtractor.
func (p *fitzParserService) ExtractText(filePath string) (string, error) {
	doc, err := fitz.New(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	pages := make([]string, 0, pageCount)

	for i := 0; i < pageCount; i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i+1, err)
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}
