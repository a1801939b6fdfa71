package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TextExtractor turns a document on disk into plain text.
type TextExtractor interface {
	ExtractText(filePath string) (string, error)
}

type dispatchingExtractor struct {
	pdf  TextExtractor
	docx TextExtractor
	text TextExtractor
}

// NewTextExtractor routes by file extension. Everything that is not a known
// word-processing or text format goes to the PDF backend, so corrupt or
// unsupported files fail there.
func NewTextExtractor(pdfBackend TextExtractor) TextExtractor {
	return &dispatchingExtractor{
		pdf:  pdfBackend,
		docx: NewDocxParserService(),
		text: NewPlainTextService(),
	}
}

// ExtractText implements TextExtractor.
func (d *dispatchingExtractor) ExtractText(filePath string) (string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".docx":
		return d.docx.ExtractText(filePath)
	case ".txt", ".md":
		return d.text.ExtractText(filePath)
	default:
		return d.pdf.ExtractText(filePath)
	}
}

type plainTextService struct{}

func NewPlainTextService() TextExtractor {
	return &plainTextService{}
}

// ExtractText implements TextExtractor.
func (p *plainTextService) ExtractText(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}

	return strings.ToValidUTF8(string(data), "�"), nil
}
