package services

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// LoadJobDescription reads the job description once at startup.
func LoadJobDescription(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("job description %s is not valid UTF-8", path)
	}

	return string(data), nil
}
