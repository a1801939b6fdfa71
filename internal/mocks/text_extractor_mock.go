package mocks

import (
	"github.com/stretchr/testify/mock"
)

type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractText(filePath string) (string, error) {
	args := m.Called(filePath)
	return args.String(0), args.Error(1)
}
