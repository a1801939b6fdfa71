package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Archive(ctx context.Context, filePath, key, contentType string) error {
	args := m.Called(ctx, filePath, key, contentType)
	return args.Error(0)
}
