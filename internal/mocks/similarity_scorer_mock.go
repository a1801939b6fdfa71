package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSimilarityScorer struct {
	mock.Mock
}

func (m *MockSimilarityScorer) Score(ctx context.Context, text1, text2 string) (float64, error) {
	args := m.Called(ctx, text1, text2)
	return args.Get(0).(float64), args.Error(1)
}
