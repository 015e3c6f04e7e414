package mocks

import (
	"context"

	"github.com/rpggio/mortality/internal/domain/comparison"
	"github.com/stretchr/testify/mock"
)

// ComparisonRepository is a mock for comparison.Repository.
type ComparisonRepository struct {
	mock.Mock
}

func (m *ComparisonRepository) Save(ctx context.Context, c *comparison.Comparison) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ComparisonRepository) Get(ctx context.Context, id string) (*comparison.Comparison, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*comparison.Comparison); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ComparisonRepository) List(ctx context.Context, opts comparison.ListOptions) ([]comparison.Comparison, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]comparison.Comparison); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
