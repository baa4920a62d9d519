package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
)

type MockMetricsRepo struct {
	mock.Mock
}

func (m *MockMetricsRepo) Summary(ctx context.Context) (*domain.MetricsSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetricsSummary), args.Error(1)
}

func (m *MockMetricsRepo) ListFinalized(ctx context.Context, limit int) ([]domain.FinalResult, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinalResult), args.Error(1)
}
