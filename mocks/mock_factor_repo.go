package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
)

type MockFactorRepo struct {
	mock.Mock
}

func (m *MockFactorRepo) GetByCode(ctx context.Context, naicsCode string) (*domain.EmissionFactor, error) {
	args := m.Called(ctx, naicsCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmissionFactor), args.Error(1)
}

func (m *MockFactorRepo) FindByTitleLike(ctx context.Context, pattern string) (*domain.EmissionFactor, error) {
	args := m.Called(ctx, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmissionFactor), args.Error(1)
}
