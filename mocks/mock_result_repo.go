package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
)

type MockResultRepo struct {
	mock.Mock
}

func (m *MockResultRepo) Insert(ctx context.Context, result *domain.FinalResult, ruleVersion, factorVersion string) error {
	args := m.Called(ctx, result, ruleVersion, factorVersion)
	return args.Error(0)
}

func (m *MockResultRepo) GetByDocID(ctx context.Context, docID uuid.UUID) (*domain.FinalResult, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinalResult), args.Error(1)
}
