package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
)

type MockExtractionRepo struct {
	mock.Mock
}

func (m *MockExtractionRepo) Insert(ctx context.Context, docID uuid.UUID, result *domain.ExtractionResult, model, version string) error {
	args := m.Called(ctx, docID, result, model, version)
	return args.Error(0)
}
