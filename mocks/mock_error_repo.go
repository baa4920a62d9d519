package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
)

type MockErrorRepo struct {
	mock.Mock
}

func (m *MockErrorRepo) Insert(ctx context.Context, rec *domain.ErrorRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
