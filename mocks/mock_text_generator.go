package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, input port.GenerateInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}
