package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*port.Location, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.Location), args.Error(1)
}
