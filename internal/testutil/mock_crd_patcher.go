package testutil

import (
	"crdfix/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockCrdPatcher provides a testify mock for core.CrdPatcher
type MockCrdPatcher struct {
	mock.Mock
}

func (m *MockCrdPatcher) Patch(path string) (*domain.PatchResult, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PatchResult), args.Error(1)
}
