package testutil

import (
	"github.com/stretchr/testify/mock"
)

// MockClusterInspector provides a testify mock for ports.ClusterInspector
type MockClusterInspector struct {
	mock.Mock
}

func (m *MockClusterInspector) ResourceServed(groupVersion, resource string) (bool, error) {
	args := m.Called(groupVersion, resource)
	return args.Bool(0), args.Error(1)
}
