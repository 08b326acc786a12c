package contract

import (
	"context"

	"github.com/huangsam/streak/schema"
	"github.com/stretchr/testify/mock"
)

// MockFileStore is a mock implementation of FileStore for testing.
type MockFileStore struct {
	mock.Mock
}

var _ FileStore = &MockFileStore{} // Compile-time check

// ListFiles implements the FileStore interface.
func (m *MockFileStore) ListFiles(ctx context.Context) ([]string, error) {
	ret := m.Called(ctx)
	files, _ := ret.Get(0).([]string)
	return files, ret.Error(1)
}

// Stat implements the FileStore interface.
func (m *MockFileStore) Stat(ctx context.Context, path string) (schema.FileTimestamps, error) {
	ret := m.Called(ctx, path)
	ts, _ := ret.Get(0).(schema.FileTimestamps)
	return ts, ret.Error(1)
}
