package iocache

import (
	"time"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetActivityStore implements the CacheManager interface.
func (m *MockCacheManager) GetActivityStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetSettingsStore implements the CacheManager interface.
func (m *MockCacheManager) GetSettingsStore() contract.SettingsStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SettingsStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	ts, _ := args.Get(2).(int64)
	return data, args.Int(1), ts, args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(schema.CacheStatus)
	return status, args.Error(1)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSettingsStore is a mock implementation of SettingsStore for testing.
type MockSettingsStore struct {
	mock.Mock
}

var _ contract.SettingsStore = &MockSettingsStore{} // Compile-time check

// Load implements the SettingsStore interface.
func (m *MockSettingsStore) Load() (schema.Settings, error) {
	args := m.Called()
	settings, _ := args.Get(0).(schema.Settings)
	return settings, args.Error(1)
}

// Save implements the SettingsStore interface.
func (m *MockSettingsStore) Save(settings schema.Settings, updatedAt time.Time) error {
	args := m.Called(settings, updatedAt)
	return args.Error(0)
}

// GetStatus implements the SettingsStore interface.
func (m *MockSettingsStore) GetStatus() (schema.SettingsStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(schema.SettingsStatus)
	return status, args.Error(1)
}

// Close implements the SettingsStore interface.
func (m *MockSettingsStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
