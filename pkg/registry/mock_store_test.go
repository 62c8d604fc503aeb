package registry

import (
	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/git-identity/pkg/kvstore"
)

// MockStore implements kvstore.Store for testing using testify/mock
type MockStore struct {
	mock.Mock
}

func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) GetString(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockStore) SetString(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockStore) Remove(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockStore) Entries(pattern string) ([]kvstore.Entry, error) {
	args := m.Called(pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kvstore.Entry), args.Error(1)
}
