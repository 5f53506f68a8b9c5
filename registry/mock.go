package registry

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/groundfi/address-registry/interfaces"
)

// MockSource mocks the ManifestSource interface
type MockSource struct {
	mock.Mock
}

// Fetch mocks the Fetch method
func (m *MockSource) Fetch(ctx context.Context, env interfaces.Environment) ([]byte, error) {
	args := m.Called(ctx, env)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Available mocks the Available method
func (m *MockSource) Available(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// Name returns a fixed name
func (m *MockSource) Name() string {
	return "mock"
}

// LocationURI returns a fixed URI
func (m *MockSource) LocationURI() string {
	return "mock:"
}

// MockDirectory mocks the AddressDirectory interface
type MockDirectory struct {
	mock.Mock
}

// Get mocks the Get method
func (m *MockDirectory) Get(env interfaces.Environment, name interfaces.Name) (interfaces.Address, error) {
	args := m.Called(env, name)
	return args.Get(0).(interfaces.Address), args.Error(1)
}

// Book mocks the Book method
func (m *MockDirectory) Book(env interfaces.Environment) (interfaces.AddressBook, error) {
	args := m.Called(env)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(interfaces.AddressBook), args.Error(1)
}

// Environments mocks the Environments method
func (m *MockDirectory) Environments() []interfaces.Environment {
	args := m.Called()
	return args.Get(0).([]interfaces.Environment)
}
