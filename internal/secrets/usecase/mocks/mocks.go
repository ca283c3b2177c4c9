// Package mocks provides testify mock implementations of the secrets use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/allisson/configd/internal/secrets/domain"
)

// MockSecretRepository is a mock implementation of SecretRepository.
type MockSecretRepository struct {
	mock.Mock
}

// NewMockSecretRepository creates a MockSecretRepository whose expectations are asserted on cleanup.
func NewMockSecretRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSecretRepository {
	m := &MockSecretRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Load mocks the Load method of SecretRepository.
func (m *MockSecretRepository) Load(ctx context.Context) (secretsDomain.LoadResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(secretsDomain.LoadResult), args.Error(1)
}

// Save mocks the Save method of SecretRepository.
func (m *MockSecretRepository) Save(ctx context.Context, doc secretsDomain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

// MockSecretUseCase is a mock implementation of SecretUseCase.
type MockSecretUseCase struct {
	mock.Mock
}

// NewMockSecretUseCase creates a MockSecretUseCase whose expectations are asserted on cleanup.
func NewMockSecretUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSecretUseCase {
	m := &MockSecretUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// List mocks the List method of SecretUseCase.
func (m *MockSecretUseCase) List(ctx context.Context) (secretsDomain.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(secretsDomain.Document), args.Error(1)
}

// ListService mocks the ListService method of SecretUseCase.
func (m *MockSecretUseCase) ListService(ctx context.Context, service string) (map[string]string, error) {
	args := m.Called(ctx, service)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// Get mocks the Get method of SecretUseCase.
func (m *MockSecretUseCase) Get(ctx context.Context, service, key string) (string, error) {
	args := m.Called(ctx, service, key)
	return args.String(0), args.Error(1)
}

// Set mocks the Set method of SecretUseCase.
func (m *MockSecretUseCase) Set(ctx context.Context, service, key, value string) error {
	args := m.Called(ctx, service, key, value)
	return args.Error(0)
}

// Delete mocks the Delete method of SecretUseCase.
func (m *MockSecretUseCase) Delete(ctx context.Context, service, key string) error {
	args := m.Called(ctx, service, key)
	return args.Error(0)
}
