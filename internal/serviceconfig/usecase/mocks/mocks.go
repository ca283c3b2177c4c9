// Package mocks provides testify mock implementations of the config use case interfaces.
package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	configDomain "github.com/allisson/configd/internal/serviceconfig/domain"
)

// MockDocumentRepository is a mock implementation of DocumentRepository.
type MockDocumentRepository struct {
	mock.Mock
}

// NewMockDocumentRepository creates a MockDocumentRepository whose expectations are asserted on cleanup.
func NewMockDocumentRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDocumentRepository {
	m := &MockDocumentRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Load mocks the Load method of DocumentRepository.
func (m *MockDocumentRepository) Load(ctx context.Context, service string) (*configDomain.Document, error) {
	args := m.Called(ctx, service)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*configDomain.Document), args.Error(1)
}

// Save mocks the Save method of DocumentRepository.
func (m *MockDocumentRepository) Save(ctx context.Context, service string, doc *configDomain.Document) error {
	args := m.Called(ctx, service, doc)
	return args.Error(0)
}

// List mocks the List method of DocumentRepository.
func (m *MockDocumentRepository) List(ctx context.Context) ([]configDomain.ServiceInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]configDomain.ServiceInfo), args.Error(1)
}

// MockConfigUseCase is a mock implementation of ConfigUseCase.
type MockConfigUseCase struct {
	mock.Mock
}

// NewMockConfigUseCase creates a MockConfigUseCase whose expectations are asserted on cleanup.
func NewMockConfigUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockConfigUseCase {
	m := &MockConfigUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ListServices mocks the ListServices method of ConfigUseCase.
func (m *MockConfigUseCase) ListServices(ctx context.Context) ([]configDomain.ServiceInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]configDomain.ServiceInfo), args.Error(1)
}

// GetConfig mocks the GetConfig method of ConfigUseCase.
func (m *MockConfigUseCase) GetConfig(ctx context.Context, service string) (any, error) {
	args := m.Called(ctx, service)
	return args.Get(0), args.Error(1)
}

// GetValue mocks the GetValue method of ConfigUseCase.
func (m *MockConfigUseCase) GetValue(ctx context.Context, service, path string) (any, error) {
	args := m.Called(ctx, service, path)
	return args.Get(0), args.Error(1)
}

// SetValue mocks the SetValue method of ConfigUseCase.
func (m *MockConfigUseCase) SetValue(ctx context.Context, service, path string, value json.RawMessage) error {
	args := m.Called(ctx, service, path, value)
	return args.Error(0)
}
