package mocks

import (
	mock "github.com/stretchr/testify/mock"

	domain "github.com/homespun/homespun/internal/sessions/domain"
)

// MockContainerRepository is a mock type for the ContainerRepository type
type MockContainerRepository struct {
	mock.Mock
}

var _ domain.ContainerRepository = (*MockContainerRepository)(nil)

type MockContainerRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockContainerRepository) EXPECT() *MockContainerRepository_Expecter {
	return &MockContainerRepository_Expecter{mock: &_m.Mock}
}

// Save provides a mock function with given fields: container
func (_m *MockContainerRepository) Save(container domain.Container) error {
	ret := _m.Called(container)
	if len(ret) == 0 {
		panic("no return value specified for Save")
	}
	return ret.Error(0)
}

// Save is a helper method to define mock.On call
func (_e *MockContainerRepository_Expecter) Save(container interface{}) *mock.Call {
	return _e.mock.On("Save", container)
}

// FindByID provides a mock function with given fields: id
func (_m *MockContainerRepository) FindByID(id string) (domain.Container, error) {
	ret := _m.Called(id)
	if len(ret) == 0 {
		panic("no return value specified for FindByID")
	}
	var r0 domain.Container
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.Container)
	}
	return r0, ret.Error(1)
}

// FindByID is a helper method to define mock.On call
func (_e *MockContainerRepository_Expecter) FindByID(id interface{}) *mock.Call {
	return _e.mock.On("FindByID", id)
}

// List provides a mock function with given fields: filter
func (_m *MockContainerRepository) List(filter domain.ListFilter) ([]domain.Container, error) {
	ret := _m.Called(filter)
	if len(ret) == 0 {
		panic("no return value specified for List")
	}
	var r0 []domain.Container
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Container)
	}
	return r0, ret.Error(1)
}

// List is a helper method to define mock.On call
func (_e *MockContainerRepository_Expecter) List(filter interface{}) *mock.Call {
	return _e.mock.On("List", filter)
}

// Delete provides a mock function with given fields: id
func (_m *MockContainerRepository) Delete(id string) error {
	ret := _m.Called(id)
	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}
	return ret.Error(0)
}

// Delete is a helper method to define mock.On call
func (_e *MockContainerRepository_Expecter) Delete(id interface{}) *mock.Call {
	return _e.mock.On("Delete", id)
}

// NewMockContainerRepository creates a new instance of MockContainerRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockContainerRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockContainerRepository {
	m := &MockContainerRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
