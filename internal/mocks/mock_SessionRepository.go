package mocks

import (
	mock "github.com/stretchr/testify/mock"

	domain "github.com/homespun/homespun/internal/sessions/domain"
)

// MockSessionRepository is a mock type for the SessionRepository type
type MockSessionRepository struct {
	mock.Mock
}

var _ domain.SessionRepository = (*MockSessionRepository)(nil)

type MockSessionRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockSessionRepository) EXPECT() *MockSessionRepository_Expecter {
	return &MockSessionRepository_Expecter{mock: &_m.Mock}
}

// Save provides a mock function with given fields: session
func (_m *MockSessionRepository) Save(session *domain.Session) error {
	ret := _m.Called(session)
	if len(ret) == 0 {
		panic("no return value specified for Save")
	}
	return ret.Error(0)
}

// Save is a helper method to define mock.On call
func (_e *MockSessionRepository_Expecter) Save(session interface{}) *mock.Call {
	return _e.mock.On("Save", session)
}

// FindByID provides a mock function with given fields: id
func (_m *MockSessionRepository) FindByID(id string) (*domain.Session, error) {
	ret := _m.Called(id)
	if len(ret) == 0 {
		panic("no return value specified for FindByID")
	}
	var r0 *domain.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Session)
	}
	return r0, ret.Error(1)
}

// FindByID is a helper method to define mock.On call
func (_e *MockSessionRepository_Expecter) FindByID(id interface{}) *mock.Call {
	return _e.mock.On("FindByID", id)
}

// List provides a mock function with given fields: filter
func (_m *MockSessionRepository) List(filter domain.ListFilter) ([]*domain.Session, error) {
	ret := _m.Called(filter)
	if len(ret) == 0 {
		panic("no return value specified for List")
	}
	var r0 []*domain.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*domain.Session)
	}
	return r0, ret.Error(1)
}

// List is a helper method to define mock.On call
func (_e *MockSessionRepository_Expecter) List(filter interface{}) *mock.Call {
	return _e.mock.On("List", filter)
}

// Delete provides a mock function with given fields: id
func (_m *MockSessionRepository) Delete(id string) error {
	ret := _m.Called(id)
	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}
	return ret.Error(0)
}

// Delete is a helper method to define mock.On call
func (_e *MockSessionRepository_Expecter) Delete(id interface{}) *mock.Call {
	return _e.mock.On("Delete", id)
}

// NewMockSessionRepository creates a new instance of MockSessionRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockSessionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
