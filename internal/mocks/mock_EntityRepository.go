package mocks

import (
	mock "github.com/stretchr/testify/mock"

	domain "github.com/homespun/homespun/internal/sessions/domain"
)

// MockEntityRepository is a mock type for the EntityRepository type
type MockEntityRepository struct {
	mock.Mock
}

var _ domain.EntityRepository = (*MockEntityRepository)(nil)

type MockEntityRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockEntityRepository) EXPECT() *MockEntityRepository_Expecter {
	return &MockEntityRepository_Expecter{mock: &_m.Mock}
}

// Save provides a mock function with given fields: info
func (_m *MockEntityRepository) Save(info domain.EntityInfo) error {
	ret := _m.Called(info)
	if len(ret) == 0 {
		panic("no return value specified for Save")
	}
	return ret.Error(0)
}

// Save is a helper method to define mock.On call
func (_e *MockEntityRepository_Expecter) Save(info interface{}) *mock.Call {
	return _e.mock.On("Save", info)
}

// FindByID provides a mock function with given fields: id
func (_m *MockEntityRepository) FindByID(id string) (domain.EntityInfo, error) {
	ret := _m.Called(id)
	if len(ret) == 0 {
		panic("no return value specified for FindByID")
	}
	var r0 domain.EntityInfo
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.EntityInfo)
	}
	return r0, ret.Error(1)
}

// FindByID is a helper method to define mock.On call
func (_e *MockEntityRepository_Expecter) FindByID(id interface{}) *mock.Call {
	return _e.mock.On("FindByID", id)
}

// List provides a mock function with given fields: filter
func (_m *MockEntityRepository) List(filter domain.ListFilter) ([]domain.EntityInfo, error) {
	ret := _m.Called(filter)
	if len(ret) == 0 {
		panic("no return value specified for List")
	}
	var r0 []domain.EntityInfo
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.EntityInfo)
	}
	return r0, ret.Error(1)
}

// List is a helper method to define mock.On call
func (_e *MockEntityRepository_Expecter) List(filter interface{}) *mock.Call {
	return _e.mock.On("List", filter)
}

// NewMockEntityRepository creates a new instance of MockEntityRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockEntityRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEntityRepository {
	m := &MockEntityRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
