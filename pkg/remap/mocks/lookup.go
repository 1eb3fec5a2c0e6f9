package mocks

import (
	"testing"

	mock "github.com/stretchr/testify/mock"

	"github.com/stackb/layered-mappings/pkg/mapping"
	"github.com/stackb/layered-mappings/pkg/namespace"
)

// Lookup is a mock implementation of remap.Lookup.
type Lookup struct {
	mock.Mock
}

// NewLookup creates a Lookup mock whose expectations are asserted when the
// test ends.
func NewLookup(t *testing.T) *Lookup {
	m := &Lookup{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NameIn provides a mock function with given fields: id, ns
func (m *Lookup) NameIn(id mapping.Identity, ns namespace.Namespace) (string, bool) {
	ret := m.Called(id, ns)
	return ret.String(0), ret.Bool(1)
}

// Find provides a mock function with given fields: ns, key
func (m *Lookup) Find(ns namespace.Namespace, key mapping.NameKey) (mapping.Identity, bool) {
	ret := m.Called(ns, key)
	return ret.Get(0).(mapping.Identity), ret.Bool(1)
}

// FindByName provides a mock function with given fields: ns, kind, name
func (m *Lookup) FindByName(ns namespace.Namespace, kind mapping.Kind, name string) (mapping.Identity, bool) {
	ret := m.Called(ns, kind, name)
	return ret.Get(0).(mapping.Identity), ret.Bool(1)
}

// FindMembers provides a mock function with given fields: ns, kind, owner, name
func (m *Lookup) FindMembers(ns namespace.Namespace, kind mapping.Kind, owner mapping.Identity, name string) []mapping.Identity {
	ret := m.Called(ns, kind, owner, name)
	ids, _ := ret.Get(0).([]mapping.Identity)
	return ids
}

// EnclosingClass provides a mock function with given fields: ns, name
func (m *Lookup) EnclosingClass(ns namespace.Namespace, name string) (mapping.Identity, int, bool) {
	ret := m.Called(ns, name)
	return ret.Get(0).(mapping.Identity), ret.Int(1), ret.Bool(2)
}
