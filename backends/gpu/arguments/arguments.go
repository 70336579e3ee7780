// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package arguments holds the named resources and scalars of a GPU operation, as referenced by
// name from the generated kernel source.
//
// Binding them to an actual compiled kernel is the job of the device layer; this package only
// keeps the registry, so the naming contract between an operation and its kernel is explicit.
package arguments

import (
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// AccessType of a kernel argument.
type AccessType int

const (
	Read AccessType = iota
	Write
	ReadWrite
)

// String implements fmt.Stringer.
func (a AccessType) String() string {
	switch a {
	case Read:
		return "read"
	case Write:
		return "write"
	case ReadWrite:
		return "read_write"
	}
	return "AccessType(?)"
}

// Releaser is implemented by resources owning device memory.
type Releaser interface {
	Release()
}

// Object is a named device resource argument.
type Object struct {
	Name   string
	Access AccessType

	// Resource is the device resource handle, e.g. a storage.Buffer.
	Resource any

	// Descriptor describes how the kernel reads the resource, e.g. a storage.BufferDescriptor.
	Descriptor any
}

// Arguments is the set of named arguments of an operation.
//
// It is not safe for concurrent modification: arguments are filled once while the operation is
// built, and read-only afterwards.
type Arguments struct {
	objects     map[string]*Object
	objectOrder []string
	ints        map[string]int
	intOrder    []string
}

// New returns an empty set of arguments.
func New() *Arguments {
	return &Arguments{
		objects: make(map[string]*Object),
		ints:    make(map[string]int),
	}
}

// AddObject registers a resource under the given name.
//
// It panics if the name is already in use: names are fixed by the kernel source, so a duplicate is a bug.
func (a *Arguments) AddObject(name string, access AccessType, resource, descriptor any) {
	if _, found := a.objects[name]; found {
		exceptions.Panicf("arguments: object %q already registered", name)
	}
	a.objects[name] = &Object{Name: name, Access: access, Resource: resource, Descriptor: descriptor}
	a.objectOrder = append(a.objectOrder, name)
}

// Object returns the object registered under name.
func (a *Arguments) Object(name string) (*Object, bool) {
	obj, found := a.objects[name]
	return obj, found
}

// ObjectNames returns the names of the registered objects, in the order they were added.
func (a *Arguments) ObjectNames() []string {
	return slices.Clone(a.objectOrder)
}

// AddInt declares an integer scalar argument with an initial value.
func (a *Arguments) AddInt(name string, value int) {
	if _, found := a.ints[name]; !found {
		a.intOrder = append(a.intOrder, name)
	}
	a.ints[name] = value
}

// SetInt updates an integer scalar previously declared with AddInt.
func (a *Arguments) SetInt(name string, value int) error {
	if _, found := a.ints[name]; !found {
		return errors.Errorf("arguments: no int argument named %q", name)
	}
	a.ints[name] = value
	return nil
}

// Int returns the value of the integer scalar argument.
func (a *Arguments) Int(name string) (value int, found bool) {
	value, found = a.ints[name]
	return
}

// IntNames returns the names of the integer scalar arguments, in the order they were added.
func (a *Arguments) IntNames() []string {
	return slices.Clone(a.intOrder)
}

// Release releases all resources implementing Releaser, and removes all objects.
func (a *Arguments) Release() {
	for _, name := range a.objectOrder {
		if r, ok := a.objects[name].Resource.(Releaser); ok {
			r.Release()
		}
	}
	clear(a.objects)
	a.objectOrder = nil
}
