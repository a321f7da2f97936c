// Package abi records the object layout contract of a running program:
// the class tree and the slot order of every dispatch table. Separately
// built parts of a program interoperate only if they agree on both, so a
// manifest written by one build can be checked against another.
package abi

import (
	"cmp"
	"slices"

	"github.com/chazu/qimpp/rt"
)

// Version is the manifest format version.
const Version = 1

// Manifest is a snapshot of every registered class and dispatch table.
type Manifest struct {
	Version int                `cbor:"1,keyasint" yaml:"version"`
	Classes []ClassDescriptor  `cbor:"2,keyasint" yaml:"classes"`
	VTables []VTableDescriptor `cbor:"3,keyasint" yaml:"vtables"`
}

// ClassDescriptor describes one class.
type ClassDescriptor struct {
	Name      string `cbor:"1,keyasint" yaml:"name"`
	Parent    string `cbor:"2,keyasint,omitempty" yaml:"parent,omitempty"`
	Component string `cbor:"3,keyasint,omitempty" yaml:"component,omitempty"`
	Primitive bool   `cbor:"4,keyasint,omitempty" yaml:"primitive,omitempty"`
}

// IsArray reports whether the descriptor names an array class.
func (c ClassDescriptor) IsArray() bool {
	return len(c.Name) > 0 && c.Name[0] == '['
}

// VTableDescriptor describes one dispatch table by its named slots.
type VTableDescriptor struct {
	Class  string   `cbor:"1,keyasint" yaml:"class"`
	Parent string   `cbor:"2,keyasint,omitempty" yaml:"parent,omitempty"`
	Slots  []string `cbor:"3,keyasint,omitempty" yaml:"slots,omitempty"`
}

// Snapshot captures the current registry. Built-in classes are included
// even if nothing has used them yet.
func Snapshot() *Manifest {
	rt.Bootstrap()

	// Tables first: resolving a table's class can register it.
	var tables []VTableDescriptor
	for _, vt := range rt.VTables() {
		d := VTableDescriptor{
			Class: className(vt.Class()),
			Slots: vt.SlotNames(),
		}
		if p := vt.Parent(); p != nil {
			d.Parent = className(p.Class())
		}
		tables = append(tables, d)
	}
	slices.SortStableFunc(tables, func(a, b VTableDescriptor) int {
		return cmp.Compare(a.Class, b.Class)
	})

	var classes []ClassDescriptor
	for _, ref := range rt.Classes() {
		k := ref.Get()
		classes = append(classes, ClassDescriptor{
			Name:      k.GetName(),
			Parent:    className(k.GetSuperclass()),
			Component: className(k.GetComponentType()),
			Primitive: k.IsPrimitive(),
		})
	}

	return &Manifest{
		Version: Version,
		Classes: classes,
		VTables: tables,
	}
}

func className(k rt.ClassRef) string {
	if k.IsNull() {
		return ""
	}
	return k.Get().GetName()
}

// Class returns the descriptor with the given name.
func (m *Manifest) Class(name string) (ClassDescriptor, bool) {
	for _, c := range m.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return ClassDescriptor{}, false
}

// VTable returns the first table recorded for the given class.
func (m *Manifest) VTable(class string) (VTableDescriptor, bool) {
	for _, vt := range m.VTables {
		if vt.Class == class {
			return vt, true
		}
	}
	return VTableDescriptor{}, false
}
