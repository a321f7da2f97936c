package abi

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// Verify checks the layout rules a manifest must satisfy:
//   - class names are unique and every named parent or component exists
//   - array classes name a component, other classes do not
//   - every table's slots start with its parent table's slots, in order
//
// All violations are reported together.
func Verify(m *Manifest) error {
	var errs []error
	classes := make(map[string]ClassDescriptor, len(m.Classes))
	for _, c := range m.Classes {
		if _, dup := classes[c.Name]; dup {
			errs = append(errs, fmt.Errorf("class %s: duplicate", c.Name))
		}
		classes[c.Name] = c
	}

	for _, c := range m.Classes {
		if c.Parent != "" {
			if _, ok := classes[c.Parent]; !ok {
				errs = append(errs, fmt.Errorf("class %s: unknown superclass %s", c.Name, c.Parent))
			}
		}
		switch {
		case c.IsArray() && c.Component == "":
			errs = append(errs, fmt.Errorf("class %s: array without component", c.Name))
		case !c.IsArray() && c.Component != "":
			errs = append(errs, fmt.Errorf("class %s: component on a non-array class", c.Name))
		case c.Component != "":
			if _, ok := classes[c.Component]; !ok {
				errs = append(errs, fmt.Errorf("class %s: unknown component %s", c.Name, c.Component))
			}
		}
		if c.Primitive && c.Parent != "" {
			errs = append(errs, fmt.Errorf("class %s: primitive with superclass %s", c.Name, c.Parent))
		}
	}

	for _, vt := range m.VTables {
		if vt.Parent == "" {
			continue
		}
		parent, ok := m.VTable(vt.Parent)
		if !ok {
			errs = append(errs, fmt.Errorf("vtable %s: unknown parent table %s", vt.Class, vt.Parent))
			continue
		}
		if err := checkPrefix(parent.Slots, vt.Slots); err != nil {
			errs = append(errs, fmt.Errorf("vtable %s: %w", vt.Class, err))
		}
	}
	return errors.Join(errs...)
}

// checkPrefix reports the first slot where slots departs from prefix.
func checkPrefix(prefix, slots []string) error {
	for i, name := range prefix {
		if i >= len(slots) {
			return fmt.Errorf("slot %d (%s) missing", i, name)
		}
		if slots[i] != name {
			return fmt.Errorf("slot %d is %s, want %s", i, slots[i], name)
		}
	}
	return nil
}

// Difference is one incompatibility between two manifests.
type Difference struct {
	Class  string
	Reason string
}

func (d Difference) String() string {
	return d.Class + ": " + d.Reason
}

// Compare lists the ways next breaks code built against prev. Added
// classes and slots appended to a table are compatible; anything that
// moves, removes or re-parents something prev relied on is not.
func Compare(prev, next *Manifest) []Difference {
	var diffs []Difference
	for _, c := range prev.Classes {
		n, ok := next.Class(c.Name)
		if !ok {
			diffs = append(diffs, Difference{c.Name, "class removed"})
			continue
		}
		if n.Parent != c.Parent {
			diffs = append(diffs, Difference{c.Name, fmt.Sprintf("superclass changed from %q to %q", c.Parent, n.Parent)})
		}
		if n.Component != c.Component {
			diffs = append(diffs, Difference{c.Name, fmt.Sprintf("component changed from %q to %q", c.Component, n.Component)})
		}
	}

	for _, vt := range prev.VTables {
		n, ok := next.VTable(vt.Class)
		if !ok {
			if _, kept := next.Class(vt.Class); kept {
				diffs = append(diffs, Difference{vt.Class, "vtable removed"})
			}
			continue
		}
		if err := checkPrefix(vt.Slots, n.Slots); err != nil {
			diffs = append(diffs, Difference{vt.Class, err.Error()})
		}
	}

	slices.SortStableFunc(diffs, func(a, b Difference) int {
		return cmp.Compare(a.Class, b.Class)
	})
	return diffs
}
