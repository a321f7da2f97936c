package rt

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindHierarchy(t *testing.T) {
	tests := []struct {
		kind   Kind
		parent Kind
		name   string
	}{
		{NullPointerException, RuntimeException, "java.lang.NullPointerException"},
		{IndexOutOfBoundsException, RuntimeException, "java.lang.IndexOutOfBoundsException"},
		{ArrayIndexOutOfBoundsException, IndexOutOfBoundsException, "java.lang.ArrayIndexOutOfBoundsException"},
		{NegativeArraySizeException, RuntimeException, "java.lang.NegativeArraySizeException"},
		{ArrayStoreException, RuntimeException, "java.lang.ArrayStoreException"},
		{ClassCastException, RuntimeException, "java.lang.ClassCastException"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.kind.String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.kind.String(), tt.name)
			}
			parent, ok := tt.kind.Parent()
			if !ok || parent != tt.parent {
				t.Errorf("Parent() = %v, %v, want %v", parent, ok, tt.parent)
			}
			if !tt.kind.IsA(RuntimeException) || !tt.kind.IsA(tt.kind) {
				t.Error("every kind is a RuntimeException and itself")
			}
		})
	}
	if _, ok := RuntimeException.Parent(); ok {
		t.Error("RuntimeException has no parent")
	}
	if IndexOutOfBoundsException.IsA(ArrayIndexOutOfBoundsException) {
		t.Error("the parent kind is not a child kind")
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Errorf("String() = %q, want Kind(99)", got)
	}
}

func TestErrorsIsFollowsHierarchy(t *testing.T) {
	err := Try(func() { Throw(ArrayIndexOutOfBoundsException) })

	for _, target := range []error{ErrArrayIndexOutOfBounds, ErrIndexOutOfBounds, ErrRuntime} {
		if !errors.Is(err, target) {
			t.Errorf("errors.Is(%v, %v) = false", err, target)
		}
	}
	if errors.Is(err, ErrNullPointer) {
		t.Error("an index error is not a null pointer error")
	}

	wrapped := fmt.Errorf("loading: %w", err)
	var ex *Exception
	if !errors.As(wrapped, &ex) || ex.Kind != ArrayIndexOutOfBoundsException {
		t.Errorf("errors.As = %v", ex)
	}
}

func TestTryReturnsNilWithoutRaise(t *testing.T) {
	ran := false
	if err := Try(func() { ran = true }); err != nil || !ran {
		t.Errorf("Try = %v, ran = %v", err, ran)
	}
}

func TestTryLetsOtherPanicsThrough(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
	}()
	Try(func() { panic("boom") })
	t.Fatal("Try swallowed a plain panic")
}

func TestRecoverInNamedResult(t *testing.T) {
	load := func(a ArrayRef[int32], i int32) (v int32, err error) {
		defer Recover(&err)
		return a.Must().Get(i), nil
	}
	arr := NewArray[int32](IntType(), 1)
	defer arr.Release()

	if _, err := load(arr, 0); err != nil {
		t.Errorf("load(0) = %v", err)
	}
	if _, err := load(arr, 1); !errors.Is(err, ErrArrayIndexOutOfBounds) {
		t.Errorf("load(1) error = %v", err)
	}
	if _, err := load(ArrayRef[int32]{}, 0); !errors.Is(err, ErrNullPointer) {
		t.Errorf("load(null) error = %v", err)
	}
}
