package rt

import (
	"slices"
	"strings"
	"testing"
)

func TestSuperclassOfRuntimeClass(t *testing.T) {
	leaf := newLeaf("refl")
	defer leaf.Release()

	k := GetClass(leaf.Object())
	if !Same(k, leafClass()) {
		t.Fatalf("GetClass = %v, want Leaf", k)
	}
	super := SendName(k.Object(), "getSuperclass").(ClassRef)
	name := SendName(super.Object(), "getName").(StringRef)
	defer name.Release()
	if got := name.Get().String(); got != "Mid" {
		t.Errorf("getSuperclass().getName() = %q, want Mid", got)
	}
}

func TestClassRelations(t *testing.T) {
	leaf := newLeaf("rel")
	defer leaf.Release()
	root, mid, lk := rootClass().Get(), midClass().Get(), leafClass().Get()

	if !root.IsInstance(leaf.Object()) {
		t.Error("Root.isInstance(leaf) = false, want true")
	}
	if got := SendName(rootClass().Object(), "isInstance", leaf.Object()); got != true {
		t.Errorf("isInstance slot = %v, want true", got)
	}
	if Equals(midClass().Object(), leafClass().Object()) {
		t.Error("distinct classes should not be equal")
	}
	if !lk.IsSubclassOf(root) || !lk.IsSubclassOf(lk) {
		t.Error("subclass relation should be reflexive and transitive")
	}
	if root.IsSubclassOf(mid) {
		t.Error("Root is not a subclass of Mid")
	}
	if !root.IsAssignableFrom(lk) || lk.IsAssignableFrom(root) || root.IsAssignableFrom(nil) {
		t.Error("IsAssignableFrom disagrees with IsSubclassOf")
	}
	if otherClass().Get().IsSubclassOf(root) {
		t.Error("Other is not related to Root")
	}
}

func TestRootHasNoSuperclass(t *testing.T) {
	if !ObjectClass().Get().GetSuperclass().IsNull() {
		t.Error("java.lang.Object should have no superclass")
	}
	if !ObjectClass().Get().IsSubclassOf(ObjectClass().Get()) {
		t.Error("the root should be a subclass of itself")
	}
}

func TestSuperclassWalkTerminates(t *testing.T) {
	var names []string
	for k := leafClass(); !k.IsNull(); k = k.Get().GetSuperclass() {
		names = append(names, k.Get().GetName())
		if len(names) > 10 {
			t.Fatalf("superclass walk did not terminate: %v", names)
		}
	}
	want := []string{"Leaf", "Mid", "Root", "java.lang.Object"}
	if !slices.Equal(names, want) {
		t.Errorf("chain = %v, want %v", names, want)
	}
}

func TestEveryClassDescendsFromObject(t *testing.T) {
	leafClass()
	otherClass()
	StringClass()
	for _, k := range Classes() {
		c := k.Get()
		if c.IsPrimitive() {
			continue
		}
		if !c.IsSubclassOf(ObjectClass().Get()) {
			t.Errorf("%s does not descend from java.lang.Object", c.GetName())
		}
	}
}

func TestPrimitiveClasses(t *testing.T) {
	tests := []struct {
		k    ClassRef
		name string
		desc string
	}{
		{BooleanType(), "boolean", "Z"},
		{ByteType(), "byte", "B"},
		{CharType(), "char", "C"},
		{ShortType(), "short", "S"},
		{IntType(), "int", "I"},
		{LongType(), "long", "J"},
		{FloatType(), "float", "F"},
		{DoubleType(), "double", "D"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := tt.k.Get()
			if k.GetName() != tt.name || k.String() != tt.name {
				t.Errorf("name = %q / %q, want %q", k.GetName(), k.String(), tt.name)
			}
			if !k.IsPrimitive() || k.IsArray() {
				t.Error("primitive flags wrong")
			}
			if !k.GetSuperclass().IsNull() {
				t.Error("primitives have no superclass")
			}
			if k.descriptor() != tt.desc {
				t.Errorf("descriptor = %q, want %q", k.descriptor(), tt.desc)
			}
			if k.IsSubclassOf(ObjectClass().Get()) {
				t.Error("primitives are not objects")
			}
		})
	}
	if !Same(IntType(), IntType()) {
		t.Error("primitive descriptors should be canonical")
	}
}

func TestClassesAreObjects(t *testing.T) {
	k := rootClass()
	if !Same(GetClass(k.Object()), ClassClass()) {
		t.Error("getClass of a descriptor should be java.lang.Class")
	}
	if got := k.String(); got != "class Root" {
		t.Errorf("toString = %q, want %q", got, "class Root")
	}
	if got := SendName(k.Object(), "isPrimitive"); got != false {
		t.Errorf("isPrimitive = %v, want false", got)
	}
	if got := SendName(k.Object(), "isArray"); got != false {
		t.Errorf("isArray = %v, want false", got)
	}
	if got := SendName(k.Object(), "getComponentType").(ClassRef); !got.IsNull() {
		t.Errorf("getComponentType = %v, want null", got)
	}
}

func TestForName(t *testing.T) {
	leafClass()
	k, ok := ForName("Leaf")
	if !ok || !Same(k, leafClass()) {
		t.Fatalf("ForName(Leaf) = %v, %v", k, ok)
	}
	if _, ok := ForName("NoSuchClass"); ok {
		t.Error("ForName should miss unknown names")
	}
	IntType()
	if k, ok := ForName("int"); !ok || !Same(k, IntType()) {
		t.Error("primitives should be registered")
	}
}

func TestDuplicateClassNameKeepsFirst(t *testing.T) {
	first := rootClass()
	dup := NewClass("Root", ObjectClass())
	if Same(first, dup) {
		t.Fatal("NewClass should build a new descriptor")
	}
	k, _ := ForName("Root")
	if !Same(k, first) {
		t.Error("registry should keep the first Root descriptor")
	}
}

func TestClassesSortedByName(t *testing.T) {
	leafClass()
	ClassClass()
	all := Classes()
	names := make([]string, len(all))
	for i, k := range all {
		names[i] = k.Get().GetName()
	}
	if !slices.IsSortedFunc(names, strings.Compare) {
		t.Errorf("Classes() not sorted: %v", names)
	}
	if !slices.Contains(names, "java.lang.Object") || !slices.Contains(names, "java.lang.Class") {
		t.Errorf("Classes() is missing the built-ins: %v", names)
	}
}

func TestBootstrapRegistersBuiltins(t *testing.T) {
	Bootstrap()
	for _, name := range []string{"java.lang.Object", "java.lang.Class", "java.lang.String", "int", "double"} {
		if _, ok := ForName(name); !ok {
			t.Errorf("ForName(%q) missed after Bootstrap", name)
		}
	}
}
