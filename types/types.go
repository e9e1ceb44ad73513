package types

import "strings"

// ValueType is the static type of a variable, attribute, parameter, or
// expression: either a class type (e.g. `int`) or a list type (e.g. `[int]`).
// The concrete types are comparable values, so two ValueTypes may be compared
// directly with == (including against the distinguished singletons below).
type ValueType interface {
	// ClassName returns the name of the class for class types and the empty
	// string for list types.
	ClassName() string

	// ElementType returns the element type for list types and nil otherwise.
	ElementType() ValueType

	String() string
}

// ClassValueType represents a reference to a named class type.
type ClassValueType struct {
	Name string
}

func (t ClassValueType) ClassName() string      { return t.Name }
func (t ClassValueType) ElementType() ValueType { return nil }
func (t ClassValueType) String() string         { return t.Name }

// ListValueType represents [T] for some element type T.
type ListValueType struct {
	Element ValueType
}

func (t ListValueType) ClassName() string      { return "" }
func (t ListValueType) ElementType() ValueType { return t.Element }
func (t ListValueType) String() string         { return "[" + t.Element.String() + "]" }

// FuncType is the type of a function or method: an ordered list of parameter
// types and a return type.  Functions are not first-class values, so FuncType
// is not a ValueType.
type FuncType struct {
	Parameters []ValueType
	ReturnType ValueType
}

// ParamType returns the type of the k-th parameter.
func (t *FuncType) ParamType(k int) ValueType {
	return t.Parameters[k]
}

func (t *FuncType) String() string {
	sb := strings.Builder{}
	sb.WriteByte('(')
	for i, p := range t.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") -> ")
	sb.WriteString(t.ReturnType.String())
	return sb.String()
}

// Distinguished types.  NoneType and EmptyType are the types of the `None`
// literal and the empty list display; they never name a runtime class.
var (
	ObjectType ValueType = ClassValueType{"object"}
	IntType    ValueType = ClassValueType{"int"}
	BoolType   ValueType = ClassValueType{"bool"}
	StrType    ValueType = ClassValueType{"str"}
	NoneType   ValueType = ClassValueType{"<None>"}
	EmptyType  ValueType = ClassValueType{"<Empty>"}
)

// IsSpecial reports whether t is one of the types int, bool, and str, whose
// values never include the value None.
func IsSpecial(t ValueType) bool {
	return t == IntType || t == BoolType || t == StrType
}

// IsList reports whether t is a list type.
func IsList(t ValueType) bool {
	_, ok := t.(ListValueType)
	return ok
}
