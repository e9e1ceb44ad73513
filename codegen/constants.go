package codegen

import (
	"fmt"

	"chogo/ast"
)

// Constants caches the program's literal constants and assigns each a unique
// label.  Int constants are deduplicated by value and string constants by
// contents; True and False are singletons at fixed labels.  Emission order is
// insertion order, so the generated assembly is deterministic.
type Constants struct {
	// FalseConstant and TrueConstant tag the boxed booleans.
	FalseConstant Label
	TrueConstant  Label

	intConstants map[int]Label
	strConstants map[string]Label
	intOrder     []int
	strOrder     []string

	// nextIndex numbers freshly interned constants; 0 and 1 belong to the
	// boolean singletons.
	nextIndex int
}

// NewConstants creates an empty constant pool.
func NewConstants() *Constants {
	return &Constants{
		FalseConstant: NewLabel("const_0"),
		TrueConstant:  NewLabel("const_1"),
		intConstants:  make(map[int]Label),
		strConstants:  make(map[string]Label),
		nextIndex:     2,
	}
}

// nextLabel mints the label for a freshly interned constant.
func (c *Constants) nextLabel() Label {
	label := NewLabel(fmt.Sprintf("const_%d", c.nextIndex))
	c.nextIndex++
	return label
}

// GetIntConstant returns the label of the boxed int constant for value,
// interning it if needed.
func (c *Constants) GetIntConstant(value int) Label {
	if label, ok := c.intConstants[value]; ok {
		return label
	}
	label := c.nextLabel()
	c.intConstants[value] = label
	c.intOrder = append(c.intOrder, value)
	return label
}

// GetStrConstant returns the label of the string constant for value,
// interning it if needed.
func (c *Constants) GetStrConstant(value string) Label {
	if label, ok := c.strConstants[value]; ok {
		return label
	}
	label := c.nextLabel()
	c.strConstants[value] = label
	c.strOrder = append(c.strOrder, value)
	return label
}

// GetBoolConstant returns the label of the boxed boolean singleton for value.
func (c *Constants) GetBoolConstant(value bool) Label {
	if value {
		return c.TrueConstant
	}
	return c.FalseConstant
}

// FromLiteral returns the address label for any literal value, interning it
// if needed.  A None literal (or nil) is a null address.
func (c *Constants) FromLiteral(literal ast.Literal) *Label {
	switch lit := literal.(type) {
	case *ast.IntegerLiteral:
		label := c.GetIntConstant(lit.Value)
		return &label
	case *ast.StringLiteral:
		label := c.GetStrConstant(lit.Value)
		return &label
	case *ast.BooleanLiteral:
		label := c.GetBoolConstant(lit.Value)
		return &label
	}
	return nil
}

// IntConstants returns the interned int values in insertion order.
func (c *Constants) IntConstants() []int {
	return c.intOrder
}

// StrConstants returns the interned string values in insertion order.
func (c *Constants) StrConstants() []string {
	return c.strOrder
}

// IntLabel returns the label previously interned for value.
func (c *Constants) IntLabel(value int) Label {
	return c.intConstants[value]
}

// StrLabel returns the label previously interned for value.
func (c *Constants) StrLabel(value string) Label {
	return c.strConstants[value]
}
