package codegen

import (
	"testing"

	"chogo/ast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooleanSingletons(t *testing.T) {
	c := NewConstants()

	assert.Equal(t, NewLabel("const_0"), c.FalseConstant)
	assert.Equal(t, NewLabel("const_1"), c.TrueConstant)
	assert.Equal(t, c.FalseConstant, c.GetBoolConstant(false))
	assert.Equal(t, c.TrueConstant, c.GetBoolConstant(true))
}

func TestStringInterning(t *testing.T) {
	c := NewConstants()

	first := c.GetStrConstant("hi")
	again := c.GetStrConstant("hi")
	other := c.GetStrConstant("bye")

	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
	assert.Equal(t, []string{"hi", "bye"}, c.StrConstants())
}

func TestIntInterning(t *testing.T) {
	c := NewConstants()

	first := c.GetIntConstant(42)
	again := c.GetIntConstant(42)
	other := c.GetIntConstant(-7)

	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
	assert.Equal(t, []int{42, -7}, c.IntConstants())
}

func TestLabelsAreDistinctAcrossKinds(t *testing.T) {
	c := NewConstants()

	seen := map[Label]bool{c.FalseConstant: true, c.TrueConstant: true}
	for _, label := range []Label{
		c.GetStrConstant("hi"),
		c.GetIntConstant(0),
		c.GetStrConstant(""),
		c.GetIntConstant(1),
	} {
		assert.False(t, seen[label], "label %s minted twice", label)
		seen[label] = true
	}
}

func TestFromLiteral(t *testing.T) {
	c := NewConstants()

	intLabel := c.FromLiteral(ast.NewIntegerLiteral(3))
	require.NotNil(t, intLabel)
	assert.Equal(t, c.GetIntConstant(3), *intLabel)

	strLabel := c.FromLiteral(ast.NewStringLiteral("s"))
	require.NotNil(t, strLabel)
	assert.Equal(t, c.GetStrConstant("s"), *strLabel)

	boolLabel := c.FromLiteral(ast.NewBooleanLiteral(true))
	require.NotNil(t, boolLabel)
	assert.Equal(t, c.TrueConstant, *boolLabel)

	// None encodes as a null address
	assert.Nil(t, c.FromLiteral(ast.NewNoneLiteral()))
	assert.Nil(t, c.FromLiteral(nil))
}
