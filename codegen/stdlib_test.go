package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderRewriting(t *testing.T) {
	dir := t.TempDir()
	fragment := "  la a1, STRING[\"division by zero\"]      # Load error message\n" +
		"  j abort                                  # Abort\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "divzero.s"), []byte(fragment), 0644))

	cg := NewCodeGen(NewBackend(), UnimplementedEmitter{}, &Options{LibDir: dir})
	cg.EmitStdFuncNamed("divzero")
	out := cg.Backend().String()

	// the placeholder is gone, replaced by the pool label right-padded to the
	// placeholder's span so the comment column is preserved
	assert.NotContains(t, out, "STRING[")
	span := len(`STRING["division by zero"]`)
	assert.Contains(t, out, "la a1, "+pad("const_2", ' ', span)+" ")

	// interned exactly once
	assert.Equal(t, []string{"division by zero"}, cg.Constants().StrConstants())
	assert.Equal(t, NewLabel("const_2"), cg.Constants().StrLabel("division by zero"))
}

func TestPlaceholderRewritingIsIdempotentPerValue(t *testing.T) {
	dir := t.TempDir()
	fragment := "  la a1, STRING[\"oops\"]   # first\n  la a2, STRING[\"oops\"]   # second\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oops.s"), []byte(fragment), 0644))

	cg := NewCodeGen(NewBackend(), UnimplementedEmitter{}, &Options{LibDir: dir})
	cg.EmitStdFuncNamed("oops")

	// both placeholders resolve to the same label
	assert.Equal(t, 2, strings.Count(cg.Backend().String(), "const_2"))
	assert.Len(t, cg.Constants().StrConstants(), 1)
}

func TestMissingFragmentIsFatal(t *testing.T) {
	cg := NewCodeGen(NewBackend(), UnimplementedEmitter{}, nil)
	assert.Panics(t, func() { cg.EmitStdFuncNamed("no.such.routine") })
}

func TestCodeLabelNameMangling(t *testing.T) {
	// "$print" resolves to the print fragment: the label sigil is stripped
	cg := NewCodeGen(NewBackend(), UnimplementedEmitter{}, nil)
	cg.EmitStdFunc(NewLabel("$print"))

	out := cg.Backend().String()
	assert.Contains(t, out, "\n.globl $print\n$print:\n")
	assert.Contains(t, out, "@print_int")
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", pad("ab", ' ', 5))
	assert.Equal(t, "abcdef", pad("abcdef", ' ', 3))
}
