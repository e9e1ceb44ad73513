package codegen

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"chogo/ast"
	"chogo/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// Tree construction helpers

func classType(name string) *ast.ClassType {
	return &ast.ClassType{NodeBase: ast.NodeBase{Kind: "ClassType"}, ClassName: name}
}

func typedVar(name string, annotation ast.TypeAnnotation) *ast.TypedVar {
	return &ast.TypedVar{
		NodeBase:   ast.NodeBase{Kind: "TypedVar"},
		Identifier: ast.NewIdentifier(name),
		Type:       annotation,
	}
}

func varDef(name string, annotation ast.TypeAnnotation, value ast.Literal) *ast.VarDef {
	return &ast.VarDef{
		NodeBase: ast.NodeBase{Kind: "VarDef"},
		Var:      typedVar(name, annotation),
		Value:    value,
	}
}

func funcDef(name string, params []*ast.TypedVar, returnType ast.TypeAnnotation,
	decls ...ast.Declaration) *ast.FuncDef {
	return &ast.FuncDef{
		NodeBase:     ast.NodeBase{Kind: "FuncDef"},
		Name:         ast.NewIdentifier(name),
		Params:       params,
		ReturnType:   returnType,
		Declarations: decls,
	}
}

func classDef(name, superClass string, decls ...ast.Declaration) *ast.ClassDef {
	return &ast.ClassDef{
		NodeBase:     ast.NodeBase{Kind: "ClassDef"},
		Name:         ast.NewIdentifier(name),
		SuperClass:   ast.NewIdentifier(superClass),
		Declarations: decls,
	}
}

func program(decls ...ast.Declaration) *ast.Program {
	return &ast.Program{NodeBase: ast.NodeBase{Kind: "Program"}, Declarations: decls}
}

func generate(t *testing.T, prog *ast.Program) (string, *CodeGen) {
	t.Helper()
	cg := NewCodeGen(NewBackend(), UnimplementedEmitter{}, nil)
	asm, err := cg.Generate(prog)
	require.NoError(t, err)
	return asm, cg
}

// labelWords returns the operands of the run of .word directives immediately
// following the definition of label.
func labelWords(t *testing.T, asm, label string) []string {
	t.Helper()
	lines := strings.Split(asm, "\n")
	for i, line := range lines {
		if line != label+":" {
			continue
		}
		var words []string
		for _, next := range lines[i+1:] {
			fields := strings.Fields(next)
			if len(fields) < 2 || fields[0] != ".word" {
				break
			}
			words = append(words, fields[1])
		}
		return words
	}
	t.Fatalf("label %s is not defined in the output", label)
	return nil
}

func findFunc(t *testing.T, cg *CodeGen, name string) *FuncInfo {
	t.Helper()
	for _, funcInfo := range cg.Functions() {
		if funcInfo.FuncName == name {
			return funcInfo
		}
	}
	t.Fatalf("function %s was not analyzed", name)
	return nil
}

func findClass(t *testing.T, cg *CodeGen, name string) *ClassInfo {
	t.Helper()
	for _, classInfo := range cg.Classes() {
		if classInfo.ClassName == name {
			return classInfo
		}
	}
	t.Fatalf("class %s was not analyzed", name)
	return nil
}

// -----------------------------------------------------------------------------
// End-to-end scenarios

func TestEmptyProgram(t *testing.T) {
	asm, _ := generate(t, program())

	// prototypes for the builtins, with their fixed tags and header layout
	assert.Equal(t, []string{"0", "3", "$object$dispatchTable"},
		labelWords(t, asm, "$object$prototype"))
	assert.Equal(t, []string{"1", "4", "$int$dispatchTable", "0"},
		labelWords(t, asm, "$int$prototype"))
	assert.Equal(t, []string{"2", "4", "$bool$dispatchTable", "0"},
		labelWords(t, asm, "$bool$prototype"))
	assert.Equal(t, []string{"3", "5", "$str$dispatchTable", "0", "0"},
		labelWords(t, asm, "$str$prototype"))

	// the synthetic list class: tag -1 and no dispatch table
	assert.Equal(t, []string{"-1", "4", "0", "0"},
		labelWords(t, asm, "$.list$prototype"))
	assert.NotContains(t, asm, "$.list$dispatchTable")

	// dispatch tables for the builtins
	assert.Equal(t, []string{"$object.__init__"}, labelWords(t, asm, "$object$dispatchTable"))
	assert.Equal(t, []string{"$object.__init__"}, labelWords(t, asm, "$str$dispatchTable"))

	// boolean singletons: boxed bools with payloads 0 and 1
	assert.Equal(t, []string{"2", "4", "$bool$dispatchTable", "0"},
		labelWords(t, asm, "const_0"))
	assert.Equal(t, []string{"2", "4", "$bool$dispatchTable", "1"},
		labelWords(t, asm, "const_1"))

	// the entry point and the standard runtime routines
	assert.Contains(t, asm, "\n.globl main\nmain:\n")
	for _, routine := range []string{"alloc", "alloc2", "abort", "heap.init"} {
		assert.Contains(t, asm, "\n.globl "+routine+"\n"+routine+":\n")
	}

	// no user globals
	assert.NotContains(t, asm, "Initial value of global var")
}

func TestHeapPreamble(t *testing.T) {
	asm, _ := generate(t, program())

	// 32 MB default heap, in 4 KB units
	assert.Contains(t, asm, "lui a0, 8192")
	assert.Contains(t, asm, "jal heap.init")
	assert.Contains(t, asm, "mv gp, a0")
	assert.Contains(t, asm, "mv ra, zero")
	assert.Contains(t, asm, "mv fp, zero")
}

func TestConfiguredHeapSize(t *testing.T) {
	cg := NewCodeGen(NewBackend(), UnimplementedEmitter{},
		&Options{HeapSizeBytes: 1024 * 1024 * 64})
	asm, err := cg.Generate(program())
	require.NoError(t, err)

	assert.Contains(t, asm, "lui a0, 16384")
}

func TestSingleGlobalInt(t *testing.T) {
	asm, _ := generate(t, program(
		varDef("x", classType("int"), ast.NewIntegerLiteral(5)),
	))

	// the value is inlined into the global's word, not boxed
	assert.Equal(t, []string{"5"}, labelWords(t, asm, "$x"))
	assert.NotContains(t, asm, "Constant value of attribute: __int__")
}

func TestGlobalEncodings(t *testing.T) {
	asm, cg := generate(t, program(
		varDef("b", classType("bool"), ast.NewBooleanLiteral(true)),
		varDef("s", classType("str"), ast.NewStringLiteral("hi")),
		varDef("o", classType("object"), ast.NewNoneLiteral()),
	))

	assert.Equal(t, []string{"1"}, labelWords(t, asm, "$b"))
	strLabel := cg.Constants().StrLabel("hi")
	assert.Equal(t, []string{strLabel.Name}, labelWords(t, asm, "$s"))
	assert.Equal(t, []string{"0"}, labelWords(t, asm, "$o"))
}

func TestClassWithOverride(t *testing.T) {
	asm, cg := generate(t, program(
		classDef("A", "object",
			funcDef("f", []*ast.TypedVar{typedVar("self", classType("A"))}, classType("<None>")),
		),
		classDef("B", "A",
			funcDef("f", []*ast.TypedVar{typedVar("self", classType("B"))}, classType("<None>")),
		),
	))

	assert.Equal(t, []string{"$object.__init__", "$A.f"},
		labelWords(t, asm, "$A$dispatchTable"))
	assert.Equal(t, []string{"$object.__init__", "$B.f"},
		labelWords(t, asm, "$B$dispatchTable"))

	a := findClass(t, cg, "A")
	b := findClass(t, cg, "B")
	assert.Equal(t, a.MethodIndex("f"), b.MethodIndex("f"))

	// user classes take the next tags after the builtins
	assert.Equal(t, 4, a.TypeTag)
	assert.Equal(t, 5, b.TypeTag)
}

func TestInheritedAttributesKeepSlots(t *testing.T) {
	_, cg := generate(t, program(
		classDef("P", "object",
			varDef("x", classType("int"), ast.NewIntegerLiteral(1)),
		),
		classDef("S", "P",
			varDef("y", classType("int"), ast.NewIntegerLiteral(2)),
		),
	))

	p := findClass(t, cg, "P")
	s := findClass(t, cg, "S")
	assert.Equal(t, p.AttributeIndex("x"), s.AttributeIndex("x"))
	assert.Equal(t, 1, s.AttributeIndex("y"))

	// byte offsets follow the header
	assert.Equal(t, 12, cg.AttrOffset(p, "x"))
	assert.Equal(t, 16, cg.AttrOffset(s, "y"))
	assert.Equal(t, 0, cg.MethodOffset(s, "__init__"))
}

func TestStringInterningAcrossProgram(t *testing.T) {
	asm, cg := generate(t, program(
		varDef("a", classType("str"), ast.NewStringLiteral("hi")),
		varDef("b", classType("str"), ast.NewStringLiteral("hi")),
		varDef("c", classType("str"), ast.NewStringLiteral("hi")),
	))

	label := cg.Constants().StrLabel("hi")
	assert.Equal(t, []string{label.Name}, labelWords(t, asm, "$a"))
	assert.Equal(t, []string{label.Name}, labelWords(t, asm, "$b"))
	assert.Equal(t, []string{label.Name}, labelWords(t, asm, "$c"))

	// exactly one pooled entry: tag 3, size 3+1+1 words, length word 2
	assert.Equal(t, []string{"3", "5", "$str$dispatchTable", "2"},
		labelWords(t, asm, label.Name))
	assert.Equal(t, 1, strings.Count(asm, ".string \"hi\""))

	// interned exactly once, ahead of the runtime library's own strings
	pooled := 0
	for _, value := range cg.Constants().StrConstants() {
		if value == "hi" {
			pooled++
		}
	}
	assert.Equal(t, 1, pooled)
	assert.Equal(t, "hi", cg.Constants().StrConstants()[0])
}

func TestNestedFunctionCapture(t *testing.T) {
	_, cg := generate(t, program(
		varDef("x", classType("int"), ast.NewIntegerLiteral(99)),
		funcDef("outer", nil, classType("<None>"),
			varDef("x", classType("int"), ast.NewIntegerLiteral(0)),
			funcDef("inner", nil, classType("<None>"),
				&ast.NonLocalDecl{NodeBase: ast.NodeBase{Kind: "NonLocalDecl"}, Variable: ast.NewIdentifier("x")},
			),
		),
	))

	outer := findFunc(t, cg, "outer")
	inner := findFunc(t, cg, "outer.inner")

	assert.Equal(t, 1, inner.Depth)
	assert.Same(t, outer, inner.ParentFuncInfo)

	// inner's activation record does not know x
	assert.Panics(t, func() { inner.VarIndex("x") })

	// but its symbol table resolves x to outer's local, not the global
	symbol, ok := inner.SymbolTable.Get("x")
	require.True(t, ok)
	stackVar, ok := symbol.(*StackVarInfo)
	require.True(t, ok, "x should resolve to a stack variable, got %T", symbol)
	assert.Same(t, outer, stackVar.FuncInfo)
	assert.Equal(t, 2, outer.VarIndex("x"))
}

func TestNestedFunctionSeesLaterLocals(t *testing.T) {
	// the nested function is declared before the local it captures
	_, cg := generate(t, program(
		funcDef("outer", nil, classType("<None>"),
			funcDef("inner", nil, classType("<None>"),
				&ast.NonLocalDecl{NodeBase: ast.NodeBase{Kind: "NonLocalDecl"}, Variable: ast.NewIdentifier("y")},
			),
			varDef("y", classType("int"), ast.NewIntegerLiteral(0)),
		),
	))

	inner := findFunc(t, cg, "outer.inner")
	symbol, ok := inner.SymbolTable.Get("y")
	require.True(t, ok)
	assert.IsType(t, &StackVarInfo{}, symbol)
}

func TestGlobalDeclarationBindsGlobalVar(t *testing.T) {
	_, cg := generate(t, program(
		varDef("x", classType("int"), ast.NewIntegerLiteral(1)),
		funcDef("f", nil, classType("<None>"),
			&ast.GlobalDecl{NodeBase: ast.NodeBase{Kind: "GlobalDecl"}, Variable: ast.NewIdentifier("x")},
		),
	))

	f := findFunc(t, cg, "f")
	assert.True(t, f.SymbolTable.Declares("x"))
	symbol, _ := f.SymbolTable.Get("x")
	assert.IsType(t, &GlobalVarInfo{}, symbol)

	// global vars are not frame slots
	assert.Panics(t, func() { f.VarIndex("x") })
}

func TestMethodQualifiedNames(t *testing.T) {
	_, cg := generate(t, program(
		classDef("A", "object",
			funcDef("f", []*ast.TypedVar{typedVar("self", classType("A"))}, classType("<None>")),
		),
	))

	method := findFunc(t, cg, "A.f")
	assert.Equal(t, NewLabel("$A.f"), method.CodeLabel)
	assert.Equal(t, 0, method.Depth)
	assert.Equal(t, 0, method.VarIndex("self"))
	assert.Equal(t, types.NoneType, method.ReturnType)
}

// -----------------------------------------------------------------------------
// Universal invariants

func TestDeterministicOutput(t *testing.T) {
	build := func() *ast.Program {
		return program(
			varDef("s", classType("str"), ast.NewStringLiteral("hello")),
			varDef("n", classType("int"), ast.NewIntegerLiteral(12)),
			classDef("A", "object",
				varDef("x", classType("int"), ast.NewIntegerLiteral(7)),
				funcDef("f", []*ast.TypedVar{typedVar("self", classType("A"))}, classType("<None>")),
			),
		)
	}

	first, _ := generate(t, build())
	second, _ := generate(t, build())
	assert.Equal(t, first, second)
}

var labelDefPattern = regexp.MustCompile(`^([^\s#:]+):`)

func TestLabelUniqueness(t *testing.T) {
	asm, _ := generate(t, program(
		varDef("x", classType("int"), ast.NewIntegerLiteral(5)),
		classDef("A", "object",
			funcDef("f", []*ast.TypedVar{typedVar("self", classType("A"))}, classType("<None>")),
		),
		funcDef("g", nil, classType("<None>")),
	))

	seen := map[string]int{}
	for _, line := range strings.Split(asm, "\n") {
		if m := labelDefPattern.FindStringSubmatch(line); m != nil {
			seen[m[1]]++
		}
	}
	for label, count := range seen {
		assert.Equal(t, 1, count, "label %s defined %d times", label, count)
	}
}

func TestHeaderInvariants(t *testing.T) {
	asm, cg := generate(t, program(
		classDef("A", "object",
			varDef("x", classType("int"), ast.NewIntegerLiteral(0)),
			varDef("y", classType("bool"), ast.NewBooleanLiteral(false)),
		),
	))

	for _, classInfo := range cg.Classes() {
		words := labelWords(t, asm, classInfo.PrototypeLabel.Name)
		require.GreaterOrEqual(t, len(words), 3, "prototype of %s is too short", classInfo.ClassName)

		tag := words[0]
		size := words[1]
		dispatch := words[2]

		assert.Equal(t, tag, itoa(classInfo.TypeTag))
		assert.Equal(t, size, itoa(len(classInfo.Attributes)+HeaderSize))
		if classInfo.DispatchTableLabel == nil {
			assert.Equal(t, "0", dispatch)
		} else {
			assert.Equal(t, classInfo.DispatchTableLabel.Name, dispatch)
		}
	}
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
