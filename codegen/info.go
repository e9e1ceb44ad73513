package codegen

import (
	"fmt"
	"strings"

	"chogo/analysis"
	"chogo/ast"
	"chogo/types"
)

// SymbolInfo is implemented by every descriptor that can be bound in a symbol
// table: classes, functions, and the variable descriptors.
type SymbolInfo interface {
	symbolInfo()
}

// VarInfo holds the fields shared by global variables, stack variables, and
// attributes: the name, the static type, and the initial literal value (nil
// for a default initialization).
type VarInfo struct {
	VarName      string
	VarType      types.ValueType
	InitialValue ast.Literal
}

func (v *VarInfo) symbolInfo() {}

// GlobalVarInfo describes a global variable.  The variable resides in static
// storage tagged with Label; the label is prefixed with "$" to prevent name
// clashes.
type GlobalVarInfo struct {
	VarInfo
	Label Label
}

// NewGlobalVarInfo creates a descriptor for a global variable named varName
// of type varType with initial value initialValue (nil if none).
func NewGlobalVarInfo(varName string, varType types.ValueType, initialValue ast.Literal) *GlobalVarInfo {
	return &GlobalVarInfo{
		VarInfo: VarInfo{VarName: varName, VarType: varType, InitialValue: initialValue},
		Label:   NewLabel("$" + varName),
	}
}

// StackVarInfo describes a parameter or local variable, allocated in the
// activation record of the function described by FuncInfo.
type StackVarInfo struct {
	VarInfo
	FuncInfo *FuncInfo
}

// NewStackVarInfo creates a descriptor for a parameter or local named varName
// of type varType with initial value initialValue (nil for parameters),
// defined immediately within the function described by funcInfo.
func NewStackVarInfo(varName string, varType types.ValueType, initialValue ast.Literal, funcInfo *FuncInfo) *StackVarInfo {
	return &StackVarInfo{
		VarInfo:  VarInfo{VarName: varName, VarType: varType, InitialValue: initialValue},
		FuncInfo: funcInfo,
	}
}

// AttrInfo describes an instance attribute of a class.
type AttrInfo struct {
	VarInfo
}

// NewAttrInfo creates a descriptor for an attribute named attrName of type
// attrType with initial value initialValue (nil for a default
// initialization).
func NewAttrInfo(attrName string, attrType types.ValueType, initialValue ast.Literal) *AttrInfo {
	return &AttrInfo{VarInfo: VarInfo{VarName: attrName, VarType: attrType, InitialValue: initialValue}}
}

// FuncInfo describes a function, method, or nested function.
//
// Every function has a unique fully-qualified name: a global function `f` is
// just `f`, a method `m` of class `C` is `C.m`, and a function `g` nested in
// a function with fully-qualified name `F` is `F.g`.
type FuncInfo struct {
	// FuncName is the fully-qualified name.
	FuncName string

	// Depth is the static nesting depth: 0 for global functions and methods,
	// D+1 for functions defined in the body of a function at depth D.
	Depth int

	// ReturnType is the function's declared return type.
	ReturnType types.ValueType

	// Params holds the parameter names in order of definition.
	Params []string

	// Locals holds the descriptors of explicitly defined local variables, in
	// order of definition, excluding parameters.
	Locals []*StackVarInfo

	// Statements is the function body.
	Statements []ast.Stmt

	// SymbolTable binds the identifiers seen in the function's body.
	SymbolTable *analysis.SymbolTable[SymbolInfo]

	// CodeLabel is the label of the generated code for the body, formed from
	// the fully-qualified name by prepending "$".
	CodeLabel Label

	// ParentFuncInfo is the descriptor of the enclosing function; nil except
	// for nested functions.
	ParentFuncInfo *FuncInfo

	// Emitter emits the function's body: the generic body emitter for
	// user-defined functions, and the runtime-library binder for predefined
	// ones.
	Emitter func(*FuncInfo)
}

func (f *FuncInfo) symbolInfo() {}

// NewFuncInfo creates a descriptor for a function or method with
// fully-qualified name funcName returning returnType at nesting depth depth.
// parentScope is the symbol table of the containing region; parentFuncInfo is
// the descriptor of the enclosing function (nil for global functions and
// methods).
func NewFuncInfo(funcName string, depth int, returnType types.ValueType,
	parentScope *analysis.SymbolTable[SymbolInfo], parentFuncInfo *FuncInfo,
	emitter func(*FuncInfo)) *FuncInfo {
	return &FuncInfo{
		FuncName:       funcName,
		Depth:          depth,
		ReturnType:     returnType,
		SymbolTable:    parentScope.Child(),
		CodeLabel:      NewLabel("$" + funcName),
		ParentFuncInfo: parentFuncInfo,
		Emitter:        emitter,
	}
}

// AddParam adds a parameter with descriptor paramInfo to this function.
func (f *FuncInfo) AddParam(paramInfo *StackVarInfo) {
	f.Params = append(f.Params, paramInfo.VarName)
	f.SymbolTable.Put(paramInfo.VarName, paramInfo)
}

// AddLocal adds a local variable with descriptor localInfo to this function.
func (f *FuncInfo) AddLocal(localInfo *StackVarInfo) {
	f.Locals = append(f.Locals, localInfo)
	f.SymbolTable.Put(localInfo.VarName, localInfo)
}

// AddBody appends stmts to the function's body.
func (f *FuncInfo) AddBody(stmts []ast.Stmt) {
	f.Statements = append(f.Statements, stmts...)
}

// VarIndex returns the index of parameter or local variable name in the
// function's activation record.
//
// The convention is that for a function with N params and K locals, the i-th
// param is at index i and the j-th local is at index N+j+2.  In all, the
// activation record stores N+K+2 words contiguously, where the N+1st is the
// saved frame pointer and the N+2nd the saved return address.  The result is
// an index, not a byte offset.
//
// Asking for a name that is neither a parameter nor a local of this function
// is an internal error; names bound in enclosing scopes must be resolved
// through the symbol table instead.
func (f *FuncInfo) VarIndex(name string) int {
	for i, param := range f.Params {
		if param == name {
			return i
		}
	}
	for j, local := range f.Locals {
		if local.VarName == name {
			return j + len(f.Params) + 2
		}
	}
	ice("%s is not a var defined in function %s", name, f.FuncName)
	return -1
}

// BaseName returns the function's defined name in the program: the last
// component of the dot-separated fully-qualified name.
func (f *FuncInfo) BaseName() string {
	if idx := strings.LastIndexByte(f.FuncName, '.'); idx >= 0 {
		return f.FuncName[idx+1:]
	}
	return f.FuncName
}

// EmitBody emits the function's body through its emitter.
func (f *FuncInfo) EmitBody() {
	f.Emitter(f)
}

// ClassInfo describes a class: its runtime type tag, its attribute and method
// tables with inherited entries merged in, and the labels of its prototype
// object and dispatch table.
//
// Type tags:
//
//	0: object
//	1: int
//	2: bool
//	3: str
//	-1: [T] for any T
//	>3: user-defined classes
type ClassInfo struct {
	ClassName string
	TypeTag   int

	// Attributes lists the instance attributes in object-layout order,
	// inherited attributes first.
	Attributes []*AttrInfo

	// Methods lists the methods in dispatch-table order, inherited methods
	// first with overrides substituted in place.
	Methods []*FuncInfo

	// PrototypeLabel tags the area holding the class's initial instance
	// values.
	PrototypeLabel Label

	// DispatchTableLabel tags the method-dispatching table; nil for the
	// synthetic list class, which has none.
	DispatchTableLabel *Label
}

func (c *ClassInfo) symbolInfo() {}

// NewClassInfo creates a descriptor for a class named className identified by
// runtime tag typeTag, inheriting the attribute and method tables of
// superClassInfo (nil only for object).
func NewClassInfo(className string, typeTag int, superClassInfo *ClassInfo) *ClassInfo {
	dispatchTableLabel := NewLabel(fmt.Sprintf("$%s$%s", className, "dispatchTable"))
	c := &ClassInfo{
		ClassName:          className,
		TypeTag:            typeTag,
		PrototypeLabel:     NewLabel(fmt.Sprintf("$%s$%s", className, "prototype")),
		DispatchTableLabel: &dispatchTableLabel,
	}
	if superClassInfo != nil {
		c.Attributes = append(c.Attributes, superClassInfo.Attributes...)
		c.Methods = append(c.Methods, superClassInfo.Methods...)
	}
	return c
}

// AddAttribute adds an attribute described by attrInfo.  Attributes cannot be
// overridden, so the new entry always appends.
func (c *ClassInfo) AddAttribute(attrInfo *AttrInfo) {
	c.Attributes = append(c.Attributes, attrInfo)
}

// AddMethod adds a method described by funcInfo, replacing any inherited
// method of the same base name in place so that slot indices are preserved
// across inheritance.
func (c *ClassInfo) AddMethod(funcInfo *FuncInfo) {
	if idx := c.MethodIndex(funcInfo.BaseName()); idx >= 0 {
		c.Methods[idx] = funcInfo
	} else {
		c.Methods = append(c.Methods, funcInfo)
	}
}

// AttributeIndex returns the slot index of the attribute named attrName in
// the object layout (excluding the header), taking inherited attributes into
// account, or -1 if the class has no such attribute.
func (c *ClassInfo) AttributeIndex(attrName string) int {
	for i, attr := range c.Attributes {
		if attr.VarName == attrName {
			return i
		}
	}
	return -1
}

// MethodIndex returns the slot index of the method named methodName in the
// dispatch table, taking inherited and overridden methods into account, or -1
// if the class has no such method.
func (c *ClassInfo) MethodIndex(methodName string) int {
	for i, method := range c.Methods {
		if method.BaseName() == methodName {
			return i
		}
	}
	return -1
}
