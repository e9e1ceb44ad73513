package codegen

import (
	"fmt"
	"math/bits"

	"chogo/analysis"
	"chogo/ast"
	"chogo/types"
)

// HeaderSize is the object header size in words: type tag, size, and
// dispatch-table pointer.
const HeaderSize = 3

// Runtime error codes baked into generated code.
const (
	ErrorArg     = 1
	ErrorDivZero = 2
	ErrorOOB     = 3
	ErrorNone    = 4
	ErrorOOM     = 5
	ErrorNYI     = 6
)

// Ecall numbers for the intrinsic routines of the execution environment.
const (
	exitEcall           = 10
	exit2Ecall          = 17
	printStringEcall    = 4
	printCharEcall      = 11
	printIntEcall       = 1
	readStringEcall     = 8
	fillLineBufferEcall = 18
	sbrkEcall           = 9
)

// defaultHeapSizeBytes is the heap size used when none is configured.
const defaultHeapSizeBytes = 1024 * 1024 * 32

// Options configures a CodeGen beyond its collaborators.
type Options struct {
	// HeapSizeBytes is the runtime heap size; 0 selects the 32 MB default.
	HeapSizeBytes int

	// LibDir overrides the embedded runtime library with on-disk fragments.
	LibDir string
}

// CodeGen drives code generation for a program.
//
// It analyzes all declarations in a program and creates descriptors for
// classes, functions, methods, variables (global and local), and attributes,
// building symbol tables for the globals and for each function.  It then
// emits the global variables, object prototypes, dispatch tables, and
// int/str/bool constants, and orchestrates emission of the text section.
// Code for the bodies of user-defined functions and for top-level statements
// is produced by the CodeEmitter supplied at construction.
type CodeGen struct {
	backend *Backend
	emitter CodeEmitter

	// wordSize is the word size of the backend, kept for convenience.
	wordSize int

	heapSizeBytes int
	libDir        string

	// nextTypeTag numbers class type tags.
	nextTypeTag int

	// nextLabelSuffix numbers generated local labels.
	nextLabelSuffix int

	// Predefined classes.  The list "class" is synthetic; it exists only to
	// emit a prototype object for empty lists.
	objectClass, intClass, boolClass, strClass, listClass *ClassInfo

	// Predefined functions.
	printFunc, lenFunc, inputFunc *FuncInfo

	// globalVars lists the global variables whose initial values are emitted
	// in the data section.
	globalVars []*GlobalVarInfo

	// classes lists the program's classes, builtins first, whose prototypes
	// and dispatch tables are emitted in the data section.
	classes []*ClassInfo

	// functions lists every function, method, and nested function whose body
	// is emitted in the text section.
	functions []*FuncInfo

	// globalSymbols maps global names to the bound global variables, global
	// functions, or classes.
	globalSymbols *analysis.SymbolTable[SymbolInfo]

	constants *Constants

	// Labels of the built-in routines.
	allocLabel       Label
	allocResizeLabel Label
	abortLabel       Label
	heapInitLabel    Label
}

// NewCodeGen creates a code generator that emits through backend and
// delegates body emission to emitter.  opts may be nil for defaults.  The
// constructor registers descriptors for the predefined classes, functions,
// and methods, and defines the symbolic assembler constants the runtime
// library depends on.
func NewCodeGen(backend *Backend, emitter CodeEmitter, opts *Options) *CodeGen {
	cg := &CodeGen{
		backend:          backend,
		emitter:          emitter,
		wordSize:         backend.WordSize(),
		heapSizeBytes:    defaultHeapSizeBytes,
		globalSymbols:    analysis.NewSymbolTable[SymbolInfo](),
		constants:        NewConstants(),
		allocLabel:       NewLabel("alloc"),
		allocResizeLabel: NewLabel("alloc2"),
		abortLabel:       NewLabel("abort"),
		heapInitLabel:    NewLabel("heap.init"),
	}
	if opts != nil {
		if opts.HeapSizeBytes > 0 {
			cg.heapSizeBytes = opts.HeapSizeBytes
		}
		cg.libDir = opts.LibDir
	}

	cg.initClasses()
	cg.initFunctions()
	cg.initAsmConstants()
	return cg
}

// Backend returns the assembly sink.
func (cg *CodeGen) Backend() *Backend {
	return cg.backend
}

// Constants returns the constant pool.
func (cg *CodeGen) Constants() *Constants {
	return cg.constants
}

// GlobalSymbols returns the global symbol table.
func (cg *CodeGen) GlobalSymbols() *analysis.SymbolTable[SymbolInfo] {
	return cg.globalSymbols
}

// Classes returns the program's classes in registration order, builtins
// first.
func (cg *CodeGen) Classes() []*ClassInfo {
	return cg.classes
}

// Functions returns every function, method, and nested function in
// registration order.
func (cg *CodeGen) Functions() []*FuncInfo {
	return cg.functions
}

// GlobalVars returns the program's global variables in declaration order.
func (cg *CodeGen) GlobalVars() []*GlobalVarInfo {
	return cg.globalVars
}

// WordSize returns the backend word size in bytes.
func (cg *CodeGen) WordSize() int {
	return cg.wordSize
}

// AllocLabel returns the label of the built-in routine alloc.
func (cg *CodeGen) AllocLabel() Label { return cg.allocLabel }

// AllocResizeLabel returns the label of the built-in routine alloc2.
func (cg *CodeGen) AllocResizeLabel() Label { return cg.allocResizeLabel }

// AbortLabel returns the label of the built-in routine abort.
func (cg *CodeGen) AbortLabel() Label { return cg.abortLabel }

// HeapInitLabel returns the label of the built-in routine heap.init.
func (cg *CodeGen) HeapInitLabel() Label { return cg.heapInitLabel }

// nextTag returns a fresh class type tag.
func (cg *CodeGen) nextTag() int {
	tag := cg.nextTypeTag
	cg.nextTypeTag++
	return tag
}

// GenerateLocalLabel returns a fresh label, unique among labels produced by
// this method, for local jump targets in function bodies.  All such labels
// have the prefix `label_`.
func (cg *CodeGen) GenerateLocalLabel() Label {
	label := NewLabel(fmt.Sprintf("label_%d", cg.nextLabelSuffix))
	cg.nextLabelSuffix++
	return label
}

// Generate produces assembly for program.
//
// It analyzes the program's declarations, then emits the data section
// (prototypes, dispatch tables, globals), the text section (entry preamble,
// top-level code, function bodies, standard runtime routines, custom code),
// and finally the constant pool in a trailing data section.  The constant
// pool goes last because constants are still being discovered while bodies
// and runtime routines are emitted.
//
// On an internal error the partially-built buffer is discarded and the error
// is returned.
func (cg *CodeGen) Generate(program *ast.Program) (asm string, err error) {
	defer func() {
		if r := recover(); r != nil {
			genErr, ok := r.(*GeneratorError)
			if !ok {
				panic(r)
			}
			asm = ""
			err = genErr
		}
	}()

	cg.analyzeProgram(program)

	cg.backend.StartData()

	for _, classInfo := range cg.classes {
		cg.emitPrototype(classInfo)
	}
	for _, classInfo := range cg.classes {
		cg.emitDispatchTable(classInfo)
	}
	for _, global := range cg.globalVars {
		cg.backend.EmitGlobalLabel(global.Label)
		cg.emitConstantWord(global.InitialValue, global.VarType,
			fmt.Sprintf("Initial value of global var: %s", global.VarName))
	}

	cg.backend.StartCode()

	cg.backend.EmitGlobalLabel(NewLabel("main"))
	cg.backend.EmitLUI(A0, cg.heapSizeBytes>>12, "Initialize heap size (in multiples of 4KB)")
	cg.backend.EmitADD(S11, S11, A0, "Save heap size")
	cg.backend.EmitJAL(cg.heapInitLabel, "Call heap.init routine")
	cg.backend.EmitMV(GP, A0, "Initialize heap pointer")
	cg.backend.EmitMV(S10, GP, "Set beginning of heap")
	cg.backend.EmitADD(S11, S10, S11, "Set end of heap (= start of heap + heap size)")
	cg.backend.EmitMV(RA, ZERO, "No normal return from main program.")
	cg.backend.EmitMV(FP, ZERO, "No preceding frame.")

	cg.emitter.EmitTopLevel(cg, program.Statements)

	for _, funcInfo := range cg.functions {
		funcInfo.EmitBody()
	}

	cg.EmitStdFuncNamed("alloc")
	cg.EmitStdFuncNamed("alloc2")
	cg.EmitStdFuncNamed("abort")
	cg.EmitStdFuncNamed("heap.init")

	cg.emitter.EmitCustomCode(cg)

	cg.backend.StartData()
	cg.emitConstants()

	return cg.backend.String(), nil
}

// initClasses creates descriptors and symbols for the builtin classes and
// methods.
func (cg *CodeGen) initClasses() {
	objectInit := NewFuncInfo("object.__init__", 0, types.NoneType,
		cg.globalSymbols, nil, cg.emitStdFuncBody)
	objectInit.AddParam(NewStackVarInfo("self", types.ObjectType, nil, objectInit))
	cg.functions = append(cg.functions, objectInit)

	cg.objectClass = NewClassInfo("object", cg.nextTag(), nil)
	cg.objectClass.AddMethod(objectInit)
	cg.classes = append(cg.classes, cg.objectClass)
	cg.globalSymbols.Put(cg.objectClass.ClassName, cg.objectClass)

	cg.intClass = NewClassInfo("int", cg.nextTag(), cg.objectClass)
	cg.intClass.AddAttribute(NewAttrInfo("__int__", nil, nil))
	cg.classes = append(cg.classes, cg.intClass)
	cg.globalSymbols.Put(cg.intClass.ClassName, cg.intClass)

	cg.boolClass = NewClassInfo("bool", cg.nextTag(), cg.objectClass)
	cg.boolClass.AddAttribute(NewAttrInfo("__bool__", nil, nil))
	cg.classes = append(cg.classes, cg.boolClass)
	cg.globalSymbols.Put(cg.boolClass.ClassName, cg.boolClass)

	cg.strClass = NewClassInfo("str", cg.nextTag(), cg.objectClass)
	cg.strClass.AddAttribute(NewAttrInfo("__len__", types.IntType, ast.NewIntegerLiteral(0)))
	cg.strClass.AddAttribute(NewAttrInfo("__str__", nil, nil))
	cg.classes = append(cg.classes, cg.strClass)
	cg.globalSymbols.Put(cg.strClass.ClassName, cg.strClass)

	cg.listClass = NewClassInfo(".list", -1, cg.objectClass)
	cg.listClass.AddAttribute(NewAttrInfo("__len__", types.IntType, ast.NewIntegerLiteral(0)))
	cg.classes = append(cg.classes, cg.listClass)
	cg.listClass.DispatchTableLabel = nil
}

// initFunctions creates descriptors and symbols for the builtin functions.
func (cg *CodeGen) initFunctions() {
	cg.printFunc = NewFuncInfo("print", 0, types.NoneType,
		cg.globalSymbols, nil, cg.emitStdFuncBody)
	cg.printFunc.AddParam(NewStackVarInfo("arg", types.ObjectType, nil, cg.printFunc))
	cg.functions = append(cg.functions, cg.printFunc)
	cg.globalSymbols.Put(cg.printFunc.BaseName(), cg.printFunc)

	cg.lenFunc = NewFuncInfo("len", 0, types.IntType,
		cg.globalSymbols, nil, cg.emitStdFuncBody)
	cg.lenFunc.AddParam(NewStackVarInfo("arg", types.ObjectType, nil, cg.lenFunc))
	cg.functions = append(cg.functions, cg.lenFunc)
	cg.globalSymbols.Put(cg.lenFunc.BaseName(), cg.lenFunc)

	cg.inputFunc = NewFuncInfo("input", 0, types.StrType,
		cg.globalSymbols, nil, cg.emitStdFuncBody)
	cg.functions = append(cg.functions, cg.inputFunc)
	cg.globalSymbols.Put(cg.inputFunc.BaseName(), cg.inputFunc)
}

// emitStdFuncBody is the emitter used for predefined functions: the body
// comes from the runtime library under the function's code label.
func (cg *CodeGen) emitStdFuncBody(funcInfo *FuncInfo) {
	cg.EmitStdFunc(funcInfo.CodeLabel)
}

// emitUserFuncBody is the emitter used for user-defined functions: it
// delegates to the pluggable code emitter.
func (cg *CodeGen) emitUserFuncBody(funcInfo *FuncInfo) {
	cg.emitter.EmitFunctionBody(cg, funcInfo)
}

/* Symbolic assembler constants defined here:
 * ecalls:
 *   @sbrk
 *   @fill_line_buffer
 *   @read_string
 *   @print_string
 *   @print_char
 *   @print_int
 *   @exit2
 * Exit codes:
 *   @error_div_zero: Division by 0.
 *   @error_arg: Bad argument.
 *   @error_oob: Out of bounds.
 *   @error_none: Attempt to access attribute of None.
 *   @error_oom: Out of memory.
 *   @error_nyi: Unimplemented operation.
 * Data-structure byte offsets:
 *   @.__obj_size__: Offset of size of object.
 *   @.__len__: Offset of length in chars or words.
 *   @.__str__: Offset of string data.
 *   @.__elts__: Offset of first list item.
 *   @.__int__: Offset of integer value.
 *   @.__bool__: Offset of boolean (1/0) value.
 */

// initAsmConstants defines the @-constants used in assembly code.
func (cg *CodeGen) initAsmConstants() {
	cg.backend.DefineIntSym("sbrk", sbrkEcall)
	cg.backend.DefineIntSym("print_string", printStringEcall)
	cg.backend.DefineIntSym("print_char", printCharEcall)
	cg.backend.DefineIntSym("print_int", printIntEcall)
	cg.backend.DefineIntSym("exit2", exit2Ecall)
	cg.backend.DefineIntSym("read_string", readStringEcall)
	cg.backend.DefineIntSym("fill_line_buffer", fillLineBufferEcall)

	cg.backend.DefineIntSym(".__obj_size__", 4)
	cg.backend.DefineIntSym(".__len__", 12)
	cg.backend.DefineIntSym(".__int__", 12)
	cg.backend.DefineIntSym(".__bool__", 12)
	cg.backend.DefineIntSym(".__str__", 16)
	cg.backend.DefineIntSym(".__elts__", 16)

	cg.backend.DefineIntSym("error_div_zero", ErrorDivZero)
	cg.backend.DefineIntSym("error_arg", ErrorArg)
	cg.backend.DefineIntSym("error_oob", ErrorOOB)
	cg.backend.DefineIntSym("error_none", ErrorNone)
	cg.backend.DefineIntSym("error_oom", ErrorOOM)
	cg.backend.DefineIntSym("error_nyi", ErrorNYI)
}

// -----------------------------------------------------------------------------
// Analysis of the tree into descriptors

// analyzeProgram creates descriptors for all symbols and populates the global
// symbol table.
//
// It proceeds in two phases: first all global variable declarations, so that
// globals are bound before any `global x` declaration is encountered, then
// classes and global functions.
func (cg *CodeGen) analyzeProgram(program *ast.Program) {
	for _, decl := range program.Declarations {
		if varDef, ok := decl.(*ast.VarDef); ok {
			varType := ast.ToValueType(varDef.Var.Type)
			globalVar := NewGlobalVarInfo(varDef.Var.Identifier.Name, varType, varDef.Value)

			cg.globalVars = append(cg.globalVars, globalVar)
			cg.globalSymbols.Put(globalVar.VarName, globalVar)
		}
	}

	for _, decl := range program.Declarations {
		switch d := decl.(type) {
		case *ast.ClassDef:
			classInfo := cg.analyzeClass(d)

			cg.classes = append(cg.classes, classInfo)
			cg.globalSymbols.Put(classInfo.ClassName, classInfo)
		case *ast.FuncDef:
			funcInfo := cg.analyzeFunction("", d, 0, cg.globalSymbols, nil)

			cg.functions = append(cg.functions, funcInfo)
			cg.globalSymbols.Put(funcInfo.BaseName(), funcInfo)
		}
	}
}

// analyzeClass creates the descriptor for a class definition along with
// descriptors for its attributes and methods.  Methods are analyzed with the
// function-analysis routine, qualified by the class name.
func (cg *CodeGen) analyzeClass(classDef *ast.ClassDef) *ClassInfo {
	className := classDef.Name.Name
	superSymbol, _ := cg.globalSymbols.Get(classDef.SuperClass.Name)
	superClassInfo, ok := superSymbol.(*ClassInfo)
	if !ok {
		ice("super-class %s of %s is not a defined class", classDef.SuperClass.Name, className)
	}
	classInfo := NewClassInfo(className, cg.nextTag(), superClassInfo)

	for _, decl := range classDef.Declarations {
		switch d := decl.(type) {
		case *ast.VarDef:
			attrType := ast.ToValueType(d.Var.Type)
			classInfo.AddAttribute(NewAttrInfo(d.Var.Identifier.Name, attrType, d.Value))
		case *ast.FuncDef:
			methodInfo := cg.analyzeFunction(className, d, 0, cg.globalSymbols, nil)

			cg.functions = append(cg.functions, methodInfo)

			classInfo.AddMethod(methodInfo)
		}
	}

	return classInfo
}

// analyzeFunction creates the descriptor for a function or method definition
// at nesting depth depth, analyzing nested functions recursively.  container
// is the fully-qualified name of the containing function or class ("" for
// global functions); parentScope holds symbols inherited from outer regions;
// parentFuncInfo is the enclosing function's descriptor for nested
// definitions and nil otherwise.
//
// Analysis proceeds in four steps: create the descriptor, register the
// parameters, run the local-declaration pass, and only then analyze nested
// function definitions.  The two-pass treatment of the body guarantees that
// nested functions see every local of the enclosing scope regardless of
// textual order.  Finally, the body statements are attached.
func (cg *CodeGen) analyzeFunction(container string, funcDef *ast.FuncDef,
	depth int, parentScope *analysis.SymbolTable[SymbolInfo],
	parentFuncInfo *FuncInfo) *FuncInfo {

	funcBaseName := funcDef.Name.Name
	funcQualifiedName := funcBaseName
	if container != "" {
		funcQualifiedName = fmt.Sprintf("%s.%s", container, funcBaseName)
	}

	funcInfo := NewFuncInfo(funcQualifiedName, depth,
		ast.ToValueType(funcDef.ReturnType),
		parentScope, parentFuncInfo, cg.emitUserFuncBody)

	for _, param := range funcDef.Params {
		paramType := ast.ToValueType(param.Type)
		funcInfo.AddParam(NewStackVarInfo(param.Identifier.Name, paramType, nil, funcInfo))
	}

	// Local-declaration pass.
	for _, decl := range funcDef.Declarations {
		switch d := decl.(type) {
		case *ast.VarDef:
			localType := ast.ToValueType(d.Var.Type)
			funcInfo.AddLocal(NewStackVarInfo(d.Var.Identifier.Name, localType, d.Value, funcInfo))
		case *ast.GlobalDecl:
			symbol, _ := cg.globalSymbols.Get(d.Variable.Name)
			globalVar, ok := symbol.(*GlobalVarInfo)
			if !ok {
				ice("global declaration of %s in %s does not name a global var",
					d.Variable.Name, funcQualifiedName)
			}
			funcInfo.SymbolTable.Put(globalVar.VarName, globalVar)
		case *ast.NonLocalDecl:
			// A nonlocal declaration installs nothing; the name must already
			// resolve to a stack variable through the parent chain.
			symbol, _ := funcInfo.SymbolTable.Get(d.Variable.Name)
			if _, ok := symbol.(*StackVarInfo); !ok {
				ice("nonlocal declaration of %s in %s does not name an enclosing var",
					d.Variable.Name, funcQualifiedName)
			}
		}
	}

	// Nested-function pass, after all locals are in place.
	for _, decl := range funcDef.Declarations {
		if nestedFuncDef, ok := decl.(*ast.FuncDef); ok {
			nestedFuncInfo := cg.analyzeFunction(funcInfo.FuncName, nestedFuncDef,
				funcInfo.Depth+1, funcInfo.SymbolTable, funcInfo)

			cg.functions = append(cg.functions, nestedFuncInfo)

			funcInfo.SymbolTable.Put(nestedFuncInfo.BaseName(), nestedFuncInfo)
		}
	}

	funcInfo.AddBody(funcDef.Statements)
	return funcInfo
}

// -----------------------------------------------------------------------------
// Data-section emission

// alignObject aligns the next data item to a word boundary.
func (cg *CodeGen) alignObject() {
	cg.backend.AlignNext(bits.Len(uint(cg.wordSize)) - 1)
}

// emitPrototype emits the prototype object for the class described by
// classInfo.
func (cg *CodeGen) emitPrototype(classInfo *ClassInfo) {
	cg.backend.EmitGlobalLabel(classInfo.PrototypeLabel)
	cg.backend.EmitWordLiteral(classInfo.TypeTag,
		fmt.Sprintf("Type tag for class: %s", classInfo.ClassName))
	cg.backend.EmitWordLiteral(len(classInfo.Attributes)+HeaderSize, "Object size")
	cg.backend.EmitWordAddress(classInfo.DispatchTableLabel, "Pointer to dispatch table")
	for _, attr := range classInfo.Attributes {
		cg.emitConstantWord(attr.InitialValue, attr.VarType,
			fmt.Sprintf("Initial value of attribute: %s", attr.VarName))
	}
	cg.alignObject()
}

// emitDispatchTable emits the method-dispatching table for classInfo, if it
// has one.
func (cg *CodeGen) emitDispatchTable(classInfo *ClassInfo) {
	if classInfo.DispatchTableLabel == nil {
		return
	}
	cg.backend.EmitGlobalLabel(*classInfo.DispatchTableLabel)
	for _, method := range classInfo.Methods {
		label := method.CodeLabel
		cg.backend.EmitWordAddress(&label,
			fmt.Sprintf("Implementation for method: %s.%s", classInfo.ClassName, method.BaseName()))
	}
}

// emitConstantWord emits one word containing the encoding of value under
// static type valueType.  value may be nil, indicating None; valueType may be
// nil, indicating object.  For int and bool the numeric encoding is inlined;
// anything else is an address into the constant pool (or 0 for None).
func (cg *CodeGen) emitConstantWord(value ast.Literal, valueType types.ValueType, comment string) {
	switch {
	case valueType == types.IntType:
		cg.backend.EmitWordLiteral(value.(*ast.IntegerLiteral).Value, comment)
	case valueType == types.BoolType:
		encoded := 0
		if value.(*ast.BooleanLiteral).Value {
			encoded = 1
		}
		cg.backend.EmitWordLiteral(encoded, comment)
	default:
		cg.backend.EmitWordAddress(cg.constants.FromLiteral(value), comment)
	}
}

// emitConstants emits the trailing data section holding the interned
// constants: the boolean singletons, then strings, then ints, each in
// insertion order.
func (cg *CodeGen) emitConstants() {
	cg.backend.EmitGlobalLabel(cg.constants.FalseConstant)
	cg.backend.EmitWordLiteral(cg.boolClass.TypeTag, "Type tag for class: bool")
	cg.backend.EmitWordLiteral(len(cg.boolClass.Attributes)+HeaderSize, "Object size")
	cg.backend.EmitWordAddress(cg.boolClass.DispatchTableLabel, "Pointer to dispatch table")
	cg.backend.EmitWordLiteral(0, "Constant value of attribute: __bool__")
	cg.alignObject()

	cg.backend.EmitGlobalLabel(cg.constants.TrueConstant)
	cg.backend.EmitWordLiteral(cg.boolClass.TypeTag, "Type tag for class: bool")
	cg.backend.EmitWordLiteral(len(cg.boolClass.Attributes)+HeaderSize, "Object size")
	cg.backend.EmitWordAddress(cg.boolClass.DispatchTableLabel, "Pointer to dispatch table")
	cg.backend.EmitWordLiteral(1, "Constant value of attribute: __bool__")
	cg.alignObject()

	for _, value := range cg.constants.StrConstants() {
		label := cg.constants.StrLabel(value)
		numWordsForCharacters := len(value)/cg.wordSize + 1
		cg.backend.EmitGlobalLabel(label)
		cg.backend.EmitWordLiteral(cg.strClass.TypeTag, "Type tag for class: str")
		cg.backend.EmitWordLiteral(3+1+numWordsForCharacters, "Object size")
		cg.backend.EmitWordAddress(cg.strClass.DispatchTableLabel, "Pointer to dispatch table")
		cg.backend.EmitWordLiteral(len(value), "Constant value of attribute: __len__")
		cg.backend.EmitString(value, "Constant value of attribute: __str__")
		cg.alignObject()
	}

	for _, value := range cg.constants.IntConstants() {
		label := cg.constants.IntLabel(value)
		cg.backend.EmitGlobalLabel(label)
		cg.backend.EmitWordLiteral(cg.intClass.TypeTag, "Type tag for class: int")
		cg.backend.EmitWordLiteral(len(cg.intClass.Attributes)+HeaderSize, "Object size")
		cg.backend.EmitWordAddress(cg.intClass.DispatchTableLabel, "Pointer to dispatch table")
		cg.backend.EmitWordLiteral(value, "Constant value of attribute: __int__")
		cg.alignObject()
	}
}

// -----------------------------------------------------------------------------
// Object-layout offsets

// TypeTagOffset returns the byte offset of the type-tag field in an object.
func (cg *CodeGen) TypeTagOffset() int {
	return 0 * cg.wordSize
}

// ObjectSizeOffset returns the byte offset of the size field in an object.
func (cg *CodeGen) ObjectSizeOffset() int {
	return 1 * cg.wordSize
}

// DispatchTableOffset returns the byte offset of the dispatch-table pointer
// in an object.
func (cg *CodeGen) DispatchTableOffset() int {
	return 2 * cg.wordSize
}

// AttrOffset returns the byte offset of the attribute named attrName in an
// object of the class described by classInfo.
func (cg *CodeGen) AttrOffset(classInfo *ClassInfo, attrName string) int {
	attrIndex := classInfo.AttributeIndex(attrName)
	if attrIndex < 0 {
		ice("class %s has no attribute %s", classInfo.ClassName, attrName)
	}
	return cg.wordSize * (HeaderSize + attrIndex)
}

// MethodOffset returns the byte offset of the method named methodName in the
// dispatch table of the class described by classInfo.
func (cg *CodeGen) MethodOffset(classInfo *ClassInfo, methodName string) int {
	methodIndex := classInfo.MethodIndex(methodName)
	if methodIndex < 0 {
		ice("class %s has no method %s", classInfo.ClassName, methodName)
	}
	return cg.wordSize * methodIndex
}
