package codegen

import "chogo/ast"

// CodeEmitter is the contract between the code-generation core and the
// instruction-selection layer that produces code for user-defined bodies.
// The core never inspects what an emitter produces; it supplies descriptors,
// label minting, offset arithmetic, and the assembly sink, and invokes the
// three operations below at the appropriate points of the driver.
type CodeEmitter interface {
	// EmitTopLevel emits code for the program's top-level statements.  It is
	// invoked immediately after the entry-point preamble.
	EmitTopLevel(cg *CodeGen, statements []ast.Stmt)

	// EmitFunctionBody emits the body of the user-defined function described
	// by funcInfo.  On entry the descriptor's symbol table, params, locals,
	// statements, and code label are all populated.  The emitted text must,
	// when entered at the code label with an ABI-compliant call, execute the
	// function's statements and return.
	EmitFunctionBody(cg *CodeGen, funcInfo *FuncInfo)

	// EmitCustomCode emits any additional helper routines that emitted
	// bodies jump to.  It runs after the standard runtime routines.
	EmitCustomCode(cg *CodeGen)
}
