package codegen

import "chogo/ast"

// UnimplementedEmitter is a stand-in instruction-selection layer.  Any
// top-level code or function body it is asked for aborts at runtime with the
// unimplemented-operation error code.  It lets the backend produce a
// complete, assemblable program before a real emitter is plugged in, and
// serves as the minimal example of the CodeEmitter contract.
type UnimplementedEmitter struct{}

func (UnimplementedEmitter) EmitTopLevel(cg *CodeGen, statements []ast.Stmt) {
	if len(statements) == 0 {
		return
	}
	cg.emitUnimplemented("top-level statements")
}

func (UnimplementedEmitter) EmitFunctionBody(cg *CodeGen, funcInfo *FuncInfo) {
	cg.backend.EmitGlobalLabel(funcInfo.CodeLabel)
	cg.emitUnimplemented(funcInfo.FuncName)
}

func (UnimplementedEmitter) EmitCustomCode(cg *CodeGen) {}

// emitUnimplemented emits an abort with the not-yet-implemented error code.
func (cg *CodeGen) emitUnimplemented(what string) {
	message := cg.constants.GetStrConstant("Unimplemented operation")
	cg.backend.EmitLI(A0, ErrorNYI, "Exit code for: Unimplemented operation")
	cg.backend.EmitLA(A1, message, "Load error message as str")
	cg.backend.EmitADDISym(A1, A1, "@.__str__", "Load address of attribute __str__")
	cg.backend.EmitJ(cg.abortLabel, "Abort: "+what)
}
