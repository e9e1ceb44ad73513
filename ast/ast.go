package ast

import (
	"chogo/types"
)

// The node structs in this package mirror the serialized tree produced by the
// front-end phases.  Every node carries a `kind` discriminator (the node's
// type name) and a source location; expressions additionally carry the value
// type inferred for them during semantic analysis.  The tree arriving here is
// assumed to be well-formed and well-typed.

// NodeBase holds the fields common to every tree node.  Location is
// [startLine, startCol, endLine, endCol].
type NodeBase struct {
	Kind     string `json:"kind"`
	Location [4]int `json:"location"`
	ErrorMsg string `json:"errorMsg,omitempty"`
}

// Declaration is a variable, class, function, global, or nonlocal
// declaration.
type Declaration interface {
	declNode()
}

// Stmt is a statement node.
type Stmt interface {
	stmtNode()
}

// Expr is an expression node annotated with its inferred value type.
type Expr interface {
	exprNode()

	// Type returns the value type inferred for this expression, or nil if the
	// tree was produced without type annotations.
	Type() types.ValueType
}

// Literal is a literal expression: one of IntegerLiteral, BooleanLiteral,
// StringLiteral, or NoneLiteral.
type Literal interface {
	Expr
	literalNode()
}

// TypeAnnotation is a syntactic type annotation: a class name or a list type.
type TypeAnnotation interface {
	annotationNode()
}

// TypeRef wraps an inferred value type so that it can be decoded from its
// kind-discriminated serialized form.
type TypeRef struct {
	types.ValueType
}

// ExprBase holds the fields common to every expression.
type ExprBase struct {
	NodeBase
	InferredType TypeRef `json:"inferredType"`
}

func (e *ExprBase) exprNode() {}

func (e *ExprBase) Type() types.ValueType { return e.InferredType.ValueType }

// Program is the root of the tree: the top-level declarations followed by the
// top-level statements.
type Program struct {
	NodeBase
	Declarations []Declaration
	Statements   []Stmt
}

// -----------------------------------------------------------------------------
// Declarations

// TypedVar is a name paired with its declared type annotation.
type TypedVar struct {
	NodeBase
	Identifier *Identifier
	Type       TypeAnnotation
}

// VarDef declares a variable (global, local, or attribute) with an initial
// literal value.
type VarDef struct {
	NodeBase
	Var   *TypedVar
	Value Literal
}

// ClassDef declares a class with a named super-class and a body of attribute
// and method declarations.
type ClassDef struct {
	NodeBase
	Name         *Identifier
	SuperClass   *Identifier
	Declarations []Declaration
}

// FuncDef declares a function, method, or nested function.
type FuncDef struct {
	NodeBase
	Name         *Identifier
	Params       []*TypedVar
	ReturnType   TypeAnnotation
	Declarations []Declaration
	Statements   []Stmt
}

// GlobalDecl is a `global x` declaration inside a function body.
type GlobalDecl struct {
	NodeBase
	Variable *Identifier `json:"variable"`
}

// NonLocalDecl is a `nonlocal x` declaration inside a function body.
type NonLocalDecl struct {
	NodeBase
	Variable *Identifier `json:"variable"`
}

func (*VarDef) declNode()       {}
func (*ClassDef) declNode()     {}
func (*FuncDef) declNode()      {}
func (*GlobalDecl) declNode()   {}
func (*NonLocalDecl) declNode() {}

// -----------------------------------------------------------------------------
// Type annotations

// ClassType annotates a name with a class type.
type ClassType struct {
	NodeBase
	ClassName string `json:"className"`
}

// ListType annotates a name with a list type.
type ListType struct {
	NodeBase
	ElementType TypeAnnotation
}

func (*ClassType) annotationNode() {}
func (*ListType) annotationNode()  {}

// ToValueType converts a syntactic type annotation to the value type it
// denotes.  A nil annotation denotes <None> (e.g. an omitted return type).
func ToValueType(annotation TypeAnnotation) types.ValueType {
	switch a := annotation.(type) {
	case nil:
		return types.NoneType
	case *ClassType:
		return types.ClassValueType{Name: a.ClassName}
	case *ListType:
		return types.ListValueType{Element: ToValueType(a.ElementType)}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Statements

// ExprStmt evaluates an expression for its side effects.
type ExprStmt struct {
	NodeBase
	Expr Expr
}

// AssignStmt assigns a value to one or more targets.
type AssignStmt struct {
	NodeBase
	Targets []Expr
	Value   Expr
}

// IfStmt is a conditional statement with optional else body.
type IfStmt struct {
	NodeBase
	Condition Expr
	ThenBody  []Stmt
	ElseBody  []Stmt
}

// WhileStmt is a while loop.
type WhileStmt struct {
	NodeBase
	Condition Expr
	Body      []Stmt
}

// ForStmt iterates a name over a string or list.
type ForStmt struct {
	NodeBase
	Identifier *Identifier
	Iterable   Expr
	Body       []Stmt
}

// ReturnStmt returns from the enclosing function; Value may be nil.
type ReturnStmt struct {
	NodeBase
	Value Expr
}

func (*ExprStmt) stmtNode()   {}
func (*AssignStmt) stmtNode() {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*ForStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode() {}

// -----------------------------------------------------------------------------
// Expressions

// Identifier is a reference to a name.
type Identifier struct {
	ExprBase
	Name string `json:"name"`
}

// BinaryExpr applies a binary operator.
type BinaryExpr struct {
	ExprBase
	Left     Expr
	Operator string
	Right    Expr
}

// UnaryExpr applies a unary operator.
type UnaryExpr struct {
	ExprBase
	Operator string
	Operand  Expr
}

// CallExpr calls a function or constructor by name.
type CallExpr struct {
	ExprBase
	Function *Identifier
	Args     []Expr
}

// MemberExpr selects an attribute or method of an object.
type MemberExpr struct {
	ExprBase
	Object Expr
	Member *Identifier
}

// MethodCallExpr calls a method through a member selection.
type MethodCallExpr struct {
	ExprBase
	Method *MemberExpr
	Args   []Expr
}

// IndexExpr indexes into a string or list.
type IndexExpr struct {
	ExprBase
	List  Expr
	Index Expr
}

// IfExpr is a conditional expression.
type IfExpr struct {
	ExprBase
	Condition Expr
	ThenExpr  Expr
	ElseExpr  Expr
}

// ListExpr is a list display.
type ListExpr struct {
	ExprBase
	Elements []Expr
}

// IntegerLiteral is an int literal.
type IntegerLiteral struct {
	ExprBase
	Value int `json:"value"`
}

// BooleanLiteral is a True or False literal.
type BooleanLiteral struct {
	ExprBase
	Value bool `json:"value"`
}

// StringLiteral is a string literal.
type StringLiteral struct {
	ExprBase
	Value string `json:"value"`
}

// NoneLiteral is the None literal.
type NoneLiteral struct {
	ExprBase
}

func (*IntegerLiteral) literalNode() {}
func (*BooleanLiteral) literalNode() {}
func (*StringLiteral) literalNode()  {}
func (*NoneLiteral) literalNode()    {}

// -----------------------------------------------------------------------------
// Construction helpers for trees built in code (predefined declarations and
// tests).  Parsed trees come in through ParseProgram instead.

// NewIdentifier creates an identifier node for name.
func NewIdentifier(name string) *Identifier {
	return &Identifier{ExprBase: ExprBase{NodeBase: NodeBase{Kind: "Identifier"}}, Name: name}
}

// NewIntegerLiteral creates an int literal node for value.
func NewIntegerLiteral(value int) *IntegerLiteral {
	return &IntegerLiteral{ExprBase: ExprBase{NodeBase: NodeBase{Kind: "IntegerLiteral"}}, Value: value}
}

// NewBooleanLiteral creates a bool literal node for value.
func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{ExprBase: ExprBase{NodeBase: NodeBase{Kind: "BooleanLiteral"}}, Value: value}
}

// NewStringLiteral creates a string literal node for value.
func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{ExprBase: ExprBase{NodeBase: NodeBase{Kind: "StringLiteral"}}, Value: value}
}

// NewNoneLiteral creates a None literal node.
func NewNoneLiteral() *NoneLiteral {
	return &NoneLiteral{ExprBase: ExprBase{NodeBase: NodeBase{Kind: "NoneLiteral"}}}
}
