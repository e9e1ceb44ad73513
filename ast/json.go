package ast

import (
	"bytes"
	"encoding/json"

	"chogo/types"

	"github.com/pkg/errors"
)

// ParseProgram decodes a serialized program tree.
func ParseProgram(data []byte) (*Program, error) {
	program := &Program{}
	if err := json.Unmarshal(data, program); err != nil {
		return nil, errors.Wrap(err, "failed to decode program tree")
	}
	return program, nil
}

// isNull reports whether raw is absent or the JSON null.
func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// peekKind extracts the `kind` discriminator without decoding the node.
func peekKind(raw json.RawMessage) (string, error) {
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", err
	}
	if probe.Kind == "" {
		return "", errors.New("tree node is missing its kind discriminator")
	}
	return probe.Kind, nil
}

// decodeNode decodes raw into the concrete node named by its kind.
func decodeNode(raw json.RawMessage) (interface{}, error) {
	kind, err := peekKind(raw)
	if err != nil {
		return nil, err
	}

	var node interface{}
	switch kind {
	case "Program":
		node = &Program{}
	case "VarDef":
		node = &VarDef{}
	case "ClassDef":
		node = &ClassDef{}
	case "FuncDef":
		node = &FuncDef{}
	case "GlobalDecl":
		node = &GlobalDecl{}
	case "NonLocalDecl":
		node = &NonLocalDecl{}
	case "TypedVar":
		node = &TypedVar{}
	case "ClassType":
		node = &ClassType{}
	case "ListType":
		node = &ListType{}
	case "ExprStmt":
		node = &ExprStmt{}
	case "AssignStmt":
		node = &AssignStmt{}
	case "IfStmt":
		node = &IfStmt{}
	case "WhileStmt":
		node = &WhileStmt{}
	case "ForStmt":
		node = &ForStmt{}
	case "ReturnStmt":
		node = &ReturnStmt{}
	case "Identifier":
		node = &Identifier{}
	case "BinaryExpr":
		node = &BinaryExpr{}
	case "UnaryExpr":
		node = &UnaryExpr{}
	case "CallExpr":
		node = &CallExpr{}
	case "MethodCallExpr":
		node = &MethodCallExpr{}
	case "MemberExpr":
		node = &MemberExpr{}
	case "IndexExpr":
		node = &IndexExpr{}
	case "IfExpr":
		node = &IfExpr{}
	case "ListExpr":
		node = &ListExpr{}
	case "IntegerLiteral":
		node = &IntegerLiteral{}
	case "BooleanLiteral":
		node = &BooleanLiteral{}
	case "StringLiteral":
		node = &StringLiteral{}
	case "NoneLiteral":
		node = &NoneLiteral{}
	default:
		return nil, errors.Errorf("unknown tree node kind: %s", kind)
	}

	if err := json.Unmarshal(raw, node); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s node", kind)
	}
	return node, nil
}

func decodeDecl(raw json.RawMessage) (Declaration, error) {
	if isNull(raw) {
		return nil, nil
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	decl, ok := node.(Declaration)
	if !ok {
		return nil, errors.Errorf("%T is not a declaration", node)
	}
	return decl, nil
}

func decodeDecls(raws []json.RawMessage) ([]Declaration, error) {
	decls := make([]Declaration, 0, len(raws))
	for _, raw := range raws {
		decl, err := decodeDecl(raw)
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func decodeStmt(raw json.RawMessage) (Stmt, error) {
	if isNull(raw) {
		return nil, nil
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	stmt, ok := node.(Stmt)
	if !ok {
		return nil, errors.Errorf("%T is not a statement", node)
	}
	return stmt, nil
}

func decodeStmts(raws []json.RawMessage) ([]Stmt, error) {
	stmts := make([]Stmt, 0, len(raws))
	for _, raw := range raws {
		stmt, err := decodeStmt(raw)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeExpr(raw json.RawMessage) (Expr, error) {
	if isNull(raw) {
		return nil, nil
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(Expr)
	if !ok {
		return nil, errors.Errorf("%T is not an expression", node)
	}
	return expr, nil
}

func decodeExprs(raws []json.RawMessage) ([]Expr, error) {
	exprs := make([]Expr, 0, len(raws))
	for _, raw := range raws {
		expr, err := decodeExpr(raw)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func decodeLiteral(raw json.RawMessage) (Literal, error) {
	expr, err := decodeExpr(raw)
	if err != nil || expr == nil {
		return nil, err
	}
	lit, ok := expr.(Literal)
	if !ok {
		return nil, errors.Errorf("%T is not a literal", expr)
	}
	return lit, nil
}

func decodeAnnotation(raw json.RawMessage) (TypeAnnotation, error) {
	if isNull(raw) {
		return nil, nil
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	annotation, ok := node.(TypeAnnotation)
	if !ok {
		return nil, errors.Errorf("%T is not a type annotation", node)
	}
	return annotation, nil
}

// decodeValueType decodes a serialized inferred type (ClassValueType or
// ListValueType) into its types package representation.
func decodeValueType(raw json.RawMessage) (types.ValueType, error) {
	if isNull(raw) {
		return nil, nil
	}

	kind, err := peekKind(raw)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "ClassValueType":
		var probe struct {
			ClassName string `json:"className"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, err
		}
		return types.ClassValueType{Name: probe.ClassName}, nil
	case "ListValueType":
		var probe struct {
			ElementType json.RawMessage `json:"elementType"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, err
		}
		element, err := decodeValueType(probe.ElementType)
		if err != nil {
			return nil, err
		}
		return types.ListValueType{Element: element}, nil
	}
	return nil, errors.Errorf("unknown value type kind: %s", kind)
}

// UnmarshalJSON decodes the kind-discriminated inferred type of an
// expression.
func (r *TypeRef) UnmarshalJSON(data []byte) error {
	t, err := decodeValueType(data)
	if err != nil {
		return err
	}
	r.ValueType = t
	return nil
}

// -----------------------------------------------------------------------------
// Node decoders.  Nodes whose fields are all concrete decode directly; each
// node below holds interface-typed children and dispatches on their kinds.

func (p *Program) UnmarshalJSON(data []byte) error {
	var raw struct {
		NodeBase
		Declarations []json.RawMessage `json:"declarations"`
		Statements   []json.RawMessage `json:"statements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decls, err := decodeDecls(raw.Declarations)
	if err != nil {
		return err
	}
	stmts, err := decodeStmts(raw.Statements)
	if err != nil {
		return err
	}
	*p = Program{NodeBase: raw.NodeBase, Declarations: decls, Statements: stmts}
	return nil
}

func (v *TypedVar) UnmarshalJSON(data []byte) error {
	var raw struct {
		NodeBase
		Identifier *Identifier     `json:"identifier"`
		Type       json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	annotation, err := decodeAnnotation(raw.Type)
	if err != nil {
		return err
	}
	*v = TypedVar{NodeBase: raw.NodeBase, Identifier: raw.Identifier, Type: annotation}
	return nil
}

func (d *VarDef) UnmarshalJSON(data []byte) error {
	var raw struct {
		NodeBase
		Var   *TypedVar       `json:"var"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	value, err := decodeLiteral(raw.Value)
	if err != nil {
		return err
	}
	*d = VarDef{NodeBase: raw.NodeBase, Var: raw.Var, Value: value}
	return nil
}

func (d *ClassDef) UnmarshalJSON(data []byte) error {
	var raw struct {
		NodeBase
		Name         *Identifier       `json:"name"`
		SuperClass   *Identifier       `json:"superClass"`
		Declarations []json.RawMessage `json:"declarations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decls, err := decodeDecls(raw.Declarations)
	if err != nil {
		return err
	}
	*d = ClassDef{NodeBase: raw.NodeBase, Name: raw.Name, SuperClass: raw.SuperClass, Declarations: decls}
	return nil
}

func (d *FuncDef) UnmarshalJSON(data []byte) error {
	var raw struct {
		NodeBase
		Name         *Identifier       `json:"name"`
		Params       []*TypedVar       `json:"params"`
		ReturnType   json.RawMessage   `json:"returnType"`
		Declarations []json.RawMessage `json:"declarations"`
		Statements   []json.RawMessage `json:"statements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	returnType, err := decodeAnnotation(raw.ReturnType)
	if err != nil {
		return err
	}
	decls, err := decodeDecls(raw.Declarations)
	if err != nil {
		return err
	}
	stmts, err := decodeStmts(raw.Statements)
	if err != nil {
		return err
	}
	*d = FuncDef{
		NodeBase:     raw.NodeBase,
		Name:         raw.Name,
		Params:       raw.Params,
		ReturnType:   returnType,
		Declarations: decls,
		Statements:   stmts,
	}
	return nil
}

func (t *ListType) UnmarshalJSON(data []byte) error {
	var raw struct {
		NodeBase
		ElementType json.RawMessage `json:"elementType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	element, err := decodeAnnotation(raw.ElementType)
	if err != nil {
		return err
	}
	*t = ListType{NodeBase: raw.NodeBase, ElementType: element}
	return nil
}

func (s *ExprStmt) UnmarshalJSON(data []byte) error {
	var raw struct {
		NodeBase
		Expr json.RawMessage `json:"expr"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	expr, err := decodeExpr(raw.Expr)
	if err != nil {
		return err
	}
	*s = ExprStmt{NodeBase: raw.NodeBase, Expr: expr}
	return nil
}

func (s *AssignStmt) UnmarshalJSON(data []byte) error {
	var raw struct {
		NodeBase
		Targets []json.RawMessage `json:"targets"`
		Value   json.RawMessage   `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	targets, err := decodeExprs(raw.Targets)
	if err != nil {
		return err
	}
	value, err := decodeExpr(raw.Value)
	if err != nil {
		return err
	}
	*s = AssignStmt{NodeBase: raw.NodeBase, Targets: targets, Value: value}
	return nil
}

func (s *IfStmt) UnmarshalJSON(data []byte) error {
	var raw struct {
		NodeBase
		Condition json.RawMessage   `json:"condition"`
		ThenBody  []json.RawMessage `json:"thenBody"`
		ElseBody  []json.RawMessage `json:"elseBody"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	condition, err := decodeExpr(raw.Condition)
	if err != nil {
		return err
	}
	thenBody, err := decodeStmts(raw.ThenBody)
	if err != nil {
		return err
	}
	elseBody, err := decodeStmts(raw.ElseBody)
	if err != nil {
		return err
	}
	*s = IfStmt{NodeBase: raw.NodeBase, Condition: condition, ThenBody: thenBody, ElseBody: elseBody}
	return nil
}

func (s *WhileStmt) UnmarshalJSON(data []byte) error {
	var raw struct {
		NodeBase
		Condition json.RawMessage   `json:"condition"`
		Body      []json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	condition, err := decodeExpr(raw.Condition)
	if err != nil {
		return err
	}
	body, err := decodeStmts(raw.Body)
	if err != nil {
		return err
	}
	*s = WhileStmt{NodeBase: raw.NodeBase, Condition: condition, Body: body}
	return nil
}

func (s *ForStmt) UnmarshalJSON(data []byte) error {
	var raw struct {
		NodeBase
		Identifier *Identifier       `json:"identifier"`
		Iterable   json.RawMessage   `json:"iterable"`
		Body       []json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	iterable, err := decodeExpr(raw.Iterable)
	if err != nil {
		return err
	}
	body, err := decodeStmts(raw.Body)
	if err != nil {
		return err
	}
	*s = ForStmt{NodeBase: raw.NodeBase, Identifier: raw.Identifier, Iterable: iterable, Body: body}
	return nil
}

func (s *ReturnStmt) UnmarshalJSON(data []byte) error {
	var raw struct {
		NodeBase
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	value, err := decodeExpr(raw.Value)
	if err != nil {
		return err
	}
	*s = ReturnStmt{NodeBase: raw.NodeBase, Value: value}
	return nil
}

func (e *BinaryExpr) UnmarshalJSON(data []byte) error {
	var raw struct {
		ExprBase
		Left     json.RawMessage `json:"left"`
		Operator string          `json:"operator"`
		Right    json.RawMessage `json:"right"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	left, err := decodeExpr(raw.Left)
	if err != nil {
		return err
	}
	right, err := decodeExpr(raw.Right)
	if err != nil {
		return err
	}
	*e = BinaryExpr{ExprBase: raw.ExprBase, Left: left, Operator: raw.Operator, Right: right}
	return nil
}

func (e *UnaryExpr) UnmarshalJSON(data []byte) error {
	var raw struct {
		ExprBase
		Operator string          `json:"operator"`
		Operand  json.RawMessage `json:"operand"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	operand, err := decodeExpr(raw.Operand)
	if err != nil {
		return err
	}
	*e = UnaryExpr{ExprBase: raw.ExprBase, Operator: raw.Operator, Operand: operand}
	return nil
}

func (e *CallExpr) UnmarshalJSON(data []byte) error {
	var raw struct {
		ExprBase
		Function *Identifier       `json:"function"`
		Args     []json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	args, err := decodeExprs(raw.Args)
	if err != nil {
		return err
	}
	*e = CallExpr{ExprBase: raw.ExprBase, Function: raw.Function, Args: args}
	return nil
}

func (e *MemberExpr) UnmarshalJSON(data []byte) error {
	var raw struct {
		ExprBase
		Object json.RawMessage `json:"object"`
		Member *Identifier     `json:"member"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	object, err := decodeExpr(raw.Object)
	if err != nil {
		return err
	}
	*e = MemberExpr{ExprBase: raw.ExprBase, Object: object, Member: raw.Member}
	return nil
}

func (e *MethodCallExpr) UnmarshalJSON(data []byte) error {
	var raw struct {
		ExprBase
		Method *MemberExpr       `json:"method"`
		Args   []json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	args, err := decodeExprs(raw.Args)
	if err != nil {
		return err
	}
	*e = MethodCallExpr{ExprBase: raw.ExprBase, Method: raw.Method, Args: args}
	return nil
}

func (e *IndexExpr) UnmarshalJSON(data []byte) error {
	var raw struct {
		ExprBase
		List  json.RawMessage `json:"list"`
		Index json.RawMessage `json:"index"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	list, err := decodeExpr(raw.List)
	if err != nil {
		return err
	}
	index, err := decodeExpr(raw.Index)
	if err != nil {
		return err
	}
	*e = IndexExpr{ExprBase: raw.ExprBase, List: list, Index: index}
	return nil
}

func (e *IfExpr) UnmarshalJSON(data []byte) error {
	var raw struct {
		ExprBase
		Condition json.RawMessage `json:"condition"`
		ThenExpr  json.RawMessage `json:"thenExpr"`
		ElseExpr  json.RawMessage `json:"elseExpr"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	condition, err := decodeExpr(raw.Condition)
	if err != nil {
		return err
	}
	thenExpr, err := decodeExpr(raw.ThenExpr)
	if err != nil {
		return err
	}
	elseExpr, err := decodeExpr(raw.ElseExpr)
	if err != nil {
		return err
	}
	*e = IfExpr{ExprBase: raw.ExprBase, Condition: condition, ThenExpr: thenExpr, ElseExpr: elseExpr}
	return nil
}

func (e *ListExpr) UnmarshalJSON(data []byte) error {
	var raw struct {
		ExprBase
		Elements []json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	elements, err := decodeExprs(raw.Elements)
	if err != nil {
		return err
	}
	*e = ListExpr{ExprBase: raw.ExprBase, Elements: elements}
	return nil
}
