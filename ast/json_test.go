package ast

import (
	"testing"

	"chogo/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProgram = `{
  "kind": "Program",
  "location": [1, 1, 4, 1],
  "declarations": [
    {
      "kind": "VarDef",
      "var": {
        "kind": "TypedVar",
        "identifier": {"kind": "Identifier", "name": "x"},
        "type": {"kind": "ClassType", "className": "int"}
      },
      "value": {"kind": "IntegerLiteral", "value": 5}
    },
    {
      "kind": "FuncDef",
      "name": {"kind": "Identifier", "name": "f"},
      "params": [
        {
          "kind": "TypedVar",
          "identifier": {"kind": "Identifier", "name": "xs"},
          "type": {
            "kind": "ListType",
            "elementType": {"kind": "ClassType", "className": "int"}
          }
        }
      ],
      "returnType": {"kind": "ClassType", "className": "int"},
      "declarations": [
        {"kind": "GlobalDecl", "variable": {"kind": "Identifier", "name": "x"}}
      ],
      "statements": [
        {
          "kind": "ReturnStmt",
          "value": {
            "kind": "BinaryExpr",
            "left": {
              "kind": "Identifier",
              "name": "x",
              "inferredType": {"kind": "ClassValueType", "className": "int"}
            },
            "operator": "+",
            "right": {
              "kind": "IntegerLiteral",
              "value": 1,
              "inferredType": {"kind": "ClassValueType", "className": "int"}
            },
            "inferredType": {"kind": "ClassValueType", "className": "int"}
          }
        }
      ]
    }
  ],
  "statements": [
    {
      "kind": "ExprStmt",
      "expr": {
        "kind": "CallExpr",
        "function": {"kind": "Identifier", "name": "print"},
        "args": [
          {
            "kind": "Identifier",
            "name": "x",
            "inferredType": {"kind": "ClassValueType", "className": "int"}
          }
        ],
        "inferredType": {"kind": "ClassValueType", "className": "<None>"}
      }
    }
  ]
}`

func TestParseProgram(t *testing.T) {
	program, err := ParseProgram([]byte(sampleProgram))
	require.NoError(t, err)

	require.Len(t, program.Declarations, 2)
	require.Len(t, program.Statements, 1)

	varDef, ok := program.Declarations[0].(*VarDef)
	require.True(t, ok)
	assert.Equal(t, "x", varDef.Var.Identifier.Name)
	assert.Equal(t, types.IntType, ToValueType(varDef.Var.Type))
	lit, ok := varDef.Value.(*IntegerLiteral)
	require.True(t, ok)
	assert.Equal(t, 5, lit.Value)

	funcDef, ok := program.Declarations[1].(*FuncDef)
	require.True(t, ok)
	assert.Equal(t, "f", funcDef.Name.Name)
	require.Len(t, funcDef.Params, 1)
	assert.Equal(t, types.ListValueType{Element: types.IntType}, ToValueType(funcDef.Params[0].Type))
	assert.Equal(t, types.IntType, ToValueType(funcDef.ReturnType))

	globalDecl, ok := funcDef.Declarations[0].(*GlobalDecl)
	require.True(t, ok)
	assert.Equal(t, "x", globalDecl.Variable.Name)

	ret, ok := funcDef.Statements[0].(*ReturnStmt)
	require.True(t, ok)
	binary, ok := ret.Value.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", binary.Operator)
	assert.Equal(t, types.IntType, binary.Type())
	assert.Equal(t, types.IntType, binary.Left.Type())

	exprStmt, ok := program.Statements[0].(*ExprStmt)
	require.True(t, ok)
	call, ok := exprStmt.Expr.(*CallExpr)
	require.True(t, ok)
	assert.Equal(t, "print", call.Function.Name)
	assert.Equal(t, types.NoneType, call.Type())
}

func TestParseProgramRejectsUnknownKind(t *testing.T) {
	_, err := ParseProgram([]byte(`{"kind": "Program", "declarations": [{"kind": "Mystery"}], "statements": []}`))
	assert.Error(t, err)
}

func TestToValueTypeNilIsNone(t *testing.T) {
	assert.Equal(t, types.NoneType, ToValueType(nil))
}
