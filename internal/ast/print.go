package ast

import (
	"encoding/json"
	"fmt"
)

// Print produces a deterministic JSON representation of a Program, for
// golden-snapshot testing. Grounded on the teacher's internal/ast/print.go:
// positions are omitted so that snapshots survive incidental line/column
// drift, and every node carries a "type" discriminator.
func Print(prog *Program) string {
	if prog == nil {
		return "null"
	}
	data, err := json.MarshalIndent(simplifyStmts(prog.Statements), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

func simplifyStmts(stmts []Stmt) []any {
	out := make([]any, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, simplify(s))
	}
	return out
}

func simplifyExprs(exprs []Expr) []any {
	out := make([]any, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, simplify(e))
	}
	return out
}

// simplify converts an AST node into a plain map/slice tree that marshals
// deterministically, dropping source positions the way the teacher's
// simplify() drops SIDs and byte offsets.
func simplify(node any) any {
	switch n := node.(type) {
	case nil:
		return nil
	case *Literal:
		m := map[string]any{"type": "Literal", "kind": n.Kind}
		switch n.Kind {
		case IntLit:
			m["value"] = n.IntValue
		case FloatLit:
			m["value"] = n.FloatValue
		case StringLit:
			m["value"] = n.StringValue
			m["isInterpolated"] = n.IsInterpolated
			m["isMultiline"] = n.IsMultiline
		case CharLit:
			m["value"] = string(n.CharValue)
		case BoolLit:
			m["value"] = n.BoolValue
		case NullLit:
			// no value field
		}
		return m
	case *Identifier:
		return map[string]any{"type": "Identifier", "name": n.Name}
	case *Self:
		return map[string]any{"type": "Self"}
	case *Binary:
		return map[string]any{"type": "Binary", "op": n.Op, "left": simplify(n.Left), "right": simplify(n.Right)}
	case *Unary:
		return map[string]any{"type": "Unary", "op": n.Op, "operand": simplify(n.Operand)}
	case *Cast:
		return map[string]any{"type": "Cast", "value": simplify(n.Value), "targetType": typeString(n.TargetType)}
	case *FunctionCall:
		return map[string]any{"type": "FunctionCall", "callee": simplify(n.Callee), "args": simplifyExprs(n.Args)}
	case *MethodCall:
		return map[string]any{
			"type": "MethodCall", "object": simplify(n.Object), "name": n.Name,
			"args": simplifyExprs(n.Args), "isStaticDispatch": n.IsStaticDispatch,
			"staticTypeName": n.StaticTypeName,
		}
	case *MemberAccess:
		return map[string]any{"type": "MemberAccess", "object": simplify(n.Object), "field": n.Field}
	case *SafeNavigation:
		return map[string]any{"type": "SafeNavigation", "object": simplify(n.Object), "field": n.Field}
	case *IndexAccess:
		return map[string]any{"type": "IndexAccess", "object": simplify(n.Object), "index": simplify(n.Index)}
	case *ArrayLiteral:
		return map[string]any{"type": "ArrayLiteral", "elements": simplifyExprs(n.Elements)}
	case *MapLiteral:
		entries := make([]any, 0, len(n.Entries))
		for _, e := range n.Entries {
			entries = append(entries, map[string]any{"key": simplify(e.Key), "value": simplify(e.Value)})
		}
		return map[string]any{"type": "MapLiteral", "entries": entries}
	case *StructLiteral:
		fields := make([]any, 0, len(n.Fields))
		for _, f := range n.Fields {
			fields = append(fields, map[string]any{"name": f.Name, "value": simplify(f.Value)})
		}
		return map[string]any{"type": "StructLiteral", "typeName": n.TypeName, "fields": fields}
	case *TupleExpression:
		return map[string]any{"type": "TupleExpression", "elements": simplifyExprs(n.Elements)}
	case *Pipe:
		return map[string]any{"type": "Pipe", "left": simplify(n.Left), "right": simplify(n.Right)}
	case *NullCoalesce:
		return map[string]any{"type": "NullCoalesce", "left": simplify(n.Left), "right": simplify(n.Right)}
	case *Range:
		return map[string]any{"type": "Range", "start": simplify(n.Start), "end": simplify(n.End), "step": simplify(n.Step)}
	case *Command:
		return map[string]any{"type": "Command", "kind": n.Kind.String(), "isAsync": n.IsAsync, "args": simplifyExprs(n.Args)}
	case *Await:
		return map[string]any{"type": "Await", "value": simplify(n.Value)}
	case *EnumLiteral:
		return map[string]any{"type": "EnumLiteral", "enumName": n.EnumName, "variant": n.Variant}

	case *VariableDeclaration:
		return map[string]any{
			"type": "VariableDeclaration", "kind": n.Kind.String(), "name": n.Name,
			"value": simplify(n.Value), "isPublic": n.IsPublic,
		}
	case *TupleVariableDeclaration:
		elems := make([]any, 0, len(n.Elements))
		for _, e := range n.Elements {
			elems = append(elems, map[string]any{"name": e.Name, "isMutable": e.IsMutable})
		}
		return map[string]any{"type": "TupleVariableDeclaration", "elements": elems, "value": simplify(n.Value)}
	case *Assignment:
		return map[string]any{"type": "Assignment", "target": simplify(n.Target), "value": simplify(n.Value)}
	case *FunctionDeclaration:
		return map[string]any{
			"type": "FunctionDeclaration", "name": n.Name, "isAsync": n.IsAsync,
			"isPublic": n.IsPublic, "body": simplifyStmts(n.Body),
		}
	case *StructDeclaration:
		return map[string]any{"type": "StructDeclaration", "name": n.Name, "isPublic": n.IsPublic}
	case *EnumDeclaration:
		return map[string]any{"type": "EnumDeclaration", "name": n.Name, "variants": n.Variants, "isPublic": n.IsPublic}
	case *ImplBlock:
		methods := make([]any, 0, len(n.Methods))
		for _, m := range n.Methods {
			methods = append(methods, simplify(m))
		}
		return map[string]any{"type": "ImplBlock", "typeName": n.TypeName, "methods": methods}
	case *MethodDeclaration:
		return map[string]any{
			"type": "MethodDeclaration", "name": n.Name, "isStatic": n.IsStatic, "body": simplifyStmts(n.Body),
		}
	case *IfStatement:
		elifs := make([]any, 0, len(n.ElseIfs))
		for _, ei := range n.ElseIfs {
			elifs = append(elifs, map[string]any{"condition": simplify(ei.Condition), "body": simplifyStmts(ei.Body)})
		}
		return map[string]any{
			"type": "IfStatement", "condition": simplify(n.Condition), "then": simplifyStmts(n.Then),
			"elifs": elifs, "else": simplifyStmts(n.Else),
		}
	case *ForLoop:
		return map[string]any{"type": "ForLoop", "variable": n.Variable, "source": simplify(n.Source), "body": simplifyStmts(n.Body)}
	case *WhileLoop:
		return map[string]any{"type": "WhileLoop", "condition": simplify(n.Condition), "body": simplifyStmts(n.Body)}
	case *TryStatement:
		return map[string]any{
			"type": "TryStatement", "errorVar": n.ErrorVar, "try": simplifyStmts(n.TryBlock), "catch": simplifyStmts(n.CatchBlock),
		}
	case *ThrowStatement:
		return map[string]any{"type": "ThrowStatement", "value": simplify(n.Value)}
	case *ImportStatement:
		return map[string]any{"type": "ImportStatement", "module": n.Module, "fromModule": n.FromModule, "items": n.Items}
	case *ReturnStatement:
		return map[string]any{"type": "ReturnStatement", "value": simplify(n.Value)}
	case *BreakStatement:
		return map[string]any{"type": "BreakStatement"}
	case *ContinueStatement:
		return map[string]any{"type": "ContinueStatement"}
	case *ShStatement:
		return map[string]any{"type": "ShStatement", "script": n.Script}
	case *ExpressionStatement:
		return map[string]any{"type": "ExpressionStatement", "expression": simplify(n.Expression)}
	default:
		return fmt.Sprintf("<unhandled %T>", node)
	}
}

func typeString(t interface{ String() string }) string {
	if t == nil {
		return ""
	}
	return t.String()
}
