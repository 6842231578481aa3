// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

package jslt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// evalFrame threads per-call state (the reset-per-invocation global scope
// and the recursion depth guard) through evaluation without widening every
// construct evaluator's parameter list each time a new cross-cutting
// concern is added.
type evalFrame struct {
	global *globalScope
	depth  int
}

// constructEvaluator pairs a shape-matcher with the evaluation logic for
// the construct it recognizes. The dispatch loop in Interpreter.eval walks
// the registered evaluators highest-priority first and invokes the first
// whose canEval fires.
type constructEvaluator struct {
	name     string
	priority int
	canEval  func(expr string) bool
	eval     func(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error)
}

func defaultEvaluators() []constructEvaluator {
	return []constructEvaluator{
		{
			name:     "variable_let",
			priority: 100,
			canEval:  func(expr string) bool { return (isVariableRef(expr) && !operatorCanEval(expr)) || isLet(expr) },
			eval: func(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
				if isVariableRef(expr) {
					return evalVariable(expr, scope, fr)
				}
				return evalLet(it, expr, ctx, scope, fr)
			},
		},
		{
			name:     "control_flow",
			priority: 90,
			canEval:  func(expr string) bool { return isIf(expr) || isFor(expr) },
			eval: func(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
				if isIf(expr) {
					return evalIf(it, expr, ctx, scope, fr)
				}
				return evalFor(it, expr, ctx, scope, fr)
			},
		},
		{
			name:     "operator",
			priority: 80,
			canEval:  operatorCanEval,
			eval: func(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
				return evalOperator(it, expr, ctx, scope, fr)
			},
		},
		{
			name:     "object_ctor",
			priority: 70,
			canEval:  isObjectCtor,
			eval: func(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
				return evalObjectCtor(it, expr, ctx, scope, fr)
			},
		},
		{
			name:     "array_ctor",
			priority: 70,
			canEval:  isArrayCtor,
			eval: func(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
				return evalArrayCtor(it, expr, ctx, scope, fr)
			},
		},
		{
			name:     "function_call",
			priority: 60,
			canEval:  isFunctionCall,
			eval: func(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
				return evalFunctionCall(it, expr, ctx, scope, fr)
			},
		},
		{
			name:     "path",
			priority: 50,
			canEval:  isPath,
			eval: func(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
				return resolvePath(expr, ctx), nil
			},
		},
		{
			name:     "literal",
			priority: 40,
			canEval:  literalCanEval,
			eval: func(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
				return evalLiteral(expr)
			},
		},
	}
}

func literalCanEval(expr string) bool {
	return isStringLiteral(expr) || isNumberLiteral(expr) || isBooleanLiteral(expr) || isNullLiteral(expr)
}

// operatorCanEval refuses expressions that begin with a constructor or
// control-flow keyword so those aren't misclassified by an internal
// top-level operator (e.g. the condition inside an `if`).
func operatorCanEval(expr string) bool {
	if strings.HasPrefix(expr, "{") || strings.HasPrefix(expr, "[") {
		return false
	}
	if isIf(expr) || isFor(expr) {
		return false
	}
	if hasTopLevelOp(expr, compareOpsSpaced) {
		return true
	}
	return hasTopLevelOp(expr, []string{" + "})
}

var compareOpsSpaced = []string{" >= ", " <= ", " > ", " < ", " == ", " != "}

var varNameRe = regexp.MustCompile(`^\w+`)

func evalVariable(expr string, scope *Scope, fr evalFrame) (Value, error) {
	name := varNameRe.FindString(expr[1:])
	if v, ok := scope.Lookup(name); ok {
		return v, nil
	}
	if v, ok := fr.global.lookup(name); ok {
		return v, nil
	}
	return Value{}, errUndefinedVariable(name)
}

var letHeadRe = regexp.MustCompile(`(?s)^(\w+)\s*=\s*(.+)$`)

func evalLet(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
	rest := strings.TrimPrefix(expr, "let ")
	m := letHeadRe.FindStringSubmatch(rest)
	if m == nil {
		return Value{}, errSyntax("Invalid let syntax. Use: let variable = expression")
	}
	name, valueAndTail := m[1], m[2]

	if idx, ok := findTopLevelSubstr(valueAndTail, " in "); ok {
		valueExpr := strings.TrimSpace(valueAndTail[:idx])
		bodyExpr := strings.TrimSpace(valueAndTail[idx+len(" in "):])
		val, err := it.eval(valueExpr, ctx, scope, fr)
		if err != nil {
			return Value{}, err
		}
		return it.eval(bodyExpr, ctx, scope.Bind(name, val), fr)
	}

	valuePart, tailPart := splitLetTail(valueAndTail)
	val, err := it.eval(valuePart, ctx, scope, fr)
	if err != nil {
		return Value{}, err
	}
	if strings.TrimSpace(tailPart) == "" {
		return val, nil
	}
	return it.eval(tailPart, ctx, scope.Bind(name, val), fr)
}

// findTopLevelSubstr returns the index of the first top-level occurrence of
// sub in s (outside strings and nested brackets), or false if none exists.
func findTopLevelSubstr(s, sub string) (int, bool) {
	depth := 0
	inString := false
	var stringChar byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case !inString && (c == '"' || c == '\''):
			inString = true
			stringChar = c
		case inString && c == stringChar:
			inString = false
		case !inString && isOpenBracket(c):
			depth++
		case !inString && isCloseBracket(c):
			depth--
		case !inString && depth == 0 && strings.HasPrefix(s[i:], sub):
			return i, true
		}
	}
	return -1, false
}

var ifRe = regexp.MustCompile(`(?s)^if\s*\(([^)]+)\)\s*(.+?)\s+else\s+(.+)$`)

func evalIf(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
	m := ifRe.FindStringSubmatch(expr)
	if m == nil {
		return Value{}, errSyntax("Invalid if expression syntax")
	}
	cond, thenExpr, elseExpr := m[1], m[2], m[3]
	condVal, err := it.eval(cond, ctx, scope, fr)
	if err != nil {
		return Value{}, err
	}
	if condVal.Truthy() {
		return it.eval(thenExpr, ctx, scope, fr)
	}
	return it.eval(elseExpr, ctx, scope, fr)
}

var forRe = regexp.MustCompile(`(?s)^for\s*\(([^)]+)\)\s*(.+)$`)

func evalFor(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
	m := forRe.FindStringSubmatch(expr)
	if m == nil {
		return Value{}, errSyntax("Invalid for loop syntax")
	}
	arrExpr, bodyExpr := m[1], m[2]
	arrVal, err := it.eval(arrExpr, ctx, scope, fr)
	if err != nil {
		return Value{}, err
	}
	if arrVal.Kind() != KindArray {
		return Value{}, errForRequiresArray()
	}
	elems := arrVal.AsArray()
	results := make([]Value, 0, len(elems))
	for _, elem := range elems {
		r, err := it.eval(bodyExpr, elem, scope, fr)
		if err != nil {
			return Value{}, err
		}
		results = append(results, r)
	}
	return NewArray(results), nil
}

func evalObjectCtor(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
	inner := strings.TrimSpace(expr[1 : len(expr)-1])
	obj := NewObjectValue()
	if inner == "" {
		return NewObject(obj), nil
	}
	for _, pair := range splitObjectPairs(inner) {
		idx := strings.Index(pair, ":")
		if idx == -1 {
			return Value{}, errSyntax(fmt.Sprintf("Invalid object pair: %s", pair))
		}
		key := unquoteKey(strings.TrimSpace(pair[:idx]))
		valuePart := strings.TrimSpace(pair[idx+1:])
		val, err := it.eval(valuePart, ctx, scope, fr)
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, val)
	}
	return NewObject(obj), nil
}

func unquoteKey(s string) string {
	if isStringLiteral(s) {
		return s[1 : len(s)-1]
	}
	return s
}

func evalArrayCtor(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
	inner := strings.TrimSpace(expr[1 : len(expr)-1])
	if inner == "" {
		return NewArray(nil), nil
	}
	elems := splitArrayElements(inner)
	vals := make([]Value, 0, len(elems))
	for _, e := range elems {
		v, err := it.eval(e, ctx, scope, fr)
		if err != nil {
			return Value{}, err
		}
		vals = append(vals, v)
	}
	return NewArray(vals), nil
}

func evalFunctionCall(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
	m := functionCallRe.FindStringSubmatch(expr)
	if m == nil {
		return Value{}, errSyntax("Invalid function call syntax")
	}
	name, argsStr := m[1], m[2]
	argExprs := splitFunctionArgs(argsStr)
	args := make([]Value, 0, len(argExprs))
	for _, a := range argExprs {
		v, err := it.eval(a, ctx, scope, fr)
		if err != nil {
			return Value{}, err
		}
		args = append(args, v)
	}
	fn, ok := it.lookupFunction(name)
	if !ok {
		return Value{}, errUnknownFunction(name)
	}
	return fn(args)
}

func evalOperator(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
	for _, op := range []string{">=", "<=", ">", "<", "==", "!="} {
		spaced := " " + op + " "
		if idx, ok := findTopLevelSubstr(expr, spaced); ok {
			left := strings.TrimSpace(expr[:idx])
			right := strings.TrimSpace(expr[idx+len(spaced):])
			return evalComparison(it, left, right, op, ctx, scope, fr)
		}
	}
	if hasTopLevelOp(expr, []string{" + "}) {
		return evalAddition(it, expr, ctx, scope, fr)
	}
	return Value{}, errSyntax(fmt.Sprintf("Invalid operator expression: %s", expr))
}

func evalComparison(it *Interpreter, left, right, op string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
	lv, err := it.eval(left, ctx, scope, fr)
	if err != nil {
		return Value{}, err
	}
	rv, err := it.eval(right, ctx, scope, fr)
	if err != nil {
		return Value{}, err
	}
	switch op {
	case "==":
		return Bool(Equal(lv, rv)), nil
	case "!=":
		return Bool(!Equal(lv, rv)), nil
	default:
		return Bool(Compare(lv, rv, op)), nil
	}
}

func evalAddition(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
	parts := splitAddition(expr)
	if len(parts) == 1 {
		return it.eval(parts[0], ctx, scope, fr)
	}
	vals := make([]Value, 0, len(parts))
	for _, p := range parts {
		v, err := it.eval(p, ctx, scope, fr)
		if err != nil {
			return Value{}, err
		}
		vals = append(vals, v)
	}

	anyString := false
	for _, v := range vals {
		if v.Kind() == KindString {
			anyString = true
			break
		}
	}
	if anyString {
		return String(concatDisplay(vals)), nil
	}

	allNumericOrNull := true
	for _, v := range vals {
		if v.Kind() != KindInt && v.Kind() != KindDouble && !v.IsNull() {
			allNumericOrNull = false
			break
		}
	}
	if allNumericOrNull {
		var intSum int64
		var floatSum float64
		isDouble := false
		for _, v := range vals {
			switch v.Kind() {
			case KindInt:
				intSum += v.AsInt()
				floatSum += float64(v.AsInt())
			case KindDouble:
				isDouble = true
				floatSum += v.AsDouble()
			}
		}
		if isDouble {
			return Double(floatSum), nil
		}
		return Int(intSum), nil
	}

	return String(concatDisplay(vals)), nil
}

func concatDisplay(vals []Value) string {
	var sb strings.Builder
	for _, v := range vals {
		sb.WriteString(v.Display())
	}
	return sb.String()
}

func evalLiteral(expr string) (Value, error) {
	switch {
	case isStringLiteral(expr):
		return String(expr[1 : len(expr)-1]), nil
	case isNumberLiteral(expr):
		if strings.Contains(expr, ".") {
			f, err := strconv.ParseFloat(expr, 64)
			if err != nil {
				return Value{}, errSyntax(fmt.Sprintf("Invalid number literal: %s", expr))
			}
			return Double(f), nil
		}
		i, err := strconv.ParseInt(expr, 10, 64)
		if err != nil {
			return Value{}, errSyntax(fmt.Sprintf("Invalid number literal: %s", expr))
		}
		return Int(i), nil
	case isBooleanLiteral(expr):
		return Bool(expr == "true"), nil
	case isNullLiteral(expr):
		return Null(), nil
	default:
		return Value{}, errUnknownConstruct(expr)
	}
}
