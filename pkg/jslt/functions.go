// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

package jslt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Function is a builtin callable registered by name in the interpreter's
// function table. Arguments are already evaluated (eager evaluation; no
// lazy builtins beyond if, which is not a function).
type Function func(args []Value) (Value, error)

var allDigitsRe = regexp.MustCompile(`^\d+$`)

var trueStrings = map[string]bool{
	"true": true,
	"1":    true,
	"yes":  true,
	"on":   true,
}

// defaultFunctionOrder is the builtin table order used for suggestion
// text — size, string, number, boolean, round — matching the Python
// original's list-ordered BUILTIN_FUNCTIONS.
var defaultFunctionOrder = []string{"size", "string", "number", "boolean", "round"}

func defaultFunctions() map[string]Function {
	return map[string]Function{
		"size":    sizeFn,
		"string":  stringFn,
		"number":  numberFn,
		"boolean": booleanFn,
		"round":   roundFn,
	}
}

func checkArity(name string, args []Value, want int) error {
	if len(args) != want {
		return errBadArgument(fmt.Sprintf("%s: expected %d argument(s), got %d", name, want, len(args)))
	}
	return nil
}

func sizeFn(args []Value) (Value, error) {
	if err := checkArity("size", args, 1); err != nil {
		return Value{}, err
	}
	switch args[0].Kind() {
	case KindArray:
		return Int(int64(len(args[0].AsArray()))), nil
	case KindObject:
		return Int(int64(args[0].AsObject().Len())), nil
	case KindString:
		return Int(int64(len(args[0].AsString()))), nil
	default:
		return Int(0), nil
	}
}

func stringFn(args []Value) (Value, error) {
	if err := checkArity("string", args, 1); err != nil {
		return Value{}, err
	}
	if args[0].IsNull() {
		return String(""), nil
	}
	return String(args[0].Display()), nil
}

func numberFn(args []Value) (Value, error) {
	if err := checkArity("number", args, 1); err != nil {
		return Value{}, err
	}
	v := args[0]
	switch v.Kind() {
	case KindInt, KindDouble:
		return v, nil
	case KindString:
		s := v.AsString()
		if allDigitsRe.MatchString(s) {
			i, err := strconv.ParseInt(s, 10, 64)
			if err == nil {
				return Int(i), nil
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Double(f), nil
		}
		return Int(0), nil
	default:
		return Int(0), nil
	}
}

func booleanFn(args []Value) (Value, error) {
	if err := checkArity("boolean", args, 1); err != nil {
		return Value{}, err
	}
	v := args[0]
	switch v.Kind() {
	case KindBool:
		return v, nil
	case KindString:
		return Bool(trueStrings[strings.ToLower(v.AsString())]), nil
	case KindInt:
		return Bool(v.AsInt() != 0), nil
	case KindDouble:
		return Bool(v.AsDouble() != 0), nil
	case KindNull:
		return Bool(false), nil
	default:
		return Bool(true), nil
	}
}

func roundFn(args []Value) (Value, error) {
	if err := checkArity("round", args, 1); err != nil {
		return Value{}, err
	}
	n, ok := args[0].asNumber()
	if !ok {
		return Value{}, errBadArgument("round: argument must be numeric")
	}
	return Int(int64(math.Round(n))), nil
}
