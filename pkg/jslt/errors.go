// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

package jslt

import "github.com/samber/oops"

// Error codes tag every error the evaluator can raise, so callers can branch
// on oops.AsOops(err).Code() instead of matching error text.
const (
	CodeEmptyExpression  = "JSLT_EMPTY_EXPRESSION"
	CodeSyntax           = "JSLT_SYNTAX"
	CodeUnknownConstruct = "JSLT_UNKNOWN_CONSTRUCT"
	CodeUndefinedVar     = "JSLT_UNDEFINED_VARIABLE"
	CodeUnknownFunction  = "JSLT_UNKNOWN_FUNCTION"
	CodeBadArgument      = "JSLT_BAD_ARGUMENT"
	CodeForRequiresArray = "JSLT_FOR_REQUIRES_ARRAY"
	CodeTypeMismatch     = "JSLT_TYPE_MISMATCH"
	CodeDepthExceeded    = "JSLT_DEPTH_EXCEEDED"
)

func errEmptyExpression() error {
	return oops.Code(CodeEmptyExpression).In("jslt").Errorf("empty expression")
}

func errSyntax(reason string) error {
	return oops.Code(CodeSyntax).In("jslt").Errorf("%s", reason)
}

func errUnknownConstruct(expr string) error {
	return oops.Code(CodeUnknownConstruct).In("jslt").With("expression", expr).
		Errorf("Invalid expression: %s", expr)
}

func errUndefinedVariable(name string) error {
	return oops.Code(CodeUndefinedVar).In("jslt").With("variable", name).
		Errorf("Undefined variable: $%s", name)
}

func errUnknownFunction(name string) error {
	return oops.Code(CodeUnknownFunction).In("jslt").With("function", name).
		Errorf("Unknown function: %s", name)
}

func errBadArgument(reason string) error {
	return oops.Code(CodeBadArgument).In("jslt").Errorf("%s", reason)
}

func errForRequiresArray() error {
	return oops.Code(CodeForRequiresArray).In("jslt").Errorf("For loop requires an array")
}

func errDepthExceeded(limit int) error {
	return oops.Code(CodeDepthExceeded).In("jslt").With("max_depth", limit).
		Errorf("Maximum evaluation depth exceeded (%d)", limit)
}
