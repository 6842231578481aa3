// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

package jslt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifierPredicates(t *testing.T) {
	assert.True(t, isStringLiteral(`"hi"`))
	assert.True(t, isStringLiteral(`'hi'`))
	assert.False(t, isStringLiteral(`"hi'`))
	assert.False(t, isStringLiteral(`x`))

	assert.True(t, isNumberLiteral("5"))
	assert.True(t, isNumberLiteral("-5"))
	assert.True(t, isNumberLiteral("5.25"))
	assert.False(t, isNumberLiteral("5."))
	assert.False(t, isNumberLiteral("abc"))

	assert.True(t, isBooleanLiteral("true"))
	assert.True(t, isBooleanLiteral("false"))
	assert.False(t, isBooleanLiteral("True"))

	assert.True(t, isNullLiteral("null"))

	assert.True(t, isObjectCtor(`{"a": 1}`))
	assert.False(t, isObjectCtor(`{"a": 1`))

	assert.True(t, isArrayCtor(`[1, 2]`))

	assert.True(t, isVariableRef("$x"))
	assert.False(t, isVariableRef("x"))

	assert.True(t, isLet("let x = 1 in $x"))
	assert.False(t, isLet("letter"))

	assert.True(t, isIf("if (.x) 1 else 2"))
	assert.True(t, isFor("for (.xs) ."))

	assert.True(t, isFunctionCall("size(.xs)"))
	assert.True(t, isFunctionCall("size()"))
	assert.False(t, isFunctionCall("size(.xs"))

	assert.True(t, isPath(".a.b"))
	assert.False(t, isPath("a.b"))
}

func TestHasTopLevelOp(t *testing.T) {
	assert.True(t, hasTopLevelOp(".a == .b", []string{" == "}))
	assert.False(t, hasTopLevelOp(`{"a": .x == .y}`, []string{" == "}))
	assert.False(t, hasTopLevelOp(`.a + "=="`, []string{" == "}))
	assert.True(t, hasTopLevelOp(`.a + "=="`, []string{" + "}))
}
