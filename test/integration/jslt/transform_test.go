// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

//go:build integration

package jslt_test

import (
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/jsltcore/pkg/jslt"
)

var _ = Describe("Transform", func() {
	var it *jslt.Interpreter

	BeforeEach(func() {
		it = jslt.NewInterpreter()
	})

	parse := func(raw string) jslt.Value {
		v, err := jslt.Parse([]byte(raw))
		Expect(err).NotTo(HaveOccurred())
		return v
	}

	Describe("identity and path access", func() {
		It("returns the whole document for the identity path", func() {
			input := parse(`{"a":1,"b":[1,2,3]}`)
			result := it.Transform(input, ".")
			Expect(result.Success).To(BeTrue())
			Expect(jslt.Equal(result.Output, input)).To(BeTrue())
		})

		It("resolves nested field and index access", func() {
			result := it.Transform(parse(`{"a":{"b":[10,20]}}`), ".a.b[1]")
			Expect(result.Success).To(BeTrue())
			Expect(result.Output).To(Equal(jslt.Int(20)))
		})

		It("resolves a missing path to null rather than erroring", func() {
			result := it.Transform(parse(`{"name":"ada"}`), ".missing.deeper")
			Expect(result.Success).To(BeTrue())
			Expect(result.Output.IsNull()).To(BeTrue())
		})
	})

	Describe("object and array construction", func() {
		It("builds an object mixing size() and a for-loop map", func() {
			result := it.Transform(parse(`{"xs":[1,2,3]}`),
				`{ "count": size(.xs), "doubled": for (.xs) . + . }`)
			Expect(result.Success).To(BeTrue())
			Expect(jslt.Equal(result.Output, parse(`{"count":3,"doubled":[2,4,6]}`))).To(BeTrue())
		})
	})

	Describe("control flow", func() {
		It("evaluates an if/else expression", func() {
			result := it.Transform(parse(`{"n":5}`), `if (.n > 3) "big" else "small"`)
			Expect(result.Success).To(BeTrue())
			Expect(result.Output).To(Equal(jslt.String("big")))
		})

		It("rejects a for loop over a non-array", func() {
			result := it.Transform(parse(`{"x":5}`), `for (.x) .`)
			Expect(result.Success).To(BeFalse())
			Expect(result.Error).To(Equal("For loop requires an array"))
		})
	})

	Describe("let bindings", func() {
		It("binds a variable for use in an object construction", func() {
			result := it.Transform(parse(`{}`), `let greeting = "hi" in { "msg": $greeting + ", world" }`)
			Expect(result.Success).To(BeTrue())
			Expect(jslt.Equal(result.Output, parse(`{"msg":"hi, world"}`))).To(BeTrue())
		})

		It("shadows an outer binding without mutating it", func() {
			result := it.Transform(parse(`{}`),
				`let x = 1 in { "a": $x, "b": let x = 2 in $x, "c": $x }`)
			Expect(result.Success).To(BeTrue())
			Expect(jslt.Equal(result.Output, parse(`{"a":1,"b":2,"c":1}`))).To(BeTrue())
		})

		It("chains let lines across a multi-line program", func() {
			program := "let a = .x\nlet b = .y\n$a + $b"
			result := it.Transform(parse(`{"x":1,"y":2}`), program)
			Expect(result.Success).To(BeTrue())
			Expect(result.Output).To(Equal(jslt.Int(3)))
		})
	})

	Describe("comparisons and addition", func() {
		It("treats comparisons against null as false", func() {
			result := it.Transform(parse(`{"x":null}`), `.x > 0`)
			Expect(result.Success).To(BeTrue())
			Expect(result.Output).To(Equal(jslt.Bool(false)))
		})

		It("concatenates when any addition operand is a string", func() {
			result := it.Transform(parse(`{}`), `"a" + 1`)
			Expect(result.Success).To(BeTrue())
			Expect(result.Output).To(Equal(jslt.String("a1")))
		})

		It("promotes an integer sum to double when any operand is a double", func() {
			result := it.Transform(parse(`{}`), `1 + 2.5`)
			Expect(result.Success).To(BeTrue())
			Expect(result.Output).To(Equal(jslt.Double(3.5)))
		})
	})

	Describe("error reporting", func() {
		It("reports the exact message for an undefined variable", func() {
			result := it.Transform(parse(`{}`), `$missing`)
			Expect(result.Success).To(BeFalse())
			Expect(result.Error).To(Equal("Undefined variable: $missing"))
		})

		It("reports the exact message for an unknown function", func() {
			result := it.Transform(parse(`{}`), `foo(.x)`)
			Expect(result.Success).To(BeFalse())
			Expect(result.Error).To(Equal("Unknown function: foo"))
		})
	})

	Describe("Validate", func() {
		It("reports a valid program with no suggestions", func() {
			result := it.Validate(".a.b")
			Expect(result.Valid).To(BeTrue())
			Expect(result.Suggestions).To(BeEmpty())
		})

		It("suggests the registered function names for an unknown function", func() {
			result := it.Validate("foo(.x)")
			Expect(result.Valid).To(BeFalse())
			Expect(result.Suggestions).To(ConsistOf(
				"Available functions: size, string, number, boolean, round",
			))
		})

		It("suggests the available constructs for an unrecognized expression", func() {
			result := it.Validate("@@@")
			Expect(result.Valid).To(BeFalse())
			Expect(result.Suggestions).To(HaveLen(4))
		})
	})
})
