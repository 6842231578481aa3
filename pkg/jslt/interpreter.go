// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

package jslt

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

const defaultMaxDepth = 256

// TransformResult is the outcome of a transform call: either a successful
// output value or an error message, always timed.
type TransformResult struct {
	Success         bool    `json:"success"`
	Output          Value   `json:"output,omitempty"`
	Error           string  `json:"error,omitempty"`
	ExecutionTimeMs float64 `json:"execution_time_ms"`
}

// ValidateResult is the outcome of a validate call.
type ValidateResult struct {
	Valid       bool     `json:"valid"`
	Error       string   `json:"error,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Interpreter evaluates JSLT-family programs against JSON input. It is
// safe to reuse across many sequential or concurrent Transform/Validate
// calls: each call gets its own isolated global scope, and the function
// and evaluator tables are read-only once the interpreter has handled its
// first call.
type Interpreter struct {
	logger        *slog.Logger
	maxDepth      int
	mu            sync.RWMutex
	functions     map[string]Function
	functionOrder []string
	evaluators    []constructEvaluator
	sealed        bool
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithLogger overrides the default (slog.Default()) logger.
func WithLogger(logger *slog.Logger) Option {
	return func(it *Interpreter) { it.logger = logger }
}

// WithMaxDepth overrides the recursion-depth guard (default 256).
func WithMaxDepth(depth int) Option {
	return func(it *Interpreter) { it.maxDepth = depth }
}

// WithFunctions restricts the builtin function table to the named subset,
// dropping any default builtin not listed. Unknown names are ignored. A
// host that wants the full default set should simply omit this option.
func WithFunctions(names ...string) Option {
	return func(it *Interpreter) {
		allowed := make(map[string]struct{}, len(names))
		for _, n := range names {
			allowed[n] = struct{}{}
		}
		for name := range it.functions {
			if _, ok := allowed[name]; !ok {
				delete(it.functions, name)
			}
		}
		kept := it.functionOrder[:0]
		for _, name := range it.functionOrder {
			if _, ok := it.functions[name]; ok {
				kept = append(kept, name)
			}
		}
		it.functionOrder = kept
	}
}

// NewInterpreter builds an Interpreter with the five default builtin
// functions and the default priority-ordered evaluator list registered.
func NewInterpreter(opts ...Option) *Interpreter {
	it := &Interpreter{
		logger:        slog.Default(),
		maxDepth:      defaultMaxDepth,
		functions:     defaultFunctions(),
		functionOrder: append([]string(nil), defaultFunctionOrder...),
	}
	it.evaluators = defaultEvaluators()
	sortEvaluators(it.evaluators)
	for _, opt := range opts {
		opt(it)
	}
	return it
}

func sortEvaluators(evs []constructEvaluator) {
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].priority > evs[j].priority })
}

// RegisterFunction adds or replaces a builtin in the function table. It is
// a host-side Go API call made at construction time, not a capability the
// evaluated program can reach — calling it after the interpreter has
// served its first Transform/Validate is a silent no-op, since the
// function table is documented as read-only during evaluation.
func (it *Interpreter) RegisterFunction(name string, fn Function) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.sealed {
		return
	}
	if _, exists := it.functions[name]; !exists {
		it.functionOrder = append(it.functionOrder, name)
	}
	it.functions[name] = fn
}

// RegisterEvaluator adds an additional construct evaluator, re-sorting the
// dispatch list by priority. Like RegisterFunction, it is ignored once the
// interpreter has served its first call.
func (it *Interpreter) RegisterEvaluator(name string, priority int, canEval func(string) bool, eval func(*Interpreter, string, Value, *Scope, int) (Value, error)) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.sealed {
		return
	}
	it.evaluators = append(it.evaluators, constructEvaluator{
		name:     name,
		priority: priority,
		canEval:  canEval,
		eval: func(it *Interpreter, expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
			return eval(it, expr, ctx, scope, fr.depth)
		},
	})
	sortEvaluators(it.evaluators)
}

func (it *Interpreter) lookupFunction(name string) (Function, bool) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	fn, ok := it.functions[name]
	return fn, ok
}

// registeredFunctionNames reports function names in registration order
// (the builtin table order, then any host-registered additions), not
// sorted — spec.md §8's suggestion text is order-sensitive.
func (it *Interpreter) registeredFunctionNames() []string {
	it.mu.RLock()
	defer it.mu.RUnlock()
	names := make([]string, len(it.functionOrder))
	copy(names, it.functionOrder)
	return names
}

func (it *Interpreter) seal() {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.sealed = true
}

// LanguageVersion reports the semver of the expression grammar this
// interpreter implements.
func (it *Interpreter) LanguageVersion() string { return LanguageVersion }

// eval is the priority-ordered dispatch loop: the first registered
// evaluator whose canEval fires on the trimmed expression handles it.
func (it *Interpreter) eval(expr string, ctx Value, scope *Scope, fr evalFrame) (Value, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Value{}, errEmptyExpression()
	}
	if fr.depth >= it.maxDepth {
		return Value{}, errDepthExceeded(it.maxDepth)
	}
	fr.depth++

	it.mu.RLock()
	evaluators := it.evaluators
	it.mu.RUnlock()

	for _, ev := range evaluators {
		if ev.canEval(expr) {
			return ev.eval(it, expr, ctx, scope, fr)
		}
	}
	return Value{}, errUnknownConstruct(expr)
}

// matchLetLine recognizes a single top-level "let name = expr" line during
// multi-line preprocessing.
func matchLetLine(line string) (name, value string, ok bool) {
	if !strings.HasPrefix(line, "let ") {
		return "", "", false
	}
	m := letHeadRe.FindStringSubmatch(strings.TrimPrefix(line, "let "))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// evalProgram runs the driver's program-shape decision: multi-line
// let-chain preprocessing when the trimmed program mixes "let " lines with
// a newline, otherwise a single whole-program evaluation.
func (it *Interpreter) evalProgram(program string, input Value, global *globalScope) (Value, error) {
	program = strings.TrimSpace(program)
	if program == "" {
		return Value{}, errEmptyExpression()
	}
	if strings.Contains(program, "let ") && strings.Contains(program, "\n") {
		return it.evalMultiline(program, input, global)
	}
	return it.eval(program, input, nil, evalFrame{global: global})
}

func (it *Interpreter) evalMultiline(program string, input Value, global *globalScope) (Value, error) {
	lines := strings.Split(program, "\n")
	var scope *Scope
	var body []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if name, valueExpr, ok := matchLetLine(trimmed); ok {
			val, err := it.eval(valueExpr, input, scope, evalFrame{global: global})
			if err != nil {
				return Value{}, err
			}
			scope = scope.Bind(name, val)
			continue
		}
		body = append(body, trimmed)
	}

	if len(body) == 0 {
		return Null(), nil
	}
	return it.eval(strings.Join(body, "\n"), input, scope, evalFrame{global: global})
}

// Transform evaluates program against input, returning a success envelope
// with the output value or a failure envelope with the error message,
// always carrying the elapsed wall-clock time in milliseconds.
func (it *Interpreter) Transform(input Value, program string) TransformResult {
	output, err, elapsed := it.runProgram(input, program)
	if err != nil {
		return TransformResult{Success: false, Error: err.Error(), ExecutionTimeMs: elapsed}
	}
	return TransformResult{Success: true, Output: output, ExecutionTimeMs: elapsed}
}

// runProgram is the shared core of Transform and Validate: it seals the
// interpreter, times the call, logs at debug level, and returns the typed
// error (not yet stringified) so Validate can inspect its oops code.
func (it *Interpreter) runProgram(input Value, program string) (Value, error, float64) {
	it.seal()
	start := time.Now()
	id := ulid.Make()

	output, err := it.evalProgram(program, input, newGlobalScope())
	elapsed := elapsedMs(start)

	if err != nil {
		it.logger.Debug("jslt transform failed",
			"invocation_id", id.String(),
			"elapsed_ms", elapsed,
			"program_len", len(program),
			"error", err.Error(),
		)
		return Value{}, err, elapsed
	}
	it.logger.Debug("jslt transform ok",
		"invocation_id", id.String(),
		"elapsed_ms", elapsed,
		"program_len", len(program),
	)
	return output, nil, elapsed
}

func elapsedMs(start time.Time) float64 {
	ms := float64(time.Since(start)) / float64(time.Millisecond)
	return math.Round(ms*1000) / 1000
}

// validateProbe is a fixed input document exercising the common shapes a
// program might touch: a string field, an integer, an array, and a nested
// object with its own string field.
func validateProbe() Value {
	obj := NewObjectValue()
	obj.Set("test", String("value"))
	obj.Set("array", NewArray([]Value{Int(1), Int(2), Int(3)}))
	obj.Set("name", String("John Doe"))
	obj.Set("age", Int(25))
	obj.Set("city", String("New York"))
	obj.Set("skills", NewArray([]Value{String("JavaScript"), String("Python"), String("Java")}))

	profile := NewObjectValue()
	profile.Set("name", String("Ada"))
	obj.Set("profile", NewObject(profile))

	return NewObject(obj)
}

// Validate reports whether program evaluates without error against a fixed
// probe input, attaching suggestion strings keyed off the failing error's
// oops code when it does not.
func (it *Interpreter) Validate(program string) ValidateResult {
	_, err, _ := it.runProgram(validateProbe(), program)
	if err == nil {
		return ValidateResult{Valid: true}
	}
	return ValidateResult{
		Valid:       false,
		Error:       err.Error(),
		Suggestions: it.suggestionsFor(err),
	}
}

func (it *Interpreter) suggestionsFor(err error) []string {
	var suggestions []string

	var code any
	if oopsErr, ok := oops.AsOops(err); ok {
		code = oopsErr.Code()
	}
	switch code {
	case CodeUnknownFunction:
		suggestions = append(suggestions, fmt.Sprintf("Available functions: %s", strings.Join(it.registeredFunctionNames(), ", ")))
	case CodeUnknownConstruct:
		suggestions = append(suggestions,
			`Use .field to access object fields`,
			`Use .array[0] to access array elements`,
			`Use { "key": value } to construct an object`,
			`Use [ value1, value2 ] to construct an array`,
		)
	}
	return suggestions
}
