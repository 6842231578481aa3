// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

// Package jslt implements a small JSON-to-JSON transformation language in
// the JSLT family: a value domain, a delimiter-aware splitter, a shape
// classifier, a path resolver, a priority-ordered evaluator dispatch, and a
// transform/validate driver.
package jslt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDouble
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the tagged-union JSON value that flows through evaluation. The
// zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	d    float64
	s    string
	arr  []Value
	obj  *Object
}

// Object is an insertion-ordered string-to-Value mapping, used so that
// constructed objects serialize with the key order their source text wrote
// them in.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObjectValue builds an empty, ready-to-populate Object.
func NewObjectValue() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Set inserts or updates key. Re-setting an existing key keeps its original
// position and replaces the value (last-write-wins on value, first-write
// position on key, matching ordinary JSON object construction).
func (o *Object) Set(key string, v Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value bound to key, if any.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns the object's keys in insertion order.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of keys in the object.
func (o *Object) Len() int {
	return len(o.keys)
}

// Null returns the Null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps a 64-bit signed integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Double wraps an IEEE-754 double.
func Double(d float64) Value { return Value{kind: KindDouble, d: d} }

// String wraps a UTF-8 string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// NewArray wraps an ordered sequence of values.
func NewArray(xs []Value) Value {
	if xs == nil {
		xs = []Value{}
	}
	return Value{kind: KindArray, arr: xs}
}

// NewObject wraps an Object built via NewObjectValue/Set.
func NewObject(o *Object) Value {
	if o == nil {
		o = NewObjectValue()
	}
	return Value{kind: KindObject, obj: o}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload; only meaningful when Kind() == KindBool.
func (v Value) AsBool() bool { return v.b }

// AsInt returns the int payload; only meaningful when Kind() == KindInt.
func (v Value) AsInt() int64 { return v.i }

// AsDouble returns the double payload; only meaningful when Kind() == KindDouble.
func (v Value) AsDouble() float64 { return v.d }

// AsString returns the string payload; only meaningful when Kind() == KindString.
func (v Value) AsString() string { return v.s }

// AsArray returns the array payload; only meaningful when Kind() == KindArray.
func (v Value) AsArray() []Value { return v.arr }

// AsObject returns the object payload; only meaningful when Kind() == KindObject.
func (v Value) AsObject() *Object { return v.obj }

// asNumber reports the numeric value of v and whether v is numeric (Int or
// Double). It is the common path for arithmetic, ordering, and coercion.
func (v Value) asNumber() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindDouble:
		return v.d, true
	default:
		return 0, false
	}
}

// isIntegral reports whether v is an Int (as opposed to a Double).
func (v Value) isIntegral() bool { return v.kind == KindInt }

// Truthy implements the language's if-condition truthiness contract: Null
// and Bool(false) are falsy, everything else (including zero, "", [], {})
// is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	default:
		return true
	}
}

// Display renders v in its addition/string() coercion form: Null becomes
// the empty string, scalars render their plain text, containers render as
// JSON.
func (v Value) Display() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindDouble:
		return formatDouble(v.d)
	case KindString:
		return v.s
	case KindArray, KindObject:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

func formatDouble(d float64) string {
	s := strconv.FormatFloat(d, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// Equal reports structural equality, used by the == / != operators. Int and
// Double compare across kinds by numeric value (5 == 5.0); every other
// cross-kind comparison is false.
func Equal(a, b Value) bool {
	if a.kind == KindNull && b.kind == KindNull {
		return true
	}
	if a.kind == KindNull || b.kind == KindNull {
		return false
	}
	an, aNum := a.asNumber()
	bn, bNum := b.asNumber()
	if aNum && bNum {
		return an == bn
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for _, k := range a.obj.Keys() {
			av, _ := a.obj.Get(k)
			bv, ok := b.obj.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare reports the result of an ordering operator (one of <, <=, >, >=)
// applied to a and b. Null operands, cross-type operands, and non-orderable
// kinds all yield false rather than raising.
func Compare(a, b Value, op string) bool {
	if a.kind == KindNull || b.kind == KindNull {
		return false
	}
	an, aNum := a.asNumber()
	bn, bNum := b.asNumber()
	if aNum && bNum {
		return compareOrdered(an, bn, op)
	}
	if a.kind == KindString && b.kind == KindString {
		return compareOrdered(strings.Compare(a.s, b.s), 0, op)
	}
	return false
}

func compareOrdered[T int | float64](a, b T, op string) bool {
	switch op {
	case ">=":
		return a >= b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case "<":
		return a < b
	default:
		return false
	}
}

// Parse decodes raw JSON bytes into a Value, preserving object key order.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("jslt: parse input: %w", err)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObjectValue()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, _ := keyTok.(string)
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return Value{}, err
			}
			return NewObject(obj), nil
		case '[':
			var arr []Value
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return Value{}, err
			}
			return NewArray(arr), nil
		default:
			return Value{}, fmt.Errorf("jslt: unexpected token %v", t)
		}
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		s := t.String()
		if strings.ContainsAny(s, ".eE") {
			f, err := t.Float64()
			if err != nil {
				return Value{}, err
			}
			return Double(f), nil
		}
		i, err := t.Int64()
		if err != nil {
			f, ferr := t.Float64()
			if ferr != nil {
				return Value{}, err
			}
			return Double(f), nil
		}
		return Int(i), nil
	default:
		return Value{}, fmt.Errorf("jslt: unexpected token type %T", tok)
	}
}

// MarshalJSON renders v as JSON, preserving Object key order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
		return nil
	case KindBool, KindInt, KindDouble, KindString:
		b, err := scalarJSON(v)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	case KindArray:
		buf.WriteByte('[')
		for i, elem := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := elem.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case KindObject:
		buf.WriteByte('{')
		for i, k := range v.obj.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			val, _ := v.obj.Get(k)
			if err := val.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("jslt: cannot marshal kind %s", v.kind)
	}
}

func scalarJSON(v Value) ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindInt:
		return json.Marshal(v.i)
	case KindDouble:
		return json.Marshal(v.d)
	case KindString:
		return json.Marshal(v.s)
	default:
		return nil, fmt.Errorf("jslt: not a scalar: %s", v.kind)
	}
}

// UnmarshalJSON decodes JSON into v, preserving object key order.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
