// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

package jslt

import (
	"regexp"
	"strconv"
	"strings"
)

var pathSegmentRe = regexp.MustCompile(`^([^.\[]+)\[(\d+)\](.*)$`)

// resolvePath walks a path expression (beginning with ".") against ctx. It
// never errors: any shape mismatch or missing field yields Null.
func resolvePath(path string, ctx Value) Value {
	if path == "." {
		return ctx
	}
	rest := strings.TrimPrefix(path, ".")
	current := ctx

	for rest != "" {
		if m := pathSegmentRe.FindStringSubmatch(rest); m != nil {
			fieldName, idxStr, remainder := m[1], m[2], m[3]
			current = fieldOf(current, fieldName)
			if current.IsNull() {
				return Null()
			}
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return Null()
			}
			current = indexOf(current, idx)
			if current.IsNull() {
				return Null()
			}
			rest = strings.TrimPrefix(remainder, ".")
			continue
		}

		dotPos := strings.IndexByte(rest, '.')
		bracketPos := strings.IndexByte(rest, '[')
		if dotPos == -1 && bracketPos == -1 {
			return fieldOf(current, rest)
		}

		sep := dotPos
		if bracketPos != -1 && (sep == -1 || bracketPos < sep) {
			sep = bracketPos
		}
		fieldName := rest[:sep]
		current = fieldOf(current, fieldName)
		if current.IsNull() {
			return Null()
		}
		if sep == dotPos {
			rest = rest[dotPos+1:]
		} else {
			rest = rest[bracketPos:]
		}
	}
	return current
}

func fieldOf(v Value, name string) Value {
	if v.Kind() != KindObject {
		return Null()
	}
	val, ok := v.AsObject().Get(name)
	if !ok {
		return Null()
	}
	return val
}

func indexOf(v Value, idx int) Value {
	if v.Kind() != KindArray {
		return Null()
	}
	arr := v.AsArray()
	if idx < 0 || idx >= len(arr) {
		return Null()
	}
	return arr[idx]
}
