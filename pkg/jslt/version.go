// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

package jslt

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// LanguageVersion is the semantic version of the expression grammar and
// evaluator semantics implemented by this package. Hosts embedding multiple
// interpreter versions can branch on it instead of probing behavior.
const LanguageVersion = "1.0.0"

var languageVersion = mustParseVersion(LanguageVersion)

func mustParseVersion(s string) *semver.Version {
	v, err := semver.NewVersion(s)
	if err != nil {
		panic(fmt.Sprintf("jslt: invalid LanguageVersion %q: %v", s, err))
	}
	return v
}

// Version returns the parsed LanguageVersion.
func Version() *semver.Version { return languageVersion }
