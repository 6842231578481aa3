// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestTransformCmd_Success(t *testing.T) {
	dir := t.TempDir()
	programPath := writeTempFile(t, dir, "program.jslt", `.a.b[1]`)
	inputPath := writeTempFile(t, dir, "input.json", `{"a":{"b":[10,20]}}`)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"transform", "--program", programPath, "--input", inputPath})

	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), "20") {
		t.Errorf("output = %q, want it to contain 20", out.String())
	}
}

func TestTransformCmd_RequiresAtLeastOneFilePath(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"transform"})

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	if err := cmd.Execute(); err == nil {
		t.Fatal("Execute() expected error when both program and input read from stdin")
	}
}

func TestTransformCmd_UnknownFunctionFails(t *testing.T) {
	dir := t.TempDir()
	programPath := writeTempFile(t, dir, "program.jslt", `foo(.x)`)
	inputPath := writeTempFile(t, dir, "input.json", `{}`)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"transform", "--program", programPath, "--input", inputPath})

	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err == nil {
		t.Fatal("Execute() expected error for unknown function")
	}
}

func TestValidateCmd_Success(t *testing.T) {
	dir := t.TempDir()
	programPath := writeTempFile(t, dir, "program.jslt", `.a.b`)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"validate", "--program", programPath})

	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), `"valid": true`) {
		t.Errorf("output = %q, want valid: true", out.String())
	}
}

func TestValidateCmd_Invalid(t *testing.T) {
	dir := t.TempDir()
	programPath := writeTempFile(t, dir, "program.jslt", `foo(.x)`)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"validate", "--program", programPath})

	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err == nil {
		t.Fatal("Execute() expected error for invalid program")
	}
	if !strings.Contains(out.String(), "Unknown function: foo") {
		t.Errorf("output = %q, want it to mention the unknown function", out.String())
	}
}

func TestRootCmd_Help(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, phrase := range []string{"transform", "validate"} {
		if !strings.Contains(out.String(), phrase) {
			t.Errorf("help output missing %q", phrase)
		}
	}
}
