// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// validateConfig holds configuration for the validate command.
type validateConfig struct {
	programPath string
}

// newValidateCmd creates the validate subcommand.
func newValidateCmd() *cobra.Command {
	cfg := &validateConfig{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a jslt program for syntax and reference errors",
		Long: `Reads a jslt program and runs it against a fixed probe document,
reporting whether it evaluates without error. On failure, prints the error
message plus any suggestions the interpreter can offer.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.programPath, "program", "", "path to the jslt program file (default: stdin)")

	return cmd
}

func runValidate(cmd *cobra.Command, cfg *validateConfig) error {
	var data []byte
	var err error
	if cfg.programPath == "" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("jslt: read program from stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(cfg.programPath)
		if err != nil {
			return fmt.Errorf("jslt: read program file %s: %w", cfg.programPath, err)
		}
	}

	it, err := newInterpreterFromFlags(cmd)
	if err != nil {
		return err
	}

	result := it.Validate(string(data))
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("jslt: marshal validation result: %w", err)
	}
	cmd.Println(string(out))

	if !result.Valid {
		return fmt.Errorf("jslt: program is invalid")
	}
	return nil
}
