// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/holomush/jsltcore/pkg/jslt"
)

// transformConfig holds configuration for the transform command.
type transformConfig struct {
	programPath string
	inputPath   string
}

// newTransformCmd creates the transform subcommand.
func newTransformCmd() *cobra.Command {
	cfg := &transformConfig{}

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Evaluate a jslt program against a JSON input document",
		Long: `Reads a jslt program and a JSON input document, evaluates the
program against the input, and prints the resulting JSON to stdout.

Program and input default to stdin when their respective flags are
omitted; at most one of --program/--input may be left to read from stdin.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTransform(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.programPath, "program", "", "path to the jslt program file (default: stdin)")
	cmd.Flags().StringVar(&cfg.inputPath, "input", "", "path to the JSON input file (default: stdin)")

	return cmd
}

func runTransform(cmd *cobra.Command, cfg *transformConfig) error {
	if cfg.programPath == "" && cfg.inputPath == "" {
		return fmt.Errorf("jslt: at least one of --program or --input must be a file path; both cannot read from stdin")
	}

	program, input, err := readProgramAndInput(cfg.programPath, cfg.inputPath)
	if err != nil {
		return err
	}

	inputVal, err := jslt.Parse(input)
	if err != nil {
		return fmt.Errorf("jslt: parse input: %w", err)
	}

	it, err := newInterpreterFromFlags(cmd)
	if err != nil {
		return err
	}

	result := it.Transform(inputVal, program)
	if !result.Success {
		return fmt.Errorf("jslt: transform failed: %s", result.Error)
	}

	out, err := json.MarshalIndent(result.Output, "", "  ")
	if err != nil {
		return fmt.Errorf("jslt: marshal output: %w", err)
	}
	cmd.Println(string(out))
	return nil
}

func readProgramAndInput(programPath, inputPath string) (program string, input []byte, err error) {
	if programPath == "" {
		data, err := readAllStdin()
		if err != nil {
			return "", nil, fmt.Errorf("jslt: read program from stdin: %w", err)
		}
		program = string(data)
	} else {
		data, err := os.ReadFile(programPath)
		if err != nil {
			return "", nil, fmt.Errorf("jslt: read program file %s: %w", programPath, err)
		}
		program = string(data)
	}

	if inputPath == "" {
		data, err := readAllStdin()
		if err != nil {
			return "", nil, fmt.Errorf("jslt: read input from stdin: %w", err)
		}
		input = data
	} else {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return "", nil, fmt.Errorf("jslt: read input file %s: %w", inputPath, err)
		}
		input = data
	}

	return program, input, nil
}

func readAllStdin() ([]byte, error) {
	return io.ReadAll(os.Stdin)
}
