// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/holomush/jsltcore/pkg/jslt"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the jslt CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jslt",
		Short: "jslt - a JSON-to-JSON transformation interpreter",
		Long: `jslt evaluates small JSLT-family transformation programs against
JSON input and prints the resulting JSON document.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (jslt.yaml)")
	cmd.PersistentFlags().Int("max_depth", 0, "override the recursion-depth guard (0 = use config/default)")

	cmd.AddCommand(newTransformCmd())
	cmd.AddCommand(newValidateCmd())

	return cmd
}

// newInterpreterFromFlags builds an Interpreter from the merged
// config-file/flag settings (max depth, function allow-list).
func newInterpreterFromFlags(cmd *cobra.Command) (*jslt.Interpreter, error) {
	cfg, err := loadConfig(configFile, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("jslt: load config: %w", err)
	}

	opts := []jslt.Option{jslt.WithMaxDepth(cfg.MaxDepth)}
	if len(cfg.Functions) > 0 {
		opts = append(opts, jslt.WithFunctions(cfg.Functions...))
	}
	return jslt.NewInterpreter(opts...), nil
}
