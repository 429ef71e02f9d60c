// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stacklok/mcpgen/pkg/errors"
	"github.com/stacklok/mcpgen/pkg/generator"
	"github.com/stacklok/mcpgen/pkg/logger"
	"github.com/stacklok/mcpgen/pkg/settings"
)

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().String("root", "", "Dotfiles root directory (default: current directory)")
	cmd.Flags().String("source", "", "Path of the generic MCP server config (default: <root>/config/mcp/servers.json)")
	cmd.Flags().String("target", "", "Path of the Claude settings file to write (default: <root>/config/claude/settings.json)")

	for _, name := range []string{"root", "source", "target"} {
		bindFlag(name, cmd.Flags().Lookup(name))
	}
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Errorw("failed to bind flag", "flag", key, "error", err)
	}
}

// resolveOptions builds the generator options from flags and MCPGEN_* variables.
func resolveOptions() (generator.Options, error) {
	root := viper.GetString("root")
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return generator.Options{}, errors.NewInvalidArgumentError("failed to determine working directory", err)
		}
		root = wd
	}

	opts := generator.DefaultOptions(root)
	if source := viper.GetString("source"); source != "" {
		opts.SourcePath = source
	}
	if target := viper.GetString("target"); target != "" {
		opts.TargetPath = target
	}
	return opts, nil
}

func generateCmdFunc(cmd *cobra.Command, _ []string) error {
	opts, err := resolveOptions()
	if err != nil {
		return err
	}

	result, err := generator.Generate(cmd.Context(), opts, settings.Default())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "✅ Generated Claude CLI config from generic MCP config")
	fmt.Fprintf(out, "📁 Source: %s\n", result.SourcePath)
	fmt.Fprintf(out, "📁 Target: %s\n", result.TargetPath)
	return nil
}
