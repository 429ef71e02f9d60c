// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app provides the command tree of the mcpgen command-line application.
package app

import (
	"context"
	goerrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/mcpgen/pkg/errors"
	"github.com/stacklok/mcpgen/pkg/logger"
)

// envPrefix is the prefix of environment variables overriding flags, e.g. MCPGEN_ROOT.
const envPrefix = "MCPGEN"

// NewRootCmd creates a new root command for the mcpgen CLI. Running it
// without a subcommand generates the Claude settings file.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "mcpgen",
		DisableAutoGenTag: true,
		Short:             "Generate the Claude CLI settings file from the generic MCP server config",
		Long: `mcpgen reads the generic MCP server configuration (config/mcp/servers.json),
adds the Claude CLI settings (permissions, environment, cleanup period and
co-author trailer) and writes the result to config/claude/settings.json.

Top-level keys of the source are kept; Claude settings replace source keys
with the same name.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// Re-initialize now that --debug has been parsed.
			logger.Initialize()
		},
		RunE: generateCmdFunc,
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	addGenerateFlags(rootCmd)

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	bindFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the command tree with args and returns the process exit code.
// It is the only place where errors are turned into an exit status.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		var genErr *errors.Error
		if goerrors.As(err, &genErr) {
			fmt.Fprintf(stderr, "❌ Failed to generate Claude config: %v\n", err)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
