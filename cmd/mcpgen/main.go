// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package main is the entry point for the mcpgen CLI.
package main

import (
	"context"
	"os"

	"github.com/stacklok/mcpgen/cmd/mcpgen/app"
	"github.com/stacklok/mcpgen/pkg/logger"
)

func main() {
	// Initialize the logger
	logger.Initialize()

	os.Exit(app.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
