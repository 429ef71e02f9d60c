// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package generator derives the Claude CLI settings file from the generic
// MCP server configuration.
//
// The source document is read, its top-level keys are shallow-merged with
// the Claude settings (settings win on collision) and the result is written
// to the target path. None of the functions in this package exit the
// process; errors are returned as *errors.Error values of type file_read,
// parse or file_write so the caller can decide how to report them.
package generator

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"github.com/tidwall/gjson"

	"github.com/stacklok/mcpgen/pkg/errors"
	"github.com/stacklok/mcpgen/pkg/fileutils"
	"github.com/stacklok/mcpgen/pkg/lockfile"
	"github.com/stacklok/mcpgen/pkg/logger"
	"github.com/stacklok/mcpgen/pkg/settings"
)

// Default locations relative to the dotfiles root.
var (
	SourceRelPath = []string{"config", "mcp", "servers.json"}
	TargetRelPath = []string{"config", "claude", "settings.json"}
)

// mcpServersKey is the source key holding the server definitions.
const mcpServersKey = "mcpServers"

// Options controls a single generation run.
type Options struct {
	// SourcePath is the generic MCP configuration to read.
	SourcePath string
	// TargetPath is the Claude settings file to write.
	TargetPath string
	// FileMode is the permission of the written file. Defaults to 0644.
	FileMode os.FileMode
	// LockTimeout bounds the wait for the target lock. Defaults to lockfile.DefaultTimeout.
	LockTimeout time.Duration
}

// Result describes a completed generation.
type Result struct {
	SourcePath string
	TargetPath string
	// Servers is the number of entries under mcpServers in the source.
	Servers int
}

// DefaultOptions returns options pointing at the default source and target
// below root.
func DefaultOptions(root string) Options {
	return Options{
		SourcePath: filepath.Join(append([]string{root}, SourceRelPath...)...),
		TargetPath: filepath.Join(append([]string{root}, TargetRelPath...)...),
	}
}

func applyDefaults(opts *Options) error {
	defaults := Options{
		FileMode:    0o644,
		LockTimeout: lockfile.DefaultTimeout,
	}
	// Only zero fields are filled; caller values are kept.
	if err := mergo.Merge(opts, defaults); err != nil {
		return errors.NewInternalError("failed to apply default options", err)
	}
	return nil
}

// Generate reads opts.SourcePath, merges s into it and writes the result to
// opts.TargetPath, replacing any previous file. A symlinked target is written
// through and an existing file keeps its permissions. Nothing is written when
// the source cannot be read or parsed.
func Generate(ctx context.Context, opts Options, s settings.ClaudeSettings) (*Result, error) {
	if err := applyDefaults(&opts); err != nil {
		return nil, err
	}
	if opts.SourcePath == "" {
		return nil, errors.NewInvalidArgumentError("source path is required", nil)
	}
	if opts.TargetPath == "" {
		return nil, errors.NewInvalidArgumentError("target path is required", nil)
	}

	// #nosec G304 -- path is chosen by the user invoking the tool
	content, err := os.ReadFile(opts.SourcePath)
	if err != nil {
		return nil, errors.NewFileReadError(opts.SourcePath, err)
	}

	out, err := Render(content, s)
	if err != nil {
		return nil, err
	}

	if err := fileutils.ValidateTargetPath(opts.TargetPath); err != nil {
		return nil, errors.NewFileWriteError(opts.TargetPath, err)
	}

	err = lockfile.WithLock(ctx, opts.TargetPath, opts.LockTimeout, func() error {
		return fileutils.AtomicWriteFile(opts.TargetPath, out, opts.FileMode)
	})
	if err != nil {
		logger.Warnw("failed to write Claude settings file", "target", opts.TargetPath, "error", err)
		return nil, errors.NewFileWriteError(opts.TargetPath, err)
	}

	result := &Result{
		SourcePath: opts.SourcePath,
		TargetPath: opts.TargetPath,
		Servers:    countServers(content),
	}
	logger.Debugw("generated Claude settings file",
		"source", result.SourcePath,
		"target", result.TargetPath,
		"servers", result.Servers,
		"bytes", len(out),
	)
	return result, nil
}

func countServers(content []byte) int {
	servers := gjson.GetBytes(content, mcpServersKey)
	if !servers.IsObject() {
		return 0
	}
	return len(servers.Map())
}
