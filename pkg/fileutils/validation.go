// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package fileutils provides file operation utilities including atomic writes
// and destination path checks.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
)

// ValidateTargetPath checks that path can be the destination of a write:
// its parent must be an existing directory and the path itself, if present,
// must not be a directory.
//
// Returns nil if the path is usable, or an error describing why it is not.
func ValidateTargetPath(path string) error {
	if path == "" {
		return fmt.Errorf("target path is empty")
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("parent directory %s is not accessible: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("parent %s is not a directory", dir)
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("target %s is a directory", path)
	}

	return nil
}
