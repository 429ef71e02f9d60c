// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package lockfile serializes writers of a file through an advisory lock
// held on a sibling ".lock" file.
package lockfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"
)

// DefaultTimeout is the maximum time to wait for a file lock
const DefaultTimeout = 1 * time.Second

// retryDelay is how often acquisition is retried while the lock is held elsewhere.
const retryDelay = 100 * time.Millisecond

// PathFor returns the lock file path guarding path.
func PathFor(path string) string {
	return path + ".lock"
}

// WithLock runs fn while holding the advisory lock for path. It waits at most
// timeout for the lock; a zero timeout uses DefaultTimeout. The lock file is
// removed once fn returns.
func WithLock(ctx context.Context, path string, timeout time.Duration, fn func() error) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	lockPath := PathFor(path)
	fileLock := flock.New(lockPath)

	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, retryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock: timeout after %v", timeout)
	}
	defer release(fileLock)

	return fn()
}

func release(fileLock *flock.Flock) {
	if err := fileLock.Unlock(); err != nil {
		slog.Debug("failed to release file lock", "path", fileLock.Path(), "error", err)
	}
	if err := os.Remove(fileLock.Path()); err != nil && !os.IsNotExist(err) {
		slog.Debug("failed to remove lock file", "path", fileLock.Path(), "error", err)
	}
}
