// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
)

// maxSymlinkHops bounds symlink resolution, matching the kernel's ELOOP limit.
const maxSymlinkHops = 40

// AtomicWriteFile writes data to path by writing a temporary file in the same
// directory and renaming it over the destination. Readers observe either the
// previous contents or the new contents, never a partial write.
//
// When path is a symlink the write goes to the file it points to and the link
// is kept. When the destination already exists its permission bits are kept
// and perm only applies to newly created files.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	target, err := resolveSymlinks(path)
	if err != nil {
		return err
	}

	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".tmp-"+filepath.Base(target)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// Removes the temp file on any failure below; after a successful rename
	// the path no longer exists and the error is ignored.
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// resolveSymlinks follows path through any chain of symlinks and returns the
// final non-link path. A dangling link resolves to the path it names, so the
// write creates the link's target.
func resolveSymlinks(path string) (string, error) {
	for range maxSymlinkHops {
		info, err := os.Lstat(path)
		if os.IsNotExist(err) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}

		link, err := os.Readlink(path)
		if err != nil {
			return "", fmt.Errorf("failed to read symlink %s: %w", path, err)
		}
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(path), link)
		}
		path = link
	}
	return "", fmt.Errorf("too many levels of symbolic links resolving %s", path)
}
