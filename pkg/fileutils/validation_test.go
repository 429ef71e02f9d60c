// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTargetPath(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	existingFile := filepath.Join(tempDir, "settings.json")
	require.NoError(t, os.WriteFile(existingFile, []byte(`{}`), 0o644))

	notADir := filepath.Join(tempDir, "plain")
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0o644))

	existingDir := filepath.Join(tempDir, "claude")
	require.NoError(t, os.Mkdir(existingDir, 0o755))

	tests := []struct {
		name      string
		path      string
		wantError string
	}{
		{name: "new file in existing directory", path: filepath.Join(tempDir, "new.json")},
		{name: "existing file", path: existingFile},
		{name: "empty path", path: "", wantError: "target path is empty"},
		{name: "missing parent", path: filepath.Join(tempDir, "missing", "settings.json"), wantError: "is not accessible"},
		{name: "parent is a file", path: filepath.Join(notADir, "settings.json"), wantError: "is not a directory"},
		{name: "target is a directory", path: existingDir, wantError: "is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateTargetPath(tt.path)
			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}
