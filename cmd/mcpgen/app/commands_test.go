// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/stacklok/mcpgen/pkg/generator"
)

// newDotfilesRoot creates a temporary dotfiles tree; source is written to the
// default source path unless it is nil.
func newDotfilesRoot(t *testing.T, source []byte) (string, generator.Options) {
	t.Helper()

	root := t.TempDir()
	opts := generator.DefaultOptions(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(opts.SourcePath), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Dir(opts.TargetPath), 0o755))
	if source != nil {
		require.NoError(t, os.WriteFile(opts.SourcePath, source, 0o644))
	}
	return root, opts
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecute_Generates(t *testing.T) { //nolint:paralleltest // Uses global viper state
	root, opts := newDotfilesRoot(t, []byte(`{"mcpServers": {"foo": {"cmd": "bar"}}}`))

	code, stdout, stderr := run(t, "--root", root)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Generated Claude CLI config")
	assert.Contains(t, stdout, "Source: "+opts.SourcePath)
	assert.Contains(t, stdout, "Target: "+opts.TargetPath)

	written, err := os.ReadFile(opts.TargetPath)
	require.NoError(t, err)
	assert.Equal(t, "bar", gjson.GetBytes(written, "mcpServers.foo.cmd").String())
	assert.Equal(t, int64(30), gjson.GetBytes(written, "cleanupPeriodDays").Int())
	assert.True(t, gjson.GetBytes(written, "includeCoAuthoredBy").Bool())
}

func TestExecute_ExplicitPaths(t *testing.T) { //nolint:paralleltest // Uses global viper state
	dir := t.TempDir()
	source := filepath.Join(dir, "servers.json")
	target := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(source, []byte(`{}`), 0o644))

	code, _, stderr := run(t, "--source", source, "--target", target)
	require.Equal(t, 0, code, stderr)

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, gjson.GetBytes(written, "permissions").Exists())
}

func TestExecute_RootFromEnvironment(t *testing.T) { //nolint:paralleltest // Uses environment variables
	root, opts := newDotfilesRoot(t, []byte(`{}`))
	t.Setenv("MCPGEN_ROOT", root)

	code, _, stderr := run(t)
	require.Equal(t, 0, code, stderr)

	_, err := os.Stat(opts.TargetPath)
	assert.NoError(t, err)
}

func TestExecute_Failures(t *testing.T) { //nolint:paralleltest // Uses global viper state
	tests := []struct {
		name       string
		source     []byte
		wantStderr []string
	}{
		{
			name:       "missing source",
			source:     nil,
			wantStderr: []string{"❌ Failed to generate Claude config", "servers.json"},
		},
		{
			name:       "invalid json",
			source:     []byte("not valid json"),
			wantStderr: []string{"❌ Failed to generate Claude config", "not valid JSON"},
		},
	}

	for _, tt := range tests { //nolint:paralleltest // Uses global viper state
		t.Run(tt.name, func(t *testing.T) {
			root, opts := newDotfilesRoot(t, tt.source)

			code, stdout, stderr := run(t, "--root", root)
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)
			for _, want := range tt.wantStderr {
				assert.Contains(t, stderr, want)
			}

			_, err := os.Stat(opts.TargetPath)
			assert.True(t, os.IsNotExist(err), "no output should be written")
		})
	}
}

func TestExecute_WorkingDirectoryRemoved(t *testing.T) { //nolint:paralleltest // Changes the working directory
	if runtime.GOOS == "windows" {
		t.Skip("the working directory cannot be removed on windows")
	}

	dir := filepath.Join(t.TempDir(), "gone")
	require.NoError(t, os.Mkdir(dir, 0o755))
	t.Chdir(dir)
	require.NoError(t, os.Remove(dir))

	code, stdout, stderr := run(t)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "❌ Failed to generate Claude config")
	assert.Contains(t, stderr, "failed to determine working directory")
}

func TestExecute_RejectsArguments(t *testing.T) { //nolint:paralleltest // Uses global viper state
	code, _, stderr := run(t, "unexpected")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")
}

func TestVersionCmd(t *testing.T) { //nolint:paralleltest // Uses global viper state
	code, stdout, _ := run(t, "version")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "mcpgen ")
	assert.Contains(t, stdout, "Go version:")

	code, stdout, _ = run(t, "version", "--json")
	require.Equal(t, 0, code)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "platform")
}
