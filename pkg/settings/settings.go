// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package settings holds the Claude CLI settings that are layered on top of
// the generic MCP server configuration.
package settings

import (
	"encoding/json"
	"fmt"

	"github.com/tailscale/hujson"
)

// TelemetryEnvVar enables Claude CLI telemetry when set to "1".
const TelemetryEnvVar = "CLAUDE_CODE_ENABLE_TELEMETRY"

// Permissions lists the tool permission rules of the Claude CLI.
type Permissions struct {
	Allow []string `json:"allow"`
	Deny  []string `json:"deny"`
}

// ClaudeSettings is the set of top-level keys written into the Claude CLI
// settings file. Field order is the order keys are emitted in.
type ClaudeSettings struct {
	Permissions         Permissions       `json:"permissions"`
	Env                 map[string]string `json:"env"`
	CleanupPeriodDays   int               `json:"cleanupPeriodDays"`
	IncludeCoAuthoredBy bool              `json:"includeCoAuthoredBy"`
}

// Member is one top-level settings key with its JSON-encoded value.
type Member struct {
	Key   string
	Value json.RawMessage
}

// Default returns the settings applied to every generated config.
// Each call builds a fresh value, so callers cannot affect one another.
func Default() ClaudeSettings {
	return ClaudeSettings{
		Permissions: Permissions{
			Allow: []string{"*"},
			Deny:  []string{},
		},
		Env: map[string]string{
			TelemetryEnvVar: "1",
		},
		CleanupPeriodDays:   30,
		IncludeCoAuthoredBy: true,
	}
}

// Members returns the top-level keys of s in emission order.
func (s ClaudeSettings) Members() ([]Member, error) {
	encoded, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}

	v, err := hujson.Parse(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to parse encoded settings: %w", err)
	}
	obj, ok := v.Value.(*hujson.Object)
	if !ok {
		return nil, fmt.Errorf("encoded settings are not a JSON object")
	}

	members := make([]Member, 0, len(obj.Members))
	for _, m := range obj.Members {
		name, ok := m.Name.Value.(hujson.Literal)
		if !ok {
			return nil, fmt.Errorf("unexpected settings key %s", m.Name.Pack())
		}
		members = append(members, Member{
			Key:   name.String(),
			Value: json.RawMessage(m.Value.Pack()),
		})
	}
	return members, nil
}
