// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/stacklok/mcpgen/pkg/errors"
	"github.com/stacklok/mcpgen/pkg/logger"
	"github.com/stacklok/mcpgen/pkg/settings"
)

// indent is the indentation unit of the written document.
const indent = "  "

// patchOp is a single RFC 6902 JSON Patch operation.
type patchOp struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Parse parses content as a JSON object. Comments and trailing commas are
// rejected, as is any top-level value other than an object.
func Parse(content []byte) (hujson.Value, error) {
	v, err := hujson.Parse(content)
	if err != nil {
		return hujson.Value{}, errors.NewParseError("source is not valid JSON", err)
	}
	if !v.IsStandard() {
		return hujson.Value{}, errors.NewParseError("source is not valid JSON: comments and trailing commas are not allowed", nil)
	}
	if _, ok := v.Value.(*hujson.Object); !ok {
		return hujson.Value{}, errors.NewParseError("source document is not a JSON object", nil)
	}
	return v, nil
}

// Merge returns a shallow merge of source and s. Every top-level key of s
// replaces the key of the same name in source, keeping its position; keys
// source lacks are appended in the order of s. Nested values are not merged.
// A key repeated in source is collapsed to one member holding the last value
// at the first position. source is not modified.
func Merge(source hujson.Value, s settings.ClaudeSettings) (hujson.Value, error) {
	merged := source.Clone()
	obj, ok := merged.Value.(*hujson.Object)
	if !ok {
		return hujson.Value{}, errors.NewParseError("source document is not a JSON object", nil)
	}

	members, err := s.Members()
	if err != nil {
		return hujson.Value{}, errors.NewInternalError("failed to encode settings", err)
	}

	existing := collapseDuplicates(obj)

	ops := make([]patchOp, 0, len(members))
	for _, m := range members {
		op := "add"
		if existing[m.Key] {
			op = "replace"
			logger.Debugw("settings key overrides source value", "key", m.Key)
		}
		ops = append(ops, patchOp{Op: op, Path: "/" + pointerEscaper.Replace(m.Key), Value: m.Value})
	}
	if len(ops) == 0 {
		return merged, nil
	}

	patch, err := json.Marshal(ops)
	if err != nil {
		return hujson.Value{}, errors.NewInternalError("failed to encode settings patch", err)
	}
	if err := merged.Patch(patch); err != nil {
		return hujson.Value{}, errors.NewInternalError("failed to patch source document", err)
	}
	return merged, nil
}

// Format serializes v with two-space indentation and a single trailing newline.
func Format(v hujson.Value) ([]byte, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, v.Pack()); err != nil {
		return nil, errors.NewInternalError("failed to compact merged document", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return nil, errors.NewInternalError("failed to indent merged document", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Render parses content, merges s into it and returns the formatted result.
// It has no side effects.
func Render(content []byte, s settings.ClaudeSettings) ([]byte, error) {
	source, err := Parse(content)
	if err != nil {
		return nil, err
	}
	merged, err := Merge(source, s)
	if err != nil {
		return nil, err
	}
	return Format(merged)
}

// collapseDuplicates removes repeated top-level names from obj, keeping the
// first position and the last value of each, and returns the names present.
func collapseDuplicates(obj *hujson.Object) map[string]bool {
	index := make(map[string]int, len(obj.Members))
	members := obj.Members[:0:0]
	for _, m := range obj.Members {
		name, ok := m.Name.Value.(hujson.Literal)
		if !ok {
			members = append(members, m)
			continue
		}
		key := name.String()
		if i, seen := index[key]; seen {
			logger.Debugw("duplicate key in source, keeping last value", "key", key)
			members[i].Value = m.Value
			continue
		}
		index[key] = len(members)
		members = append(members, m)
	}
	obj.Members = members

	existing := make(map[string]bool, len(index))
	for key := range index {
		existing[key] = true
	}
	return existing
}
