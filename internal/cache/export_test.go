// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yaml.in/yaml/v3"
)

func TestStoreExportYAML(t *testing.T) {
	s := newTestStore(t, "session-1")
	require.NoError(t, s.Put("b topic", samplePost("second doc")))
	require.NoError(t, s.Put("a topic", samplePost("first doc")))

	path := filepath.Join(t.TempDir(), "export.yaml")
	require.NoError(t, s.ExportYAML(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []ExportEntry
	require.NoError(t, yaml.Unmarshal(data, &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, "a topic", entries[0].Topic)
	assert.Equal(t, "first doc", entries[0].Content)
	assert.Equal(t, 42, entries[0].WordCount)
	require.Len(t, entries[0].Sources, 1)
	assert.Equal(t, "Trial A", entries[0].Sources[0].Title)
	assert.Equal(t, "b topic", entries[1].Topic)
}

func TestStoreExportJSON(t *testing.T) {
	s := newTestStore(t, "session-1")
	require.NoError(t, s.Put("topic", samplePost("doc")))

	path := filepath.Join(t.TempDir(), "nested", "export.json")
	require.NoError(t, s.ExportJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []ExportEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "topic", entries[0].Topic)
	assert.Equal(t, "doc", entries[0].Content)
}

func TestStoreExportEmptySession(t *testing.T) {
	s := newTestStore(t, "session-1")

	path := filepath.Join(t.TempDir(), "export.yaml")
	require.NoError(t, s.ExportYAML(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []ExportEntry
	require.NoError(t, yaml.Unmarshal(data, &entries))
	assert.Empty(t, entries)
}
