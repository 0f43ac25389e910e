// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/medblog-engine/pkg/types"
)

// ExportEntry holds one cached post with its topic key for export.
type ExportEntry struct {
	Topic     string          `json:"topic" yaml:"topic"`
	Content   string          `json:"content" yaml:"content"`
	WordCount int             `json:"word_count" yaml:"word_count"`
	Sources   []types.Article `json:"sources" yaml:"sources"`
}

// ExportYAML writes the session's cached posts to path as YAML, topics in
// sorted order.
func (s *Store) ExportYAML(path string) error {
	entries, err := s.exportEntries()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeExport(path, data)
}

// ExportJSON writes the session's cached posts to path as indented JSON,
// topics in sorted order.
func (s *Store) ExportJSON(path string) error {
	entries, err := s.exportEntries()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeExport(path, append(data, '\n'))
}

func (s *Store) exportEntries() ([]ExportEntry, error) {
	topics, err := s.Topics()
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, 0, len(topics))
	for _, topic := range topics {
		post, ok, err := s.Get(topic)
		if err != nil {
			return nil, fmt.Errorf("reading %q for export: %w", topic, err)
		}
		if !ok {
			continue
		}
		entries = append(entries, ExportEntry{
			Topic:     topic,
			Content:   post.Content,
			WordCount: post.WordCount,
			Sources:   post.Sources,
		})
	}

	return entries, nil
}

func writeExport(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
