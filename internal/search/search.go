// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries literature APIs and returns raw delimited article
// text for the parser.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/medblog-engine/pkg/types"
)

// Backend searches a single literature API. Implementations return raw text
// containing zero or more "---"-delimited "Key: value" blocks. The pipeline
// and tests substitute implementations per the Strategy pattern.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.SearchConfig) (string, error)
}

// qualityKeywords bias the primary query toward high-evidence publication types.
var qualityKeywords = []string{
	"systematic review",
	"meta-analysis",
	"clinical trial",
	"randomized controlled trial",
	"practice guideline",
	"consensus statement",
}

// clinicalKeywords narrow the primary query to treatment-oriented material.
var clinicalKeywords = []string{
	"treatment",
	"management",
	"therapy",
	"outcome",
}

// broadKeywords loosen the retry query issued when the primary search
// parses to nothing.
var broadKeywords = []string{
	"medicine",
	"clinical",
	"medical",
	"treatment",
}

// BuildQuery returns the primary search query for a topic: the quoted topic
// combined with the quality and clinical keyword groups.
func BuildQuery(topic string) string {
	return fmt.Sprintf("%q AND (%s) AND (%s)",
		topic, orClause(qualityKeywords), orClause(clinicalKeywords))
}

// BuildBroadQuery returns the loosened retry query for a topic.
func BuildBroadQuery(topic string) string {
	return fmt.Sprintf("%q AND (%s)", topic, orClause(broadKeywords))
}

// orClause joins quoted keywords with OR.
func orClause(keywords []string) string {
	quoted := make([]string, len(keywords))
	for i, kw := range keywords {
		quoted[i] = fmt.Sprintf("%q", kw)
	}
	return strings.Join(quoted, " OR ")
}
