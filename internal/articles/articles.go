// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package articles turns raw search-collaborator text into article records.
// The search collaborator returns best-effort "Key: value" blocks separated
// by "---"; no structural contract is enforced beyond what parses.
package articles

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/medblog-engine/pkg/types"
)

// DefaultJournal is substituted when a search result omits the journal.
const DefaultJournal = "Medical Journal"

const (
	blockSeparator = "---"
	dateFmt        = "2006-01-02"
)

// recognizedKeys is the set of accepted block line keys. Unrecognized keys
// are ignored.
var recognizedKeys = map[string]bool{
	"title":   true,
	"authors": true,
	"journal": true,
	"date":    true,
	"url":     true,
}

// Parse splits raw search text into "---"-delimited blocks and converts each
// block into an Article. Within a block, each line is split on the first
// colon; keys match case-insensitively and later duplicates overwrite
// earlier ones. A block yields an Article only when both title and URL are
// non-empty; otherwise it is dropped silently. Missing journals and dates
// receive defaults. Output order matches input block order, no dedup.
func Parse(raw string) []types.Article {
	var parsed []types.Article

	for _, block := range strings.Split(raw, blockSeparator) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		fields := make(map[string]string)
		for _, line := range strings.Split(block, "\n") {
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			key = strings.ToLower(strings.TrimSpace(key))
			if !recognizedKeys[key] {
				continue
			}
			fields[key] = strings.TrimSpace(value)
		}

		if fields["title"] == "" || fields["url"] == "" {
			continue
		}

		a := types.Article{
			Title:   fields["title"],
			Journal: fields["journal"],
			URL:     fields["url"],
			Date:    fields["date"],
			Authors: fields["authors"],
		}
		if a.Journal == "" {
			a.Journal = DefaultJournal
		}
		if a.Date == "" {
			a.Date = time.Now().Format(dateFmt)
		}
		parsed = append(parsed, a)
	}

	return parsed
}

// Fallback returns the fixed pair of placeholder references used when search
// yields nothing usable for a topic. Deterministic apart from today's date.
func Fallback(topic string) []types.Article {
	today := time.Now().Format(dateFmt)
	return []types.Article{
		{
			Title:   fmt.Sprintf("Current Management of %s", topic),
			Journal: "UpToDate",
			URL:     "https://www.uptodate.com",
			Date:    today,
			Authors: "Medical Faculty",
		},
		{
			Title:   fmt.Sprintf("Clinical Practice Guidelines for %s", topic),
			Journal: "PubMed Central",
			URL:     "https://www.ncbi.nlm.nih.gov/pmc",
			Date:    today,
			Authors: "Medical Associations",
		},
	}
}

// FormatContext renders articles as a numbered context block for the
// generation prompt.
func FormatContext(articles []types.Article) string {
	var b strings.Builder
	for i, a := range articles {
		fmt.Fprintf(&b, "Article %d:\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", a.Title)
		fmt.Fprintf(&b, "Authors: %s\n", a.Authors)
		fmt.Fprintf(&b, "Journal: %s\n", a.Journal)
		fmt.Fprintf(&b, "Date: %s\n", a.Date)
		fmt.Fprintf(&b, "URL: %s\n\n", a.URL)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
