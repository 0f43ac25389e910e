// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose assembles generated prose and its sources into the final
// blog post document.
package compose

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/medblog-engine/pkg/types"
)

const dateFmt = "2006-01-02"

// Compose builds the finished document for a topic. When the prose does not
// open with a top-level heading one is synthesized from the topic. The word
// count covers the prose only; the references list and footer appended here
// are excluded. The cache stores the returned post whole, so a later cache
// hit replays exactly this document.
func Compose(topic, body string, sources []types.Article) types.BlogPost {
	body = strings.TrimSpace(body)

	if !strings.HasPrefix(body, "# ") {
		body = fmt.Sprintf("# Latest Evidence: %s\n\n%s", topic, body)
	}

	wordCount := len(strings.Fields(body))

	var b strings.Builder
	fmt.Fprintf(&b, "# Latest Evidence Update: %s\n\n", topic)
	b.WriteString(body)
	b.WriteString("\n\n---\n### References\n")
	for _, a := range sources {
		fmt.Fprintf(&b, "- %s: [%s](%s)\n", a.Journal, a.Title, a.URL)
	}
	fmt.Fprintf(&b, "\n---\n*Word count: %d*  \nGenerated: %s\n",
		wordCount, time.Now().Format(dateFmt))

	return types.BlogPost{
		Content:   b.String(),
		WordCount: wordCount,
		Sources:   sources,
	}
}
