// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/medblog-engine/pkg/types"
)

func sampleSources() []types.Article {
	return []types.Article{
		{Title: "Trial A", Journal: "NEJM", URL: "https://a.example", Date: "2024-01-01"},
		{Title: "Guideline B", Journal: "Lancet", URL: "https://b.example", Date: "2024-02-01"},
	}
}

func TestComposeHeadingAutoInsertion(t *testing.T) {
	post := Compose("migraine", "Some prose without a heading.", sampleSources())

	if !strings.Contains(post.Content, "# Latest Evidence: migraine") {
		t.Error("composed content should carry a synthesized topic heading")
	}
}

func TestComposeKeepsExistingHeading(t *testing.T) {
	post := Compose("migraine", "# My Own Heading\n\nProse.", sampleSources())

	if strings.Contains(post.Content, "# Latest Evidence: migraine") {
		t.Error("existing heading should not be replaced")
	}
	if !strings.Contains(post.Content, "# My Own Heading") {
		t.Error("existing heading should survive composition")
	}
}

func TestComposeWordCountExcludesReferences(t *testing.T) {
	body := "# Title\n\none two three four five"
	post := Compose("topic", body, sampleSources())

	want := len(strings.Fields(body))
	if post.WordCount != want {
		t.Errorf("WordCount = %d, want %d", post.WordCount, want)
	}
	// The full document is longer than the counted prose.
	if total := len(strings.Fields(post.Content)); total <= post.WordCount {
		t.Errorf("document token count %d should exceed prose count %d", total, post.WordCount)
	}
	if !strings.Contains(post.Content, fmt.Sprintf("*Word count: %d*", want)) {
		t.Error("footer should record the prose word count")
	}
}

func TestComposeReferencesInSourceOrder(t *testing.T) {
	post := Compose("topic", "# H\n\nProse.", sampleSources())

	if !strings.Contains(post.Content, "### References") {
		t.Fatal("composed content missing references section")
	}
	first := strings.Index(post.Content, "- NEJM: [Trial A](https://a.example)")
	second := strings.Index(post.Content, "- Lancet: [Guideline B](https://b.example)")
	if first < 0 || second < 0 {
		t.Fatalf("references not rendered as expected:\n%s", post.Content)
	}
	if first > second {
		t.Error("references out of source order")
	}
}

func TestComposeHeaderAndFooter(t *testing.T) {
	post := Compose("atrial fibrillation", "# H\n\nProse.", nil)

	if !strings.HasPrefix(post.Content, "# Latest Evidence Update: atrial fibrillation\n") {
		t.Errorf("document should open with the update header:\n%s", post.Content)
	}
	today := time.Now().Format("2006-01-02")
	if !strings.Contains(post.Content, "Generated: "+today) {
		t.Error("footer should record the generation date")
	}
}

func TestComposeSourcesPreserved(t *testing.T) {
	sources := sampleSources()
	post := Compose("topic", "# H\n\nProse.", sources)

	if len(post.Sources) != len(sources) {
		t.Fatalf("len(Sources) = %d, want %d", len(post.Sources), len(sources))
	}
	for i := range sources {
		if post.Sources[i] != sources[i] {
			t.Errorf("Sources[%d] = %+v, want %+v", i, post.Sources[i], sources[i])
		}
	}
}
