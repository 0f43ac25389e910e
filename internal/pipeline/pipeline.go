// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences cache lookup, literature search, prose
// generation, and composition for one topic.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/medblog-engine/internal/articles"
	"github.com/pdiddy/medblog-engine/internal/cache"
	"github.com/pdiddy/medblog-engine/internal/compose"
	"github.com/pdiddy/medblog-engine/internal/generate"
	"github.com/pdiddy/medblog-engine/internal/search"
	"github.com/pdiddy/medblog-engine/pkg/types"
)

const defaultMaxArticles = 3

// SearchError wraps a search collaborator failure. The pipeline maps it to
// the fallback references; it never reaches the caller.
type SearchError struct {
	Err error
}

func (e *SearchError) Error() string { return "search failed: " + e.Err.Error() }

func (e *SearchError) Unwrap() error { return e.Err }

// ErrNoArticles indicates both the primary and broadened searches parsed to
// zero articles. Like SearchError it selects the fallback branch; no other
// error kind does.
var ErrNoArticles = errors.New("no articles parsed from search results")

// Generator runs the blog post pipeline for a session. Collaborators and
// the cache are injected so tests substitute doubles and each session owns
// its own cache.
type Generator struct {
	searcher search.Backend
	writer   generate.Backend
	cache    cache.Cache
	cfg      types.PipelineConfig
}

// NewGenerator wires a pipeline from its collaborators. cache may be nil to
// disable caching entirely.
func NewGenerator(searcher search.Backend, writer generate.Backend, c cache.Cache, cfg types.PipelineConfig) *Generator {
	return &Generator{
		searcher: searcher,
		writer:   writer,
		cache:    c,
		cfg:      cfg,
	}
}

// Run generates the blog post for topic, or replays the cached one when
// useCache is set and the topic has been generated before in this session.
// Search failures and empty results fall back to fixed placeholder
// references; generation failures propagate and leave the cache untouched.
// Progress notes go to w.
func (g *Generator) Run(ctx context.Context, topic string, useCache bool, w io.Writer) (types.BlogPost, error) {
	if useCache && g.cache != nil {
		post, ok, err := g.cache.Get(topic)
		if err != nil {
			fmt.Fprintf(w, "warning: cache lookup failed: %v\n", err)
		} else if ok {
			fmt.Fprintf(w, "using cached post for %q\n", topic)
			return post, nil
		}
	}

	selected, err := g.fetchArticles(ctx, topic, w)
	if err != nil {
		var se *SearchError
		if errors.As(err, &se) || errors.Is(err, ErrNoArticles) {
			fmt.Fprintf(w, "warning: %v; using fallback references\n", err)
			selected = articles.Fallback(topic)
		} else {
			return types.BlogPost{}, err
		}
	}

	fmt.Fprintf(w, "generating post from %d article(s)\n", len(selected))

	prompt, err := generate.BuildPrompt(topic, selected)
	if err != nil {
		return types.BlogPost{}, fmt.Errorf("building prompt: %w", err)
	}

	body, err := generate.WithRetry(ctx, g.writer, prompt, g.cfg.Generation.MaxRetries)
	if err != nil {
		return types.BlogPost{}, fmt.Errorf("generating post: %w", err)
	}

	post := compose.Compose(topic, body, selected)

	if g.cache != nil {
		if err := g.cache.Put(topic, post); err != nil {
			fmt.Fprintf(w, "warning: caching post failed: %v\n", err)
		}
	}

	return post, nil
}

// fetchArticles runs the primary query, the single broadened retry, and
// top-N truncation. The only error kinds it returns are SearchError and
// ErrNoArticles, both of which the caller maps to the fallback references.
func (g *Generator) fetchArticles(ctx context.Context, topic string, w io.Writer) ([]types.Article, error) {
	cfg := g.cfg.Search

	raw, err := g.searcher.Search(ctx, search.BuildQuery(topic), cfg)
	if err != nil {
		return nil, &SearchError{Err: err}
	}
	found := articles.Parse(raw)

	if len(found) == 0 {
		fmt.Fprintf(w, "no articles found, broadening search\n")
		raw, err = g.searcher.Search(ctx, search.BuildBroadQuery(topic), cfg)
		if err != nil {
			return nil, &SearchError{Err: err}
		}
		found = articles.Parse(raw)
	}

	if len(found) == 0 {
		return nil, ErrNoArticles
	}

	maxArticles := cfg.MaxArticles
	if maxArticles <= 0 {
		maxArticles = defaultMaxArticles
	}
	if len(found) > maxArticles {
		found = found[:maxArticles]
	}

	fmt.Fprintf(w, "found %d article(s)\n", len(found))
	return found, nil
}
