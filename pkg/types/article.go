// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the medblog-engine pipeline.
package types

// Article holds metadata for one literature reference backing a blog post.
// The parser only constructs an Article when both Title and URL are present;
// the remaining fields carry defaults when the search result omits them.
type Article struct {
	// Title is the article title as returned by the search collaborator.
	Title string `json:"title" yaml:"title"`

	// Journal is the publication venue. Defaults to "Medical Journal" when
	// the search result does not name one.
	Journal string `json:"journal" yaml:"journal"`

	// URL links to the article.
	URL string `json:"url" yaml:"url"`

	// Date is free-form date text from the search result, or today's date
	// in YYYY-MM-DD form when absent.
	Date string `json:"date" yaml:"date"`

	// Authors is the author list as a single string. May be empty.
	Authors string `json:"authors,omitempty" yaml:"authors,omitempty"`
}

// BlogPost is a composed blog post for one topic. It is immutable after
// composition: the cache returns it unchanged on later hits.
type BlogPost struct {
	// Content is the fully assembled document: header, prose, references,
	// and footer.
	Content string `json:"content" yaml:"content"`

	// WordCount counts whitespace-delimited tokens in the post prose,
	// measured before the references and footer are appended.
	WordCount int `json:"word_count" yaml:"word_count"`

	// Sources lists the articles the post was generated from, in the order
	// they were selected.
	Sources []Article `json:"sources" yaml:"sources"`
}
