// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/medblog-engine/pkg/types"
)

// Store is a Cache backed by a SQLite database, scoped to one session ID.
// Entries survive process restarts; a new session ID starts with an empty
// view of the same database file.
type Store struct {
	db        *sql.DB
	sessionID string
}

// NewStore opens or creates the session database at path and ensures the
// schema exists.
func NewStore(path, sessionID string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, sessionID: sessionID}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS blog_posts (
		session_id TEXT NOT NULL,
		topic TEXT NOT NULL,
		content TEXT NOT NULL,
		word_count INTEGER NOT NULL,
		sources TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (session_id, topic)
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Get returns the stored post for an exact-match topic within this session.
func (s *Store) Get(topic string) (types.BlogPost, bool, error) {
	var (
		post        types.BlogPost
		sourcesJSON string
	)
	err := s.db.QueryRow(
		`SELECT content, word_count, sources FROM blog_posts WHERE session_id = ? AND topic = ?`,
		s.sessionID, topic,
	).Scan(&post.Content, &post.WordCount, &sourcesJSON)

	if err == sql.ErrNoRows {
		return types.BlogPost{}, false, nil
	}
	if err != nil {
		return types.BlogPost{}, false, fmt.Errorf("querying cached post: %w", err)
	}

	if err := json.Unmarshal([]byte(sourcesJSON), &post.Sources); err != nil {
		return types.BlogPost{}, false, fmt.Errorf("parsing cached sources: %w", err)
	}
	return post, true, nil
}

// Put stores the post, overwriting any prior entry for the topic in this
// session.
func (s *Store) Put(topic string, post types.BlogPost) error {
	sourcesJSON, err := json.Marshal(post.Sources)
	if err != nil {
		return fmt.Errorf("marshaling sources: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO blog_posts (session_id, topic, content, word_count, sources, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id, topic) DO UPDATE SET
			content=excluded.content, word_count=excluded.word_count,
			sources=excluded.sources, created_at=excluded.created_at`,
		s.sessionID, topic, post.Content, post.WordCount,
		string(sourcesJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing cached post: %w", err)
	}
	return nil
}

// Topics lists this session's cached topics in sorted order.
func (s *Store) Topics() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT topic FROM blog_posts WHERE session_id = ? ORDER BY topic`, s.sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing cached topics: %w", err)
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}

// Clear removes all cached posts for this session and reports how many
// were dropped.
func (s *Store) Clear() (int, error) {
	res, err := s.db.Exec(`DELETE FROM blog_posts WHERE session_id = ?`, s.sessionID)
	if err != nil {
		return 0, fmt.Errorf("clearing session cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting cleared rows: %w", err)
	}
	return int(n), nil
}
