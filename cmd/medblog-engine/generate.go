package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/medblog-engine/internal/cache"
	"github.com/pdiddy/medblog-engine/internal/generate"
	"github.com/pdiddy/medblog-engine/internal/pipeline"
	"github.com/pdiddy/medblog-engine/internal/search"
	"github.com/pdiddy/medblog-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic...]",
	Short: "Generate an evidence-based blog post for a medical topic",
	Long: `Generate searches recent medical literature for the topic, asks the
configured language model for the prose, and writes the composed document
with a references section to stdout (or a file with --output).

Posts are cached per topic within a session. Re-running the same topic in
the same session replays the cached document without searching or calling
the model; pass --no-cache to force regeneration.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")

		noCache, _ := cmd.Flags().GetBool("no-cache")
		session, _ := cmd.Flags().GetString("session")
		dbPath, _ := cmd.Flags().GetString("db")
		model, _ := cmd.Flags().GetString("model")
		maxArticles, _ := cmd.Flags().GetInt("max-articles")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		asJSON, _ := cmd.Flags().GetBool("json")
		output, _ := cmd.Flags().GetString("output")

		exaKey := secretDefault("exa-api-key", os.Getenv("EXA_API_KEY"))
		groqKey := secretDefault("groq-api-key", os.Getenv("GROQ_API_KEY"))
		if groqKey == "" {
			return fmt.Errorf("no Groq API key: set GROQ_API_KEY or .secrets/groq-api-key")
		}

		if session == "" {
			session = "medical-blog-" + slug(topic)
		}

		cfg := types.PipelineConfig{
			Search: types.SearchConfig{
				HTTPConfig: types.HTTPConfig{
					Timeout:   timeout,
					UserAgent: "medblog-engine/" + version,
				},
				APIKey:      exaKey,
				MaxArticles: maxArticles,
			},
			Generation: types.GenerationConfig{
				AIConfig: types.AIConfig{
					Model:  model,
					APIKey: groqKey,
				},
			},
			Cache: types.CacheConfig{
				SessionID: session,
				DBPath:    dbPath,
			},
		}

		client := &http.Client{Timeout: timeout}

		var postCache cache.Cache
		if dbPath != "" {
			store, err := cache.NewStore(dbPath, session)
			if err != nil {
				return fmt.Errorf("opening session cache: %w", err)
			}
			defer store.Close()
			postCache = store
		} else {
			postCache = cache.NewMemoryCache()
		}

		gen := pipeline.NewGenerator(
			&search.ExaBackend{Client: client, APIKey: exaKey},
			&generate.GroqBackend{Client: client, APIKey: groqKey, Model: model},
			postCache,
			cfg,
		)

		fmt.Fprintf(os.Stderr, "Generating post for %q (session %s)\n", topic, session)

		post, err := gen.Run(context.Background(), topic, !noCache, os.Stderr)
		if err != nil {
			return err
		}

		var rendered []byte
		if asJSON {
			rendered, err = json.MarshalIndent(post, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding post: %w", err)
			}
			rendered = append(rendered, '\n')
		} else {
			rendered = []byte(post.Content)
		}

		if output != "" {
			if err := os.WriteFile(output, rendered, 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %s (%d words)\n", output, post.WordCount)
			return nil
		}

		_, err = os.Stdout.Write(rendered)
		return err
	},
}

// slug lowercases the topic and replaces whitespace runs with hyphens,
// giving a stable default session ID per topic.
func slug(topic string) string {
	return strings.Join(strings.Fields(strings.ToLower(topic)), "-")
}

func init() {
	generateCmd.Flags().Bool("no-cache", false, "regenerate even if the topic is cached in this session")
	generateCmd.Flags().String("session", "", "session ID scoping the cache (default: derived from the topic)")
	generateCmd.Flags().String("db", "", "SQLite file backing the session cache (default: in-memory)")
	generateCmd.Flags().String("model", "llama-3.3-70b-versatile", "AI model identifier for generation")
	generateCmd.Flags().Int("max-articles", 3, "maximum number of articles passed to generation")
	generateCmd.Flags().Duration("timeout", 60*time.Second, "HTTP request timeout")
	generateCmd.Flags().Bool("json", false, "output the post as JSON with word count and sources")
	generateCmd.Flags().String("output", "", "write the post to a file instead of stdout")

	rootCmd.AddCommand(generateCmd)
}
