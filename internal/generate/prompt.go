// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/medblog-engine/internal/articles"
	"github.com/pdiddy/medblog-engine/pkg/types"
)

// blogPromptTmpl is the prompt sent to the generation model. It embeds the
// topic and article context and pins the exact section layout the composer
// expects back, starting with a top-level heading.
var blogPromptTmpl = template.Must(template.New("blog").Parse(`Create a comprehensive medical blog post about {{.Topic}} using these articles:

{{.Articles}}
Use this exact format:

# Latest Evidence: {{.Topic}}

[2-3 sentence introduction]

## 🎯 Key Points
- Finding 1 with **statistics**
- Finding 2 with clinical impact
- Finding 3 with practical takeaway

## 📚 Background
[2-3 paragraphs]

## 🔍 Recent Evidence
### Key Findings
[Main results with **statistics**]

### Clinical Implications
[Practical applications]

## 💡 Expert Commentary
[Critical analysis]

## 💎 Clinical Pearls
- Pearl 1
- Pearl 2
- Pearl 3

## 🎯 Bottom Line
[Clear conclusion]

Requirements:
1. Use EXACTLY these headers and emojis
2. Bold all statistics using **
3. Professional but engaging tone
4. ~1000 words
5. Include specific findings from articles
6. Make it evidence-based and practical
`))

// BuildPrompt renders the generation prompt for a topic and its selected
// articles.
func BuildPrompt(topic string, selected []types.Article) (string, error) {
	data := struct {
		Topic    string
		Articles string
	}{
		Topic:    topic,
		Articles: articles.FormatContext(selected),
	}

	var buf bytes.Buffer
	if err := blogPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
