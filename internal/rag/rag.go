// Package rag augments prompts with retrieved document context. The index
// itself lives behind the Retriever interface; this package only formats
// what a retriever returns into the system prompt.
package rag

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Chunk is one retrieved passage with its relevance score.
type Chunk struct {
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Retriever finds the passages most relevant to a query. Implementations
// are external; a nil retriever disables augmentation entirely.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]Chunk, error)
}

// DefaultTopK is how many chunks are pulled per query.
const DefaultTopK = 3

// chunkPreviewLen caps how much of each chunk lands in the prompt.
const chunkPreviewLen = 500

// ContextBlock formats retrieved chunks into the text appended to the
// system prompt. Empty input yields the empty string.
func ContextBlock(chunks []Chunk) string {
	if len(chunks) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\nRelevant context from knowledge base:\n")
	for i, c := range chunks {
		fmt.Fprintf(&b, "%d. %s...\n", i+1, truncate(c.Content, chunkPreviewLen))
	}
	b.WriteString("\nUse the provided context to enhance your responses when relevant.")
	return b.String()
}

// truncate cuts s to at most max bytes without splitting a UTF-8 rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// Augment retrieves context for query and returns the formatted block plus
// the raw chunks. Retrieval failures degrade to no augmentation rather than
// failing the chat request.
func Augment(ctx context.Context, r Retriever, query string) (string, []Chunk, error) {
	if r == nil || query == "" {
		return "", nil, nil
	}
	chunks, err := r.Retrieve(ctx, query, DefaultTopK)
	if err != nil {
		return "", nil, err
	}
	return ContextBlock(chunks), chunks, nil
}
