package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRetriever struct {
	chunks []Chunk
	err    error
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string, topK int) ([]Chunk, error) {
	return s.chunks, s.err
}

func TestContextBlock_Empty(t *testing.T) {
	assert.Empty(t, ContextBlock(nil))
}

func TestContextBlock_NumbersAndTruncates(t *testing.T) {
	long := strings.Repeat("z", 600)
	block := ContextBlock([]Chunk{
		{Content: "first passage", Score: 0.9},
		{Content: long, Score: 0.5},
	})

	assert.Contains(t, block, "1. first passage")
	assert.Contains(t, block, "2. "+strings.Repeat("z", 500)+"...")
	assert.NotContains(t, block, strings.Repeat("z", 501))
	assert.Contains(t, block, "knowledge base")
}

func TestContextBlock_TruncatesOnRuneBoundary(t *testing.T) {
	// 498 ASCII bytes followed by multi-byte runes puts the cut point
	// inside a rune; the truncation must back off to a valid boundary.
	content := strings.Repeat("a", 498) + strings.Repeat("日本語", 10)
	block := ContextBlock([]Chunk{{Content: content}})

	assert.True(t, utf8.ValidString(block))
	assert.NotContains(t, block, string(utf8.RuneError))
}

func TestAugment_NilRetriever(t *testing.T) {
	block, chunks, err := Augment(context.Background(), nil, "query")
	require.NoError(t, err)
	assert.Empty(t, block)
	assert.Nil(t, chunks)
}

func TestAugment_ReturnsChunks(t *testing.T) {
	r := &stubRetriever{chunks: []Chunk{{Content: "doc", Score: 1}}}
	block, chunks, err := Augment(context.Background(), r, "query")
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
	assert.Contains(t, block, "1. doc")
}

func TestAugment_PropagatesError(t *testing.T) {
	r := &stubRetriever{err: errors.New("index offline")}
	block, chunks, err := Augment(context.Background(), r, "query")
	assert.Error(t, err)
	assert.Empty(t, block)
	assert.Nil(t, chunks)
}
