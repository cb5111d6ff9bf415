package modeldata

import "strings"

// nonChatModels are known non-completion models that must never be routed
// to a chat endpoint.
var nonChatModels = map[string]struct{}{
	"whisper-large-v3":           {},
	"whisper-large-v3-turbo":     {},
	"distil-whisper-large-v3-en": {},
	"whisper-1":                  {},
	"tts-1":                      {},
	"tts-1-hd":                   {},
	"dall-e-2":                   {},
	"dall-e-3":                   {},
	"text-embedding-ada-002":     {},
	"text-embedding-3-small":     {},
	"text-embedding-3-large":     {},
}

var nonChatKeywords = []string{"whisper", "tts", "dall-e", "embedding", "moderation"}

// IsChatModel reports whether a model identifier supports chat completions.
// Speech, image-generation, embedding and moderation models are filtered out
// both by exact ID and by keyword.
func IsChatModel(modelID string) bool {
	lower := strings.ToLower(modelID)
	if _, ok := nonChatModels[lower]; ok {
		return false
	}
	for _, kw := range nonChatKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}
