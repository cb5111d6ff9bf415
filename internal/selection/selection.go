// Package selection implements the deterministic model-selection heuristic:
// a complexity score over the message text plus a strict precedence chain
// from user preference down to a hardcoded default.
package selection

import (
	"strings"

	"github.com/nexusai/router-api/pkg/api"
)

// DefaultModel is the final fallback when nothing in the catalog fits.
const DefaultModel = "llama-3.1-8b-instant"

// Flagship vision models, most preferred first.
var flagshipVisionModels = []string{
	"meta-llama/llama-4-maverick-17b-128e-instruct",
	"meta-llama/llama-4-scout-17b-16e-instruct",
}

var technicalKeywords = []string{
	"code", "programming", "algorithm", "function", "class", "variable",
	"database", "sql", "api", "json", "xml", "regex", "debug", "error",
	"analyze", "calculate", "solve", "optimize", "implement", "design",
}

var mathKeywords = []string{
	"equation", "formula", "calculate", "mathematics", "statistics", "probability",
}

var creativeKeywords = []string{
	"story", "poem", "creative", "write", "essay", "article",
}

// Complexity scores a message in [1,10]. Pure function of the text, so the
// same input always ranks the same.
func Complexity(message string) int {
	score := 1
	lower := strings.ToLower(message)

	switch {
	case len(message) > 200:
		score += 2
	case len(message) > 100:
		score++
	}

	technical := 0
	for _, kw := range technicalKeywords {
		if strings.Contains(lower, kw) {
			technical++
		}
	}
	if technical > 3 {
		technical = 3
	}
	score += technical

	for _, kw := range mathKeywords {
		if strings.Contains(lower, kw) {
			score += 2
			break
		}
	}

	for _, kw := range creativeKeywords {
		if strings.Contains(lower, kw) {
			score++
			break
		}
	}

	if strings.Count(message, "?") > 1 {
		score++
	}

	if strings.Count(message, ";")+strings.Count(lower, " and ")+strings.Count(lower, "also") > 2 {
		score++
	}

	if score > 10 {
		score = 10
	}
	return score
}

// BestModel picks a model ID from the available catalog. Precedence: the
// caller's preferred model if it is actually available, then vision models
// when an image is attached, then a complexity-matched tier, then the
// fastest thing standing, then DefaultModel.
func BestModel(message string, hasImage bool, preferred string, available []api.Model) string {
	if preferred != "" {
		for _, m := range available {
			if m.ID == preferred {
				return preferred
			}
		}
	}

	if hasImage {
		if id := visionModel(available); id != "" {
			return id
		}
	}

	score := Complexity(message)
	if id := tierModel(score, available); id != "" {
		return id
	}
	if id := fastestModel(available); id != "" {
		return id
	}
	return DefaultModel
}

func visionModel(available []api.Model) string {
	for _, flagship := range flagshipVisionModels {
		for _, m := range available {
			if m.ID == flagship {
				return m.ID
			}
		}
	}
	for _, m := range available {
		if m.HasCapability("vision") || strings.Contains(strings.ToLower(m.ID), "vision") {
			return m.ID
		}
	}
	return ""
}

func tierModel(score int, available []api.Model) string {
	switch {
	case score >= 7:
		for _, m := range available {
			id := strings.ToLower(m.ID)
			if strings.Contains(id, "70b") || strings.Contains(id, "90b") || m.HasCapability("complex-tasks") {
				return m.ID
			}
		}
	case score >= 4:
		for _, m := range available {
			id := strings.ToLower(m.ID)
			if strings.Contains(id, "11b") && !strings.Contains(id, "vision") {
				return m.ID
			}
		}
	default:
		for _, m := range available {
			if strings.Contains(strings.ToLower(m.ID), "8b-instant") {
				return m.ID
			}
		}
		return cheapestModel(available)
	}
	return ""
}

// fastestModel approximates speed by cost: the cheapest hosted model is in
// practice the smallest and quickest.
func fastestModel(available []api.Model) string {
	for _, m := range available {
		if strings.Contains(strings.ToLower(m.ID), "instant") || m.HasCapability("fast-response") {
			return m.ID
		}
	}
	return cheapestModel(available)
}

func cheapestModel(available []api.Model) string {
	best := ""
	bestCost := 0.0
	for _, m := range available {
		if best == "" || m.CostPer1KTokens < bestCost {
			best = m.ID
			bestCost = m.CostPer1KTokens
		}
	}
	return best
}
