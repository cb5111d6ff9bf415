// Package guardrails screens inbound messages before they reach any
// provider: content safety, prompt-injection attempts, and PII leaks.
package guardrails

import "regexp"

const (
	CategoryContentSafety   = "content_safety"
	CategoryPromptInjection = "prompt_injection"
	CategoryPII             = "pii_detection"
)

// Result is the screening verdict. Blocked messages carry the reason and
// the category that tripped.
type Result struct {
	Blocked  bool   `json:"blocked"`
	Reason   string `json:"reason,omitempty"`
	Category string `json:"category,omitempty"`
}

var unsafePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(violence|harm|kill|murder|suicide|death)\b`),
	regexp.MustCompile(`(?i)\b(hate|racist|discrimination|nazi|terrorist)\b`),
	regexp.MustCompile(`(?i)\b(illegal|drugs|weapons|bomb|explosive)\b`),
	regexp.MustCompile(`(?i)\b(hack|crack|steal|fraud|scam)\b`),
	regexp.MustCompile(`(?i)\b(porn|sexual|explicit|nude)\b`),
}

var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(previous|all|earlier)\s+(instructions?|prompts?|commands?)`),
	regexp.MustCompile(`(?i)forget\s+(everything|all|previous)`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+`),
	regexp.MustCompile(`(?i)system\s*:\s*`),
	regexp.MustCompile(`(?i)\[INST\]`),
	regexp.MustCompile(`(?i)<\|system\|>`),
	regexp.MustCompile(`(?i)override\s+(previous|system)`),
	regexp.MustCompile(`(?i)new\s+(instructions?|role|persona)`),
	regexp.MustCompile(`(?i)act\s+as\s+if`),
	regexp.MustCompile(`(?i)pretend\s+(you\s+are|to\s+be)`),
	regexp.MustCompile(`(?i)roleplay\s+as`),
	regexp.MustCompile(`(?i)simulate\s+being`),
}

// PII patterns are case-sensitive on purpose: formats, not words.
var piiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),              // SSN
	regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\s?\d{4}\b`),  // credit card
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), // email
	regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b`),              // phone
}

// Screen checks a message against all pattern groups in order. First match
// wins; a clean message returns the zero verdict.
func Screen(message string) Result {
	for _, p := range unsafePatterns {
		if p.MatchString(message) {
			return Result{
				Blocked:  true,
				Reason:   "Content contains potentially harmful or unsafe material",
				Category: CategoryContentSafety,
			}
		}
	}

	for _, p := range injectionPatterns {
		if p.MatchString(message) {
			return Result{
				Blocked:  true,
				Reason:   "Potential prompt injection detected",
				Category: CategoryPromptInjection,
			}
		}
	}

	for _, p := range piiPatterns {
		if p.MatchString(message) {
			return Result{
				Blocked:  true,
				Reason:   "Personally Identifiable Information (PII) detected",
				Category: CategoryPII,
			}
		}
	}

	return Result{}
}
