package generate

import (
	"regexp"
	"strings"
)

// SafetyFilter post-processes every outbound response, local or external:
// absolute phrasing is softened, investment advice is neutralized and the
// text is bounded to MaxLen runes.
type SafetyFilter struct {
	MaxLen int
}

func NewSafetyFilter(maxLen int) *SafetyFilter {
	if maxLen <= 0 {
		maxLen = 1500
	}
	return &SafetyFilter{MaxLen: maxLen}
}

type rewrite struct {
	pattern     *regexp.Regexp
	replacement string
}

var rewrites = []rewrite{
	{regexp.MustCompile(`(?i)\byou must\b`), "you may want to"},
	{regexp.MustCompile(`(?i)\byou should\b`), "you could"},
	{regexp.MustCompile(`(?i)\bmust\b`), "may want to"},
	{regexp.MustCompile(`(?i)\bguaranteed\b`), "potentially"},
	{regexp.MustCompile(`(?i)\bguarantee[sd]?\b`), "expect"},
	{regexp.MustCompile(`(?i)\bdefinitely\b`), "likely"},
	{regexp.MustCompile(`(?i)\balways\b`), "generally"},
	{regexp.MustCompile(`(?i)\bwill certainly\b`), "may"},
	{regexp.MustCompile(`(?i)\brisk[- ]free\b`), "lower-risk"},
}

// investPhrase catches "invest in X", "investing in X y" and similar advice
// fragments so they can be replaced wholesale.
var investPhrase = regexp.MustCompile(`(?i)\binvest(?:ing|ment)?s?\s+in\s+\w+(?:\s+\w+)?`)

// assetPush catches direct buy recommendations for speculative assets.
var assetPush = regexp.MustCompile(`(?i)\b(?:buy|purchase)\s+(?:crypto(?:currency)?|bitcoin|stocks?|shares|nfts?)\b`)

const neutralAdvice = "speak to a registered financial advisor about investing"

// Apply rewrites the candidate response into its policy-safe form.
func (f *SafetyFilter) Apply(text string) string {
	out := text

	for _, r := range rewrites {
		out = r.pattern.ReplaceAllString(out, r.replacement)
	}
	out = investPhrase.ReplaceAllString(out, neutralAdvice)
	out = assetPush.ReplaceAllString(out, neutralAdvice)

	out = strings.TrimSpace(out)
	if runes := []rune(out); len(runes) > f.MaxLen {
		out = strings.TrimSpace(string(runes[:f.MaxLen])) + "…"
	}
	return out
}
