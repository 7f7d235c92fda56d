package assistant

import (
	"regexp"
	"strings"
)

// ResponsePostProcessor strips identity leakage from raw model output: models
// occasionally open with a self-introduction or echo fragments of the persona
// instructions despite being told not to.
type ResponsePostProcessor struct {
	leadIntro   *regexp.Regexp
	selfRef     *regexp.Regexp
	echoedSetup *regexp.Regexp
}

func NewResponsePostProcessor() *ResponsePostProcessor {
	// The persona surname alone is enough to anchor the self-reference
	// patterns; matching any "Dr. <name>" would mangle legitimate advice
	// like "ask Dr. Smith about your prescription".
	return &ResponsePostProcessor{
		// "Hello, I'm Dr. Nasreen Fatima. ..." -> "Hello! ..."
		leadIntro: regexp.MustCompile(`(?i)^(hello|hi|hey|greetings)[,!]?\s+(i'?m|i am|this is)\s+dr\.?\s+[^.!\n]*?[.!]\s*`),
		// Inline "I am Dr. Nasreen Fatima," / "As Dr. Nasreen Fatima, ..."
		selfRef: regexp.MustCompile(`(?i)\b(as|i'?m|i am)\s+dr\.?\s+nasreen(\s+fatima)?\b[,.]?\s*`),
		// Echoed persona setup: "You are Dr. Nasreen Fatima, a certified ..."
		echoedSetup: regexp.MustCompile(`(?i)you are dr\.?\s+nasreen[^.\n]*\.\s*`),
	}
}

// Clean normalizes a leading greeting + self-introduction into a bare
// greeting, removes inline self-references, and trims whitespace. It is
// idempotent: cleaning already-clean text changes nothing.
func (p *ResponsePostProcessor) Clean(raw string) string {
	out := p.leadIntro.ReplaceAllString(raw, "Hello! ")
	out = p.selfRef.ReplaceAllString(out, "")
	out = p.echoedSetup.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}
