package assistant

import "strings"

// defaultDenyList is the built-in set of disallowed terms, spanning
// weapons/violence, illegal drugs, self-harm, explicit content, and
// hacking/illegal activity. Matching is raw substring containment: "gunshot
// wound care" matches "gun". That looseness is a deliberate tradeoff of the
// deny-list approach, tunable via configuration rather than code.
var defaultDenyList = []string{
	"gun", "weapon", "bomb", "explosive", "grenade", "firearm",
	"kill", "murder", "violence", "assault",
	"cocaine", "heroin", "meth", "weed", "marijuana", "narcotic",
	"suicide", "self-harm", "self harm",
	"porn", "nude", "explicit sex",
	"hack", "malware", "steal", "rob",
}

// TopicFilter classifies inbound user text against a fixed deny-list.
type TopicFilter struct {
	terms []string
}

// NewTopicFilter builds a filter from the default deny-list plus any
// deployment-specific extra terms.
func NewTopicFilter(extraTerms ...string) *TopicFilter {
	terms := make([]string, 0, len(defaultDenyList)+len(extraTerms))
	terms = append(terms, defaultDenyList...)
	for _, t := range extraTerms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			terms = append(terms, t)
		}
	}
	return &TopicFilter{terms: terms}
}

// Blocked reports whether the message contains any deny-listed term.
// Matching is case-insensitive substring containment.
func (f *TopicFilter) Blocked(message string) bool {
	lowered := strings.ToLower(message)
	for _, term := range f.terms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
