// Package chatbot implements the keyword-matched assistant reply. It is
// deliberately shallow: a lower-cased substring scan over a fixed table,
// first match wins. No session state, no external calls.
package chatbot

import "strings"

// DefaultReply is returned when no keyword matches the message.
const DefaultReply = "I'm sorry, I can only answer basic questions right now."

// Source labels reported alongside replies.
const (
	SourceKeywords = "basic_keywords"
)

// Disclaimer is appended to every chatbot response payload.
const Disclaimer = "Please note: I am an AI assistant. Information may not be 100% factual and should be used as a reference only."

// rule is one keyword-to-reply mapping.
type rule struct {
	keyword string
	reply   string
}

// rules is scanned in order and the first keyword contained in the message
// wins. A slice (not a map) keeps the scan order fixed, so answers are
// deterministic when a message contains several keywords.
var rules = []rule{
	{"hello", "Hello! How can I help you today?"},
	{"hi", "Hi there! What can I do for you?"},
	{"recommend", "You can find AI-recommended content on your dashboard."},
	{"content", "Browse available content from the main dashboard or search."},
	{"help", "You can browse content or check your dashboard. For technical issues, please contact support@example.com."},
	{"support", "For technical support, please email support@example.com."},
	{"privacy", "We use your data to personalize your learning. See our Privacy Policy for details."},
	{"bye", "Goodbye! Have a great day."},
	{"thank", "You're welcome!"},
}

// Reply matches a message against the keyword table and returns the reply
// plus whether any keyword matched. Matching is case-insensitive substring
// containment over the trimmed message.
func Reply(message string) (string, bool) {
	msg := strings.ToLower(strings.TrimSpace(message))
	for _, r := range rules {
		if strings.Contains(msg, r.keyword) {
			return r.reply, true
		}
	}
	return DefaultReply, false
}
