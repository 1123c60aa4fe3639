package chatbot

import "testing"

func TestReplyKeywordMatch(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    string
		matched bool
	}{
		{"greeting", "Hello over there", "Hello! How can I help you today?", true},
		{"case insensitive", "HELLO!!", "Hello! How can I help you today?", true},
		{"substring", "can you recommend something", "You can find AI-recommended content on your dashboard.", true},
		{"thanks prefix matches thank", "thanks a lot", "You're welcome!", true},
		{"no match", "what is the weather", DefaultReply, false},
		{"empty", "   ", DefaultReply, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, matched := Reply(tc.message)
			if got != tc.want {
				t.Fatalf("Reply(%q) = %q, want %q", tc.message, got, tc.want)
			}
			if matched != tc.matched {
				t.Fatalf("Reply(%q) matched = %v, want %v", tc.message, matched, tc.matched)
			}
		})
	}
}

// "hello" sits before "hi" in the table, so a message containing both gets
// the "hello" reply every time.
func TestReplyFirstMatchWins(t *testing.T) {
	got, _ := Reply("hi, hello")
	if got != "Hello! How can I help you today?" {
		t.Fatalf("Reply picked %q, want the first rule's reply", got)
	}
}
