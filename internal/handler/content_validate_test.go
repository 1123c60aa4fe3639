package handler

import (
	"strings"
	"testing"
)

func strp(s string) *string { return &s }

func TestValidateContentCreate(t *testing.T) {
	base := createContentReq{
		Title:       "Intro to Gardening",
		Description: "A beginner course",
		Type:        "Video",
		URL:         "https://videos.example.com/gardening.mp4",
	}

	if msg := validateContentCreate(base); msg != "" {
		t.Fatalf("valid payload rejected: %q", msg)
	}

	cases := []struct {
		name   string
		mutate func(*createContentReq)
		want   string
	}{
		{"missing title", func(r *createContentReq) { r.Title = "  " }, "please provide"},
		{"missing description", func(r *createContentReq) { r.Description = "" }, "please provide"},
		{"missing type", func(r *createContentReq) { r.Type = "" }, "please provide"},
		{"title too long", func(r *createContentReq) { r.Title = strings.Repeat("x", 151) }, "150 characters"},
		{"bad type", func(r *createContentReq) { r.Type = "Webinar" }, "type must be one of"},
		{"bad url", func(r *createContentReq) { r.URL = "ftp://example.com/a" }, "valid http(s) URL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			msg := validateContentCreate(req)
			if msg == "" {
				t.Fatal("expected a validation error, got none")
			}
			if !strings.Contains(msg, tc.want) {
				t.Fatalf("message %q does not mention %q", msg, tc.want)
			}
		})
	}
}

func TestValidateContentCreateTitleAtLimit(t *testing.T) {
	req := createContentReq{
		Title:       strings.Repeat("x", 150),
		Description: "d",
		Type:        "Article",
	}
	if msg := validateContentCreate(req); msg != "" {
		t.Fatalf("150-char title should pass, got %q", msg)
	}
}

func TestValidateContentCreateURLOptional(t *testing.T) {
	req := createContentReq{Title: "t", Description: "d", Type: "Quiz"}
	if msg := validateContentCreate(req); msg != "" {
		t.Fatalf("empty url should pass, got %q", msg)
	}
}

func TestValidateContentPatch(t *testing.T) {
	if msg := validateContentPatch(updateContentReq{}); msg != "" {
		t.Fatalf("empty patch should pass, got %q", msg)
	}
	if msg := validateContentPatch(updateContentReq{Title: strp("New title")}); msg != "" {
		t.Fatalf("title-only patch should pass, got %q", msg)
	}
	if msg := validateContentPatch(updateContentReq{Title: strp("   ")}); msg == "" {
		t.Fatal("blank title should be rejected")
	}
	long := strings.Repeat("x", 151)
	if msg := validateContentPatch(updateContentReq{Title: &long}); msg == "" {
		t.Fatal("over-long title should be rejected")
	}
	if msg := validateContentPatch(updateContentReq{Type: strp("Podcast")}); msg == "" {
		t.Fatal("unknown type should be rejected")
	}
	if msg := validateContentPatch(updateContentReq{URL: strp("not a url")}); msg == "" {
		t.Fatal("malformed url should be rejected")
	}
	if msg := validateContentPatch(updateContentReq{URL: strp("")}); msg != "" {
		t.Fatalf("clearing the url should pass, got %q", msg)
	}
}
