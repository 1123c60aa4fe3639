package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ekinsu/learnhub/internal/chatbot"
)

func postChat(t *testing.T, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/chatbot", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewChatbotHandler().Ask(c); err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return rec, out
}

func TestChatbotKeywordAnswer(t *testing.T) {
	rec, out := postChat(t, `{"message":"can you recommend something?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if out["success"] != true {
		t.Fatalf("success = %v", out["success"])
	}
	if out["query"] != "can you recommend something?" {
		t.Fatalf("query not echoed: %v", out["query"])
	}
	if out["source"] != chatbot.SourceKeywords {
		t.Fatalf("source = %v", out["source"])
	}
	if out["disclaimer"] != chatbot.Disclaimer {
		t.Fatalf("disclaimer missing: %v", out["disclaimer"])
	}
	resp, _ := out["response"].(string)
	if resp == "" || resp == chatbot.DefaultReply {
		t.Fatalf("expected a keyword answer, got %q", resp)
	}
}

func TestChatbotFallbackAnswer(t *testing.T) {
	rec, out := postChat(t, `{"message":"xyzzy plugh"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if out["response"] != chatbot.DefaultReply {
		t.Fatalf("expected default reply, got %v", out["response"])
	}
}

func TestChatbotRejectsEmptyMessage(t *testing.T) {
	for _, body := range []string{`{}`, `{"message":"   "}`} {
		rec, out := postChat(t, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rec.Code)
		}
		if out["success"] != false {
			t.Fatalf("body %s: success = %v, want false", body, out["success"])
		}
	}
}
