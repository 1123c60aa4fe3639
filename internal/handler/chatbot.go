package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ekinsu/learnhub/internal/chatbot"
	"github.com/ekinsu/learnhub/internal/utils"
)

// ChatbotHandler answers support questions from the static keyword table.
// It is stateless and keeps no conversation history.
type ChatbotHandler struct{}

func NewChatbotHandler() *ChatbotHandler { return &ChatbotHandler{} }

type chatReq struct {
	Message string `json:"message"`
}

// Ask answers POST /v1/chatbot.
func (h *ChatbotHandler) Ask(c echo.Context) error {
	var req chatReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return utils.Fail(c, http.StatusBadRequest, "message is required and must be a non-empty string")
	}

	reply, _ := chatbot.Reply(req.Message)

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"query":      req.Message,
		"response":   reply,
		"source":     chatbot.SourceKeywords,
		"disclaimer": chatbot.Disclaimer,
	})
}
