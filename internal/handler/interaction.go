package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ekinsu/learnhub/internal/model"
	"github.com/ekinsu/learnhub/internal/queue"
	"github.com/ekinsu/learnhub/internal/repository"
	queue_publisher "github.com/ekinsu/learnhub/internal/service"
	"github.com/ekinsu/learnhub/internal/utils"
)

// InteractionHandler records user/content interaction events and keeps the
// denormalized counters on the content row in step.
type InteractionHandler struct {
	Contents *repository.ContentRepo
	Logs     *repository.InteractionRepo
}

func NewInteractionHandler(cr *repository.ContentRepo, ir *repository.InteractionRepo) *InteractionHandler {
	return &InteractionHandler{Contents: cr, Logs: ir}
}

type interactReq struct {
	Type    string            `json:"type"`
	Rating  *float64          `json:"rating"`
	Comment *string           `json:"comment"`
	Query   *string           `json:"query"`
	Details map[string]string `json:"details"`
}

// Record answers POST /v1/content/:id/interact. Each call appends exactly
// one log entry; view and complete events also bump the content counters.
func (h *InteractionHandler) Record(c echo.Context) error {
	contentID, err := pathID(c)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "invalid content id")
	}
	var req interactReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if !model.ValidInteractionType(req.Type) {
		return utils.Fail(c, http.StatusBadRequest,
			fmt.Sprintf("invalid interaction type, allowed: %s", strings.Join(model.InteractionTypes, ", ")))
	}
	userID, err := getUserID(c)
	if err != nil {
		return utils.Fail(c, http.StatusUnauthorized, "not authorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item, err := h.Contents.GetByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			return utils.Fail(c, http.StatusNotFound, "content not found")
		}
		return utils.Fail(c, http.StatusInternalServerError, "query failed")
	}

	detail := buildDetail(req)
	entry := &model.InteractionLog{
		UserID:    userID,
		ContentID: contentID,
		Type:      req.Type,
		Detail:    detail,
	}
	if err := h.Logs.Insert(ctx, entry); err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "failed to record interaction")
	}

	// Counter updates ride in the same request; a failed bump is logged but
	// never turns an already-recorded interaction into a client error.
	switch req.Type {
	case model.InteractionView:
		if err := h.Contents.IncrementViewCount(ctx, contentID); err != nil {
			log.Printf("interaction: view counter bump failed for content %d: %v", contentID, err)
		}
	case model.InteractionComplete:
		if err := h.Contents.IncrementCompletionCount(ctx, contentID); err != nil {
			log.Printf("interaction: completion counter bump failed for content %d: %v", contentID, err)
		}
	}

	go publishRecorded(entry, item.Title)

	return utils.Created(c, entry)
}

// buildDetail keeps only the detail field that matches the interaction
// type; a rating event with a comment attached stores just the rating.
func buildDetail(req interactReq) model.InteractionDetail {
	d := model.InteractionDetail{Extra: req.Details}
	switch req.Type {
	case model.InteractionRating:
		d.RatingValue = req.Rating
	case model.InteractionComment:
		d.CommentText = req.Comment
	case model.InteractionSearchClick:
		d.SearchQuery = req.Query
	}
	return d
}

// publishRecorded pushes the event onto the broker off the request path.
func publishRecorded(entry *model.InteractionLog, contentTitle string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ev := queue.InteractionRecordedEvent{
		LogID:        entry.ID,
		UserID:       entry.UserID,
		ContentID:    entry.ContentID,
		ContentTitle: contentTitle,
		Type:         entry.Type,
		RecordedAt:   entry.Timestamp.UTC().Format(time.RFC3339),
	}
	if entry.Detail.RatingValue != nil {
		ev.RatingValue = *entry.Detail.RatingValue
	}
	// Broker errors are already logged inside the publisher; the request
	// has long since been answered.
	_ = queue_publisher.PublishInteractionRecorded(ctx, ev)
}
