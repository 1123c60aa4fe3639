package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ekinsu/learnhub/internal/model"
	"github.com/ekinsu/learnhub/internal/repository"
	"github.com/ekinsu/learnhub/internal/utils"
)

// InsightsHandler summarizes a user's own activity.
type InsightsHandler struct {
	Logs *repository.InteractionRepo
}

func NewInsightsHandler(ir *repository.InteractionRepo) *InsightsHandler {
	return &InsightsHandler{Logs: ir}
}

// Summary answers GET /v1/user-insights for the authenticated user.
// viewedCount is distinct content items viewed, completedCount is total
// completion events; lastActivity is null for a user with no history.
func (h *InsightsHandler) Summary(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.Fail(c, http.StatusUnauthorized, "not authorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	completed, err := h.Logs.CountByUserAndType(ctx, userID, model.InteractionComplete)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "query failed")
	}
	viewedIDs, err := h.Logs.DistinctContentIDs(ctx, userID, model.InteractionView)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "query failed")
	}
	last, err := h.Logs.LatestActivity(ctx, userID)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "query failed")
	}

	return utils.OK(c, echo.Map{
		"completedCount": completed,
		"viewedCount":    len(viewedIDs),
		"lastActivity":   last,
	})
}

const activityPageSize = 50

// Activity answers GET /v1/user-insights/activity: the authenticated
// user's most recent interaction log entries, newest first.
func (h *InsightsHandler) Activity(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.Fail(c, http.StatusUnauthorized, "not authorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.Logs.ListByUser(ctx, userID, activityPageSize)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "query failed")
	}
	return utils.OKWith(c, entries, echo.Map{"count": len(entries)})
}
