package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ekinsu/learnhub/internal/recommend"
	"github.com/ekinsu/learnhub/internal/repository"
	"github.com/ekinsu/learnhub/internal/utils"
)

// RecommendationHandler serves the personalized content feed. It never
// answers with an error for an empty catalog or a user without history;
// the worst case is an empty list.
type RecommendationHandler struct {
	Selector *recommend.Selector
	Contents *repository.ContentRepo
}

func NewRecommendationHandler(s *recommend.Selector, cr *repository.ContentRepo) *RecommendationHandler {
	return &RecommendationHandler{Selector: s, Contents: cr}
}

// Recommend answers GET /v1/recommendations?limit=n. An unparsable or
// non-positive limit falls back to the selector default.
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.Fail(c, http.StatusUnauthorized, "not authorized")
	}
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Selector.Select(ctx, userID, limit)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "failed to build recommendations")
	}

	items, err := h.Contents.GetByIDs(ctx, res.IDs)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "query failed")
	}

	return utils.OKWith(c, items, echo.Map{
		"count":   len(items),
		"source":  res.Source,
		"message": "AI-Recommended Content",
	})
}
