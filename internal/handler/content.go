package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ekinsu/learnhub/internal/model"
	"github.com/ekinsu/learnhub/internal/repository"
	"github.com/ekinsu/learnhub/internal/utils"
)

// ContentHandler serves the public catalog and the admin CRUD surface.
type ContentHandler struct {
	Contents *repository.ContentRepo
}

func NewContentHandler(r *repository.ContentRepo) *ContentHandler {
	return &ContentHandler{Contents: r}
}

// List answers GET /v1/content with filtering, sorting, field selection
// and pagination driven entirely by query parameters.
func (h *ContentHandler) List(c echo.Context) error {
	q := repository.ParseListQuery(c.QueryParams())

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.Contents.List(ctx, q)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "query failed")
	}

	totalPages := int64(0)
	if q.Limit > 0 {
		totalPages = (total + int64(q.Limit) - 1) / int64(q.Limit)
	}

	return utils.OKWith(c, projectContents(items, q.Select), echo.Map{
		"count": len(items),
		"total": total,
		"pagination": echo.Map{
			"page":       q.Page,
			"limit":      q.Limit,
			"totalPages": totalPages,
		},
	})
}

// GetByID answers GET /v1/content/:id.
func (h *ContentHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "invalid content id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item, err := h.Contents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			return utils.Fail(c, http.StatusNotFound, "content not found")
		}
		return utils.Fail(c, http.StatusInternalServerError, "query failed")
	}
	return utils.OK(c, item)
}

// Create answers POST /v1/content (admin only). The creator is taken from
// the authenticated context, never from the payload.
func (h *ContentHandler) Create(c echo.Context) error {
	var req createContentReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if msg := validateContentCreate(req); msg != "" {
		return utils.Fail(c, http.StatusBadRequest, msg)
	}
	userID, err := getUserID(c)
	if err != nil {
		return utils.Fail(c, http.StatusUnauthorized, "not authorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item := &model.Content{
		Title:           req.Title,
		Description:     req.Description,
		Type:            req.Type,
		URL:             req.URL,
		FilePath:        req.FilePath,
		Tags:            req.Tags,
		DurationMinutes: req.DurationMinutes,
		CreatedBy:       userID,
	}
	if err := h.Contents.Create(ctx, item); err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "failed to create content")
	}
	return utils.Created(c, item)
}

// Update answers PUT /v1/content/:id (admin only). Absent fields stay
// untouched; system-managed fields cannot be set through this endpoint.
func (h *ContentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "invalid content id")
	}
	var req updateContentReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if msg := validateContentPatch(req); msg != "" {
		return utils.Fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	patch := repository.ContentPatch{
		Title:           req.Title,
		Description:     req.Description,
		Type:            req.Type,
		URL:             req.URL,
		FilePath:        req.FilePath,
		Tags:            req.Tags,
		DurationMinutes: req.DurationMinutes,
	}
	if err := h.Contents.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			return utils.Fail(c, http.StatusNotFound, "content not found")
		}
		return utils.Fail(c, http.StatusInternalServerError, "failed to update content")
	}
	item, err := h.Contents.GetByID(ctx, id)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "query failed")
	}
	return utils.OK(c, item)
}

// Delete answers DELETE /v1/content/:id (admin only). Interaction logs
// referencing the content are kept for analytics.
func (h *ContentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "invalid content id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Contents.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			return utils.Fail(c, http.StatusNotFound, "content not found")
		}
		return utils.Fail(c, http.StatusInternalServerError, "failed to delete content")
	}
	return utils.Message(c, http.StatusOK, "content deleted")
}

// projectContents applies a field selection to the list response. With no
// selection the full objects go out unchanged.
func projectContents(items []*model.Content, fields []string) any {
	if len(fields) == 0 {
		return items
	}
	keep := make(map[string]bool, len(fields))
	for _, f := range fields {
		keep[f] = true
	}
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		row := map[string]any{"id": it.ID}
		if keep["title"] {
			row["title"] = it.Title
		}
		if keep["description"] {
			row["description"] = it.Description
		}
		if keep["type"] {
			row["type"] = it.Type
		}
		if keep["url"] {
			row["url"] = it.URL
		}
		if keep["filePath"] {
			row["filePath"] = it.FilePath
		}
		if keep["tags"] {
			row["tags"] = it.Tags
		}
		if keep["durationMinutes"] {
			row["durationMinutes"] = it.DurationMinutes
		}
		if keep["createdBy"] {
			row["createdBy"] = it.CreatedBy
		}
		if keep["viewCount"] {
			row["viewCount"] = it.ViewCount
		}
		if keep["completionCount"] {
			row["completionCount"] = it.CompletionCount
		}
		if keep["createdAt"] {
			row["createdAt"] = it.CreatedAt
		}
		if keep["updatedAt"] {
			row["updatedAt"] = it.UpdatedAt
		}
		out = append(out, row)
	}
	return out
}
