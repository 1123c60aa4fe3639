package handler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ekinsu/learnhub/internal/model"
)

const maxTitleLength = 150

// urlRe accepts http(s) URLs with a host part. Anything fancier belongs to
// the client that actually fetches the URL.
var urlRe = regexp.MustCompile(`^https?://[^\s/]+\.[^\s]+$`)

type createContentReq struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Type            string   `json:"type"`
	URL             string   `json:"url"`
	FilePath        string   `json:"filePath"`
	Tags            []string `json:"tags"`
	DurationMinutes *uint32  `json:"durationMinutes"`
}

// updateContentReq carries only editor-changeable fields. Counters,
// ownership and timestamps are absent on purpose: a client sending them
// sees them silently dropped during binding.
type updateContentReq struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	Type            *string   `json:"type"`
	URL             *string   `json:"url"`
	FilePath        *string   `json:"filePath"`
	Tags            *[]string `json:"tags"`
	DurationMinutes *uint32   `json:"durationMinutes"`
}

// validateContentCreate checks a full content payload. Returns an empty
// string when the payload is acceptable.
func validateContentCreate(req createContentReq) string {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" || req.Type == "" {
		return "please provide title, description, and type"
	}
	if len(req.Title) > maxTitleLength {
		return fmt.Sprintf("title cannot be more than %d characters", maxTitleLength)
	}
	if !model.ValidContentType(req.Type) {
		return fmt.Sprintf("type must be one of: %s", strings.Join(model.ContentTypes, ", "))
	}
	if req.URL != "" && !urlRe.MatchString(req.URL) {
		return "url must be a valid http(s) URL"
	}
	return ""
}

// validateContentPatch checks only the fields present on a partial update.
func validateContentPatch(req updateContentReq) string {
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return "title cannot be empty"
		}
		if len(*req.Title) > maxTitleLength {
			return fmt.Sprintf("title cannot be more than %d characters", maxTitleLength)
		}
	}
	if req.Type != nil && !model.ValidContentType(*req.Type) {
		return fmt.Sprintf("type must be one of: %s", strings.Join(model.ContentTypes, ", "))
	}
	if req.URL != nil && *req.URL != "" && !urlRe.MatchString(*req.URL) {
		return "url must be a valid http(s) URL"
	}
	return ""
}
