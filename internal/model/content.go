package model

import "time"

// Content types accepted by the catalog. The set mirrors what the
// frontend can render; anything else is rejected at validation time.
const (
	ContentTypeVideo        = "Video"
	ContentTypeArticle      = "Article"
	ContentTypePDF          = "PDF"
	ContentTypeQuiz         = "Quiz"
	ContentTypeCourse       = "Course"
	ContentTypeExternalLink = "ExternalLink"
	ContentTypeOther        = "Other"
)

// ContentTypes lists every accepted content type in declaration order.
// Validation error messages enumerate this slice.
var ContentTypes = []string{
	ContentTypeVideo,
	ContentTypeArticle,
	ContentTypePDF,
	ContentTypeQuiz,
	ContentTypeCourse,
	ContentTypeExternalLink,
	ContentTypeOther,
}

// ValidContentType reports whether t is one of the accepted content types.
func ValidContentType(t string) bool {
	for _, ct := range ContentTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// Content is a catalog entry representing a piece of learning material,
// stored in the `contents` table with its tags in `content_tags`.
//
// ViewCount and CompletionCount are only ever changed through atomic
// UPDATE ... SET x = x + 1 statements in the repository; they are stripped
// from update patches so clients cannot set them.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – required, at most 150 characters.
//  Description     – required free text.
//  Type            – one of the ContentType* constants.
//  URL             – optional; must look like an http(s) URL when present.
//  FilePath        – optional path for locally hosted files.
//  Tags            – tags from content_tags, matched against user interests.
//  DurationMinutes – optional estimated time to complete, never negative.
//  CreatedBy       – user id of the creator; weak reference, zero when unset.
//  ViewCount       – monotonic view counter.
//  CompletionCount – monotonic completion counter.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – refreshed on every mutation.
type Content struct {
	ID              uint64    `json:"id"`          // contents.id
	Title           string    `json:"title"`       // contents.title
	Description     string    `json:"description"` // contents.description
	Type            string    `json:"type"`        // contents.type
	URL             string    `json:"url,omitempty"`
	FilePath        string    `json:"filePath,omitempty"`
	Tags            []string  `json:"tags"`
	DurationMinutes *uint32   `json:"durationMinutes,omitempty"` // contents.duration_minutes (nullable)
	CreatedBy       uint64    `json:"createdBy,omitempty"`       // contents.created_by (0 = unknown)
	ViewCount       uint64    `json:"viewCount"`                 // contents.view_count
	CompletionCount uint64    `json:"completionCount"`           // contents.completion_count
	CreatedAt       time.Time `json:"createdAt"`                 // contents.created_at
	UpdatedAt       time.Time `json:"updatedAt"`                 // contents.updated_at
}
