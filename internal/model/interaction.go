package model

import "time"

// Interaction types recorded against content. "view" and "complete" have
// the side effect of bumping the matching content counter and are the only
// two types the recommendation selector treats as "seen".
const (
	InteractionView        = "view"
	InteractionStart       = "start"
	InteractionComplete    = "complete"
	InteractionRating      = "rating"
	InteractionComment     = "comment"
	InteractionSearchClick = "search_click"
	InteractionBookmark    = "bookmark"
	InteractionShare       = "share"
)

// InteractionTypes lists every accepted interaction type. Validation error
// messages enumerate this slice so clients can see the allowed values.
var InteractionTypes = []string{
	InteractionView,
	InteractionStart,
	InteractionComplete,
	InteractionRating,
	InteractionComment,
	InteractionSearchClick,
	InteractionBookmark,
	InteractionShare,
}

// ValidInteractionType reports whether t is one of the accepted types.
func ValidInteractionType(t string) bool {
	for _, it := range InteractionTypes {
		if it == t {
			return true
		}
	}
	return false
}

// InteractionDetail is the type-dependent payload of an interaction log
// entry. At most one variant field is populated, chosen by the interaction
// type: RatingValue for "rating", CommentText for "comment", SearchQuery
// for "search_click". The recorder clears the fields that do not match the
// type. Extra carries the optional free-form details map for anything the
// typed fields do not cover.
type InteractionDetail struct {
	RatingValue *float64          `json:"ratingValue,omitempty"` // interaction_logs.rating_value
	CommentText *string           `json:"commentText,omitempty"` // interaction_logs.comment_text
	SearchQuery *string           `json:"searchQuery,omitempty"` // interaction_logs.search_query
	Extra       map[string]string `json:"extra,omitempty"`       // interaction_logs.details (JSON)
}

// InteractionLog is an immutable record of a user action against a content
// item, stored in the `interaction_logs` table. Entries are append-only:
// nothing in this system updates or deletes them, and deleting a content
// item intentionally leaves its log entries in place.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – acting user (weak reference; checked by auth middleware).
//  ContentID – target content (existence checked at record time).
//  Type      – one of the Interaction* constants.
//  Detail    – type-dependent payload, see InteractionDetail.
//  Timestamp – when the interaction happened, defaults to record time.
type InteractionLog struct {
	ID        uint64            `json:"id"`         // interaction_logs.id
	UserID    uint64            `json:"user_id"`    // interaction_logs.user_id
	ContentID uint64            `json:"content_id"` // interaction_logs.content_id
	Type      string            `json:"interaction_type"`
	Detail    InteractionDetail `json:"detail"`
	Timestamp time.Time         `json:"timestamp"` // interaction_logs.created_at
}
