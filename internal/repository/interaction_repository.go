package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/ekinsu/learnhub/internal/model"
)

// LastActivity is a tiny projection of the newest interaction log entry of
// a user, surfaced by the insights endpoint.
type LastActivity struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"interactionType"`
}

// InteractionRepo encapsulates the append-only interaction log. Entries
// are only ever inserted and read; there is no update or delete path.
type InteractionRepo struct {
	db *sql.DB
}

// NewInteractionRepo constructs an InteractionRepo given a DB handle.
func NewInteractionRepo(db *sql.DB) *InteractionRepo { return &InteractionRepo{db: db} }

// Insert appends a log entry. The ID and Timestamp fields of the passed
// struct are populated from the database. The free-form Extra map is
// stored as JSON; the typed variant fields go into their own columns.
func (r *InteractionRepo) Insert(ctx context.Context, l *model.InteractionLog) error {
	var details any
	if len(l.Detail.Extra) > 0 {
		b, err := json.Marshal(l.Detail.Extra)
		if err != nil {
			return err
		}
		details = string(b)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO interaction_logs
		   (user_id, content_id, interaction_type, rating_value, comment_text, search_query, details)
		 VALUES (?,?,?,?,?,?,?)`,
		l.UserID, l.ContentID, l.Type,
		l.Detail.RatingValue, l.Detail.CommentText, l.Detail.SearchQuery, details)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM interaction_logs WHERE id = ?", l.ID).Scan(&l.Timestamp)
}

// RecentContentIDs fetches the user's most recent `limit` log entries of
// the given types, newest first, and collects the distinct content ids in
// first-seen order. Note the distinct pass runs over the fetched window,
// not in SQL: the contract is "distinct ids of the last N entries", not
// "the last N distinct ids".
func (r *InteractionRepo) RecentContentIDs(ctx context.Context, userID uint64, types []string, limit int) ([]uint64, error) {
	if len(types) == 0 || limit <= 0 {
		return nil, nil
	}
	args := make([]any, 0, len(types)+2)
	args = append(args, userID)
	for _, t := range types {
		args = append(args, t)
	}
	args = append(args, limit)
	rows, err := r.db.QueryContext(ctx,
		`SELECT content_id FROM interaction_logs
		 WHERE user_id = ? AND interaction_type IN (`+placeholders(len(types))+`)
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := map[uint64]bool{}
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, rows.Err()
}

// CountByUserAndType counts a user's log entries of one type.
func (r *InteractionRepo) CountByUserAndType(ctx context.Context, userID uint64, interactionType string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM interaction_logs WHERE user_id = ? AND interaction_type = ?",
		userID, interactionType).Scan(&n)
	return n, err
}

// DistinctContentIDs returns the distinct content ids a user has logged
// the given type against, ordered by id for stable output.
func (r *InteractionRepo) DistinctContentIDs(ctx context.Context, userID uint64, interactionType string) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT content_id FROM interaction_logs
		 WHERE user_id = ? AND interaction_type = ? ORDER BY content_id`,
		userID, interactionType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ListByUser returns a user's log entries, newest first, capped at limit.
func (r *InteractionRepo) ListByUser(ctx context.Context, userID uint64, limit int) ([]*model.InteractionLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, content_id, interaction_type,
		        rating_value, comment_text, search_query, details, created_at
		 FROM interaction_logs
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.InteractionLog
	for rows.Next() {
		l := &model.InteractionLog{}
		var details sql.NullString
		if err := rows.Scan(&l.ID, &l.UserID, &l.ContentID, &l.Type,
			&l.Detail.RatingValue, &l.Detail.CommentText, &l.Detail.SearchQuery,
			&details, &l.Timestamp); err != nil {
			return nil, err
		}
		if details.Valid && details.String != "" {
			// A malformed details blob should not break the listing.
			_ = json.Unmarshal([]byte(details.String), &l.Detail.Extra)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// LatestActivity returns the newest log entry's timestamp and type for a
// user, or nil when the user has no activity yet.
func (r *InteractionRepo) LatestActivity(ctx context.Context, userID uint64) (*LastActivity, error) {
	la := &LastActivity{}
	err := r.db.QueryRowContext(ctx,
		`SELECT created_at, interaction_type FROM interaction_logs
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		userID).Scan(&la.Timestamp, &la.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return la, nil
}
