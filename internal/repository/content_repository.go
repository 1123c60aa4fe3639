package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ekinsu/learnhub/internal/model"
)

// ContentRepo encapsulates database operations for catalog entries and
// their tags.
type ContentRepo struct {
	db *sql.DB
}

// NewContentRepo constructs a ContentRepo given a DB handle.
func NewContentRepo(db *sql.DB) *ContentRepo { return &ContentRepo{db: db} }

// Create inserts a new content item with its tags. On success the ID,
// CreatedAt and UpdatedAt fields of the passed struct are populated from
// the database so callers receive a fully populated record.
func (r *ContentRepo) Create(ctx context.Context, c *model.Content) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO contents (title, description, type, url, file_path, duration_minutes, created_by)
		 VALUES (?,?,?,?,?,?,?)`,
		c.Title, c.Description, c.Type, c.URL, c.FilePath, c.DurationMinutes, c.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	c.Tags = dedupTags(c.Tags)
	for _, tag := range c.Tags {
		if _, err = tx.ExecContext(ctx,
			"INSERT IGNORE INTO content_tags (content_id, tag) VALUES (?,?)", c.ID, tag); err != nil {
			return err
		}
	}

	// Follow-up SELECT to populate the DB-defaulted timestamp fields.
	err = tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM contents WHERE id = ?", c.ID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	return err
}

// GetByID fetches a content item by its id, tags included. Returns
// ErrContentNotFound if no row is found.
func (r *ContentRepo) GetByID(ctx context.Context, id uint64) (*model.Content, error) {
	c := &model.Content{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, type, url, file_path, duration_minutes,
		        created_by, view_count, completion_count, created_at, updated_at
		 FROM contents WHERE id = ?`, id).
		Scan(&c.ID, &c.Title, &c.Description, &c.Type, &c.URL, &c.FilePath,
			&c.DurationMinutes, &c.CreatedBy, &c.ViewCount, &c.CompletionCount,
			&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	if err := r.loadTags(ctx, []*model.Content{c}); err != nil {
		return nil, err
	}
	return c, nil
}

// ContentPatch carries the updatable fields of a content item. Nil
// pointers mean "leave unchanged". The system-managed fields (created_by,
// counters, created_at) deliberately have no representation here, which is
// how the handler strips them from client patches.
type ContentPatch struct {
	Title           *string
	Description     *string
	Type            *string
	URL             *string
	FilePath        *string
	DurationMinutes *uint32
	Tags            *[]string
}

// Update applies a partial patch to a content item and refreshes its
// updated_at timestamp. Returns ErrContentNotFound when the id is absent.
// When the patch replaces tags, the old tag rows are swapped out in the
// same transaction.
func (r *ContentRepo) Update(ctx context.Context, id uint64, p ContentPatch) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	// Existence check first: an UPDATE matching zero rows cannot tell
	// "missing" apart from "no change".
	var one int
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM contents WHERE id = ?", id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrContentNotFound
		}
		return err
	}

	set := []string{}
	args := []any{}
	if p.Title != nil {
		set, args = append(set, "title = ?"), append(args, *p.Title)
	}
	if p.Description != nil {
		set, args = append(set, "description = ?"), append(args, *p.Description)
	}
	if p.Type != nil {
		set, args = append(set, "type = ?"), append(args, *p.Type)
	}
	if p.URL != nil {
		set, args = append(set, "url = ?"), append(args, *p.URL)
	}
	if p.FilePath != nil {
		set, args = append(set, "file_path = ?"), append(args, *p.FilePath)
	}
	if p.DurationMinutes != nil {
		set, args = append(set, "duration_minutes = ?"), append(args, *p.DurationMinutes)
	}
	// Always bump updated_at, even for a tags-only patch.
	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)
	if _, err = tx.ExecContext(ctx,
		"UPDATE contents SET "+strings.Join(set, ", ")+" WHERE id = ?", args...); err != nil {
		return err
	}

	if p.Tags != nil {
		if _, err = tx.ExecContext(ctx, "DELETE FROM content_tags WHERE content_id = ?", id); err != nil {
			return err
		}
		for _, tag := range dedupTags(*p.Tags) {
			if _, err = tx.ExecContext(ctx,
				"INSERT IGNORE INTO content_tags (content_id, tag) VALUES (?,?)", id, tag); err != nil {
				return err
			}
		}
	}
	return nil
}

// Delete hard-deletes a content item and its tag rows. Interaction logs
// referencing the content are left untouched on purpose; see the design
// notes on orphaned logs. Returns ErrContentNotFound when the id is absent.
func (r *ContentRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	res, err := tx.ExecContext(ctx, "DELETE FROM contents WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrContentNotFound
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM content_tags WHERE content_id = ?", id)
	return err
}

// List runs the translated catalog query and returns the page slice plus
// the total number of matching rows for pagination metadata.
func (r *ContentRepo) List(ctx context.Context, q ListQuery) ([]*model.Content, int64, error) {
	cond, args := q.whereSQL()

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contents c WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := `SELECT c.id, c.title, c.description, c.type, c.url, c.file_path,
		       c.duration_minutes, c.created_by, c.view_count, c.completion_count,
		       c.created_at, c.updated_at
		FROM contents c
		WHERE ` + cond + `
		ORDER BY ` + q.orderSQL() + `
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), q.Limit, (q.Page-1)*q.Limit)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]*model.Content, 0, q.Limit)
	for rows.Next() {
		c := &model.Content{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Type, &c.URL, &c.FilePath,
			&c.DurationMinutes, &c.CreatedBy, &c.ViewCount, &c.CompletionCount,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.loadTags(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// IncrementViewCount bumps the view counter by one. The single UPDATE is
// atomic on the database side, so concurrent requests never lose counts.
func (r *ContentRepo) IncrementViewCount(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE contents SET view_count = view_count + 1 WHERE id = ?", id)
	return err
}

// IncrementCompletionCount bumps the completion counter by one, same
// atomicity as IncrementViewCount.
func (r *ContentRepo) IncrementCompletionCount(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE contents SET completion_count = completion_count + 1 WHERE id = ?", id)
	return err
}

// IDsByTagsExcluding returns ids of content carrying at least one of the
// given tags, excluding the listed ids, capped at limit. Ordered by id
// ascending so the interest stage of the recommender is deterministic for
// a fixed dataset.
func (r *ContentRepo) IDsByTagsExcluding(ctx context.Context, tags []string, exclude []uint64, limit int) ([]uint64, error) {
	if len(tags) == 0 || limit <= 0 {
		return nil, nil
	}
	sqlStr := `SELECT DISTINCT c.id
		FROM contents c
		JOIN content_tags t ON t.content_id = c.id
		WHERE t.tag IN (` + placeholders(len(tags)) + `)`
	args := make([]any, 0, len(tags)+len(exclude)+1)
	for _, t := range tags {
		args = append(args, t)
	}
	if len(exclude) > 0 {
		sqlStr += " AND c.id NOT IN (" + placeholders(len(exclude)) + ")"
		for _, id := range exclude {
			args = append(args, id)
		}
	}
	sqlStr += " ORDER BY c.id ASC LIMIT ?"
	args = append(args, limit)
	return r.queryIDs(ctx, sqlStr, args...)
}

// RecentIDsExcluding returns the most recently created content ids not in
// the exclude list, newest first, capped at limit. The id tie-break keeps
// the order stable when rows share a creation timestamp.
func (r *ContentRepo) RecentIDsExcluding(ctx context.Context, exclude []uint64, limit int) ([]uint64, error) {
	if limit <= 0 {
		return nil, nil
	}
	sqlStr := "SELECT c.id FROM contents c"
	args := []any{}
	if len(exclude) > 0 {
		sqlStr += " WHERE c.id NOT IN (" + placeholders(len(exclude)) + ")"
		for _, id := range exclude {
			args = append(args, id)
		}
	}
	sqlStr += " ORDER BY c.created_at DESC, c.id DESC LIMIT ?"
	args = append(args, limit)
	return r.queryIDs(ctx, sqlStr, args...)
}

// GetByIDs resolves ids to full content records, preserving the order of
// the input slice. Ids that no longer exist are silently skipped.
func (r *ContentRepo) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Content, error) {
	if len(ids) == 0 {
		return []*model.Content{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.title, c.description, c.type, c.url, c.file_path,
		        c.duration_minutes, c.created_by, c.view_count, c.completion_count,
		        c.created_at, c.updated_at
		 FROM contents c WHERE c.id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[uint64]*model.Content, len(ids))
	for rows.Next() {
		c := &model.Content{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Type, &c.URL, &c.FilePath,
			&c.DurationMinutes, &c.CreatedBy, &c.ViewCount, &c.CompletionCount,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Re-impose the selection order: the IN fetch returns rows in
	// database-native order, which is not the recommendation order.
	out := make([]*model.Content, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	if err := r.loadTags(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// loadTags fills the Tags slices of the given contents with one IN query.
func (r *ContentRepo) loadTags(ctx context.Context, cs []*model.Content) error {
	if len(cs) == 0 {
		return nil
	}
	byID := make(map[uint64]*model.Content, len(cs))
	args := make([]any, 0, len(cs))
	for _, c := range cs {
		c.Tags = []string{}
		byID[c.ID] = c
		args = append(args, c.ID)
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT content_id, tag FROM content_tags WHERE content_id IN ("+placeholders(len(cs))+") ORDER BY tag",
		args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return err
		}
		if c, ok := byID[id]; ok {
			c.Tags = append(c.Tags, tag)
		}
	}
	return rows.Err()
}

// queryIDs runs a query returning a single uint64 column.
func (r *ContentRepo) queryIDs(ctx context.Context, sqlStr string, args ...any) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
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
