package repository

import (
	"net/url"
	"strconv"
	"strings"
)

// Defaults for catalog pagination.
const (
	DefaultPage  = 1
	DefaultLimit = 25
	MaxLimit     = 100
)

// contentColumns maps the API field names of a content item to their
// column names. Filtering and sorting only ever touch whitelisted columns
// so client input never reaches an SQL identifier position.
var contentColumns = map[string]string{
	"title":           "title",
	"description":     "description",
	"type":            "type",
	"url":             "url",
	"filePath":        "file_path",
	"durationMinutes": "duration_minutes",
	"createdBy":       "created_by",
	"viewCount":       "view_count",
	"completionCount": "completion_count",
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
}

// filterOps maps the Mongo-style operator suffixes recognized in query
// parameters ("duration[gte]=10") to SQL comparison operators. "in" is
// handled separately because it expands to a placeholder list.
var filterOps = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

// Filter is one translated filter condition on a content column.
type Filter struct {
	Column string   // whitelisted column name
	Op     string   // SQL operator, or "IN"
	Values []string // one value, or the IN list
}

// SortField is one translated sort key.
type SortField struct {
	Column string
	Desc   bool
}

// ListQuery is the translated form of the catalog list request: projection,
// ordering, pagination and filters ready to be rendered into SQL. Tags are
// kept separate because tag membership is an EXISTS over content_tags, not
// a column comparison.
type ListQuery struct {
	Select  []string // API field names to project (empty = all)
	Sort    []SortField
	Page    int
	Limit   int
	Filters []Filter
	Tags    []string
}

// ParseListQuery translates raw query parameters into a ListQuery.
//
// Recognized non-filter parameters: select (comma-separated projection),
// sort (comma-separated, "-" prefix = descending, default -createdAt),
// page and limit. "tags" values filter by tag membership. Every other
// parameter is treated as a filter on a content field: plain "field=v" is
// equality, "field[gt|gte|lt|lte]=v" compares, "field[in]=a,b" matches any.
// Parameters naming unknown fields are ignored.
func ParseListQuery(params url.Values) ListQuery {
	q := ListQuery{Page: DefaultPage, Limit: DefaultLimit}

	for key, vals := range params {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		val := vals[0]
		switch key {
		case "select":
			for _, f := range strings.Split(val, ",") {
				f = strings.TrimSpace(f)
				if _, ok := contentColumns[f]; ok || f == "id" || f == "tags" {
					q.Select = append(q.Select, f)
				}
			}
		case "sort":
			for _, f := range strings.Split(val, ",") {
				f = strings.TrimSpace(f)
				desc := strings.HasPrefix(f, "-")
				f = strings.TrimPrefix(f, "-")
				if col, ok := contentColumns[f]; ok {
					q.Sort = append(q.Sort, SortField{Column: col, Desc: desc})
				}
			}
		case "page":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				q.Page = n
			}
		case "limit":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				q.Limit = n
			}
		case "tags", "tag":
			for _, t := range strings.Split(val, ",") {
				if t = strings.TrimSpace(t); t != "" {
					q.Tags = append(q.Tags, t)
				}
			}
		default:
			if f, ok := parseFilterParam(key, val); ok {
				q.Filters = append(q.Filters, f)
			}
		}
	}

	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if len(q.Sort) == 0 {
		q.Sort = []SortField{{Column: "created_at", Desc: true}} // newest first
	}
	return q
}

// parseFilterParam turns a single "field" or "field[op]" parameter into a
// Filter. Unknown fields and operators are dropped.
func parseFilterParam(key, val string) (Filter, bool) {
	field, op := key, ""
	if i := strings.IndexByte(key, '['); i >= 0 && strings.HasSuffix(key, "]") {
		field = key[:i]
		op = key[i+1 : len(key)-1]
	}
	col, ok := contentColumns[field]
	if !ok {
		return Filter{}, false
	}
	switch {
	case op == "":
		return Filter{Column: col, Op: "=", Values: []string{val}}, true
	case op == "in":
		vals := []string{}
		for _, v := range strings.Split(val, ",") {
			if v = strings.TrimSpace(v); v != "" {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			return Filter{}, false
		}
		return Filter{Column: col, Op: "IN", Values: vals}, true
	default:
		if sqlOp, ok := filterOps[op]; ok {
			return Filter{Column: col, Op: sqlOp, Values: []string{val}}, true
		}
	}
	return Filter{}, false
}

// whereSQL renders the filters into a WHERE condition and its args. The
// returned condition is always non-empty ("1=1" when nothing filters) so
// callers can append it unconditionally.
func (q ListQuery) whereSQL() (string, []any) {
	where := []string{}
	args := []any{}

	for _, f := range q.Filters {
		if f.Op == "IN" {
			where = append(where, "c."+f.Column+" IN ("+placeholders(len(f.Values))+")")
			for _, v := range f.Values {
				args = append(args, v)
			}
			continue
		}
		where = append(where, "c."+f.Column+" "+f.Op+" ?")
		args = append(args, f.Values[0])
	}
	for _, tag := range q.Tags {
		where = append(where, "EXISTS (SELECT 1 FROM content_tags ct WHERE ct.content_id = c.id AND ct.tag = ?)")
		args = append(args, tag)
	}

	if len(where) == 0 {
		return "1=1", args
	}
	return strings.Join(where, " AND "), args
}

// orderSQL renders the sort fields into an ORDER BY clause body. A final
// id tie-break keeps pages stable when the sort key is not unique.
func (q ListQuery) orderSQL() string {
	parts := make([]string, 0, len(q.Sort)+1)
	for _, s := range q.Sort {
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		parts = append(parts, "c."+s.Column+" "+dir)
	}
	parts = append(parts, "c.id ASC")
	return strings.Join(parts, ", ")
}

// placeholders returns n comma-separated "?" markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
