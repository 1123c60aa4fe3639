package repository

import (
	"net/url"
	"testing"
)

func TestParseListQueryDefaults(t *testing.T) {
	q := ParseListQuery(url.Values{})
	if q.Page != DefaultPage || q.Limit != DefaultLimit {
		t.Fatalf("defaults: got page=%d limit=%d", q.Page, q.Limit)
	}
	if len(q.Sort) != 1 || q.Sort[0].Column != "created_at" || !q.Sort[0].Desc {
		t.Fatalf("default sort should be created_at desc, got %+v", q.Sort)
	}
	if len(q.Select) != 0 || len(q.Filters) != 0 || len(q.Tags) != 0 {
		t.Fatalf("empty params produced non-empty query: %+v", q)
	}
}

func TestParseListQuerySortAndPagination(t *testing.T) {
	q := ParseListQuery(url.Values{
		"sort":  {"-viewCount,title"},
		"page":  {"3"},
		"limit": {"10"},
	})
	if q.Page != 3 || q.Limit != 10 {
		t.Fatalf("got page=%d limit=%d", q.Page, q.Limit)
	}
	if len(q.Sort) != 2 {
		t.Fatalf("expected 2 sort fields, got %+v", q.Sort)
	}
	if q.Sort[0].Column != "view_count" || !q.Sort[0].Desc {
		t.Fatalf("first sort should be view_count desc, got %+v", q.Sort[0])
	}
	if q.Sort[1].Column != "title" || q.Sort[1].Desc {
		t.Fatalf("second sort should be title asc, got %+v", q.Sort[1])
	}
}

func TestParseListQueryLimitClampedAndBadValues(t *testing.T) {
	q := ParseListQuery(url.Values{"limit": {"500"}, "page": {"zero"}})
	if q.Limit != MaxLimit {
		t.Fatalf("limit should clamp to %d, got %d", MaxLimit, q.Limit)
	}
	if q.Page != DefaultPage {
		t.Fatalf("unparsable page should keep default, got %d", q.Page)
	}
	q = ParseListQuery(url.Values{"limit": {"-5"}})
	if q.Limit != DefaultLimit {
		t.Fatalf("negative limit should keep default, got %d", q.Limit)
	}
}

func TestParseListQueryFilters(t *testing.T) {
	q := ParseListQuery(url.Values{
		"type":                 {"Video"},
		"durationMinutes[gte]": {"10"},
		"durationMinutes[lt]":  {"60"},
		"createdBy[in]":        {"1, 2,3"},
	})
	if len(q.Filters) != 4 {
		t.Fatalf("expected 4 filters, got %+v", q.Filters)
	}
	got := map[string]Filter{}
	for _, f := range q.Filters {
		got[f.Column+f.Op] = f
	}
	if f := got["type="]; len(f.Values) != 1 || f.Values[0] != "Video" {
		t.Fatalf("equality filter wrong: %+v", f)
	}
	if f := got["duration_minutes>="]; len(f.Values) != 1 || f.Values[0] != "10" {
		t.Fatalf("gte filter wrong: %+v", f)
	}
	if f := got["duration_minutes<"]; len(f.Values) != 1 || f.Values[0] != "60" {
		t.Fatalf("lt filter wrong: %+v", f)
	}
	if f := got["created_byIN"]; len(f.Values) != 3 || f.Values[1] != "2" {
		t.Fatalf("in filter should split and trim, got %+v", f)
	}
}

func TestParseListQueryIgnoresUnknownFieldsAndOps(t *testing.T) {
	q := ParseListQuery(url.Values{
		"password[gte]": {"1"},      // unknown field
		"title[regex]":  {".*"},     // unknown operator
		"sort":          {"-score"}, // unknown sort field
		"select":        {"title,password,tags"},
	})
	if len(q.Filters) != 0 {
		t.Fatalf("unknown fields/ops should be dropped, got %+v", q.Filters)
	}
	if len(q.Sort) != 1 || q.Sort[0].Column != "created_at" {
		t.Fatalf("unknown sort field should fall back to default, got %+v", q.Sort)
	}
	if len(q.Select) != 2 || q.Select[0] != "title" || q.Select[1] != "tags" {
		t.Fatalf("projection should keep only known fields, got %+v", q.Select)
	}
}

func TestParseListQueryTags(t *testing.T) {
	q := ParseListQuery(url.Values{"tags": {"math, science,"}})
	if len(q.Tags) != 2 || q.Tags[0] != "math" || q.Tags[1] != "science" {
		t.Fatalf("tags should split and trim, got %+v", q.Tags)
	}
}

func TestWhereSQLAlwaysNonEmpty(t *testing.T) {
	cond, args := ListQuery{}.whereSQL()
	if cond == "" {
		t.Fatal("whereSQL must never return an empty condition")
	}
	if len(args) != 0 {
		t.Fatalf("no filters should mean no args, got %v", args)
	}

	q := ListQuery{
		Filters: []Filter{
			{Column: "type", Op: "=", Values: []string{"Video"}},
			{Column: "created_by", Op: "IN", Values: []string{"1", "2"}},
		},
		Tags: []string{"math"},
	}
	cond, args = q.whereSQL()
	if cond == "" || cond == "1=1" {
		t.Fatalf("filters should render a condition, got %q", cond)
	}
	// one arg per equality value, two for IN, one per tag
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %v", args)
	}
}
