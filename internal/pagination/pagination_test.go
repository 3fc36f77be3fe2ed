package pagination

import "testing"

func TestDefaults(t *testing.T) {
	tests := []struct {
		name      string
		in        PageRequest
		wantPage  int
		wantSize  int
		wantOrder string
	}{
		{"empty", PageRequest{}, 1, 20, "desc"},
		{"explicit", PageRequest{Page: 3, PageSize: 5, SortOrder: "ASC"}, 3, 5, "asc"},
		{"oversized page", PageRequest{Page: 1, PageSize: 500}, 1, 100, "desc"},
		{"garbage order", PageRequest{SortOrder: "sideways"}, 1, 20, "desc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.in
			req.Defaults()
			if req.Page != tt.wantPage || req.PageSize != tt.wantSize || req.SortOrder != tt.wantOrder {
				t.Errorf("got page=%d size=%d order=%s, want %d %d %s",
					req.Page, req.PageSize, req.SortOrder, tt.wantPage, tt.wantSize, tt.wantOrder)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("expected offset 50, got %d", got)
	}
}

func TestOrderClause(t *testing.T) {
	allowed := map[string]string{"date": "date", "amount": "amount"}

	req := PageRequest{SortBy: "amount", SortOrder: "asc"}
	if got := req.OrderClause(allowed, "date"); got != "amount ASC" {
		t.Errorf("expected %q, got %q", "amount ASC", got)
	}

	req = PageRequest{SortBy: "password; DROP TABLE users", SortOrder: "desc"}
	if got := req.OrderClause(allowed, "date"); got != "date DESC" {
		t.Errorf("expected fallback column, got %q", got)
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[string](nil, 2, 10, 21)

	if resp.Data == nil {
		t.Error("expected empty slice, got nil")
	}
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.TotalPages)
	}

	empty := NewPageResponse([]int{}, 1, 20, 0)
	if empty.TotalPages != 0 {
		t.Errorf("expected 0 pages, got %d", empty.TotalPages)
	}
}
