package domain

import "testing"

func TestNewPagination_Pages(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int
		pages int
	}{
		{"empty table", 1, 20, 0, 0},
		{"less than one page", 1, 20, 7, 1},
		{"exact multiple", 1, 20, 40, 2},
		{"one over a page boundary", 1, 20, 41, 3},
		{"one under a page boundary", 1, 20, 39, 2},
		{"limit one", 3, 1, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(PageSpec{Page: tt.page, Limit: tt.limit}, tt.total)

			if p.Pages != tt.pages {
				t.Errorf("Pages = %d, want %d", p.Pages, tt.pages)
			}
			if p.Total != tt.total {
				t.Errorf("Total = %d, want %d", p.Total, tt.total)
			}
			if p.Page != tt.page || p.Limit != tt.limit {
				t.Errorf("echoed spec = (%d, %d), want (%d, %d)", p.Page, p.Limit, tt.page, tt.limit)
			}
		})
	}
}

func TestPageSpec_Offset(t *testing.T) {
	tests := []struct {
		page   int
		limit  int
		offset int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 7, 14},
		{10, 1, 9},
	}

	for _, tt := range tests {
		got := PageSpec{Page: tt.page, Limit: tt.limit}.Offset()
		if got != tt.offset {
			t.Errorf("Offset(page=%d, limit=%d) = %d, want %d", tt.page, tt.limit, got, tt.offset)
		}
	}
}

func TestPageSpec_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		in        PageSpec
		wantPage  int
		wantLimit int
	}{
		{"zero values get defaults", PageSpec{}, 1, 50},
		{"negative page clamps to one", PageSpec{Page: -3, Limit: 10}, 1, 10},
		{"zero limit takes the default", PageSpec{Page: 4}, 4, 50},
		{"valid spec passes through", PageSpec{Page: 2, Limit: 25}, 2, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize(50)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Errorf("Normalize = (%d, %d), want (%d, %d)", got.Page, got.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}
