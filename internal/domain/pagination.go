package domain

// PageSpec controls offset/limit pagination for list queries.
// Page and Limit are both 1-based; Normalize clamps invalid values.
type PageSpec struct {
	Page  int
	Limit int
}

// Normalize applies the default limit and clamps page/limit to valid ranges.
func (p PageSpec) Normalize(defaultLimit int) PageSpec {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	return p
}

// Offset returns the row offset for the data query.
func (p PageSpec) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the response metadata accompanying every list endpoint.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// NewPagination computes response metadata for a page spec and total count.
// Pages is ceil(total/limit).
func NewPagination(spec PageSpec, total int) Pagination {
	pages := 0
	if spec.Limit > 0 {
		pages = (total + spec.Limit - 1) / spec.Limit
	}
	return Pagination{
		Total: total,
		Page:  spec.Page,
		Limit: spec.Limit,
		Pages: pages,
	}
}
