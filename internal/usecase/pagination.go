package usecase

const (
	defaultPageSize = 10
	maxPageSize     = 100

	// Bounds page so (page-1)*pageSize cannot overflow into a negative
	// OFFSET; pages this deep are empty anyway.
	maxPage = 10_000_000
)

type PageParams struct {
	Page     int
	PageSize int
}

type Pagination struct {
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// clampPageParams applies the catalog's pagination bounds: page is
// 1-based and clamped up to 1, pageSize defaults to 10 and is clamped
// into [1, 100].
func clampPageParams(p PageParams) PageParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > maxPage {
		p.Page = maxPage
	}
	if p.PageSize == 0 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize < 1 {
		p.PageSize = 1
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

func (p PageParams) offset() int {
	return (p.Page - 1) * p.PageSize
}

func paginate(p PageParams, totalCount int) Pagination {
	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + p.PageSize - 1) / p.PageSize
	}
	return Pagination{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
