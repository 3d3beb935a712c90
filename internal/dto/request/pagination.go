package request

const MaxPerPage = 100

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// NewPaginatedRequest clamps page to at least 1 and perPage to
// [1, MaxPerPage], using defaultPerPage when perPage is unset.
func NewPaginatedRequest(page, perPage, defaultPerPage int) PaginatedRequest {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return PaginatedRequest{Page: page, PerPage: perPage}
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return 10
	}
	if p.PerPage > MaxPerPage {
		return MaxPerPage
	}
	return p.PerPage
}
