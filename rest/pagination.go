package rest

import (
	"github.com/gofiber/fiber/v2"
)

// DefaultPageSize matches the directory listing default.
const DefaultPageSize = 5

// MaxPageSize caps the limit query param.
const MaxPageSize = 100

// PageRequest carries the page/limit query params of a listing request.
type PageRequest struct {
	Page int
	Size int
}

// PageRequestFromQuery reads `page` and `limit` from the request, applying
// defaults and the max page size cap. Values below 1 fall back to defaults.
func PageRequestFromQuery(c *fiber.Ctx) PageRequest {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	size := c.QueryInt("limit", DefaultPageSize)
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return PageRequest{Page: page, Size: size}
}

// Offset returns the row offset for the requested page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// Pagination is the metadata block attached to paginated responses.
type Pagination struct {
	TotalCount   int  `json:"total_count"`
	CurrentPage  int  `json:"current_page"`
	PageSize     int  `json:"page_size"`
	TotalPages   int  `json:"total_pages"`
	HasNext      bool `json:"has_next"`
	HasPrevious  bool `json:"has_previous"`
	NextPage     *int `json:"next_page"`
	PreviousPage *int `json:"previous_page"`
}

// NewPagination computes the pagination block from the total row count and
// the requested page. total_pages is ceil(total/size).
func NewPagination(req PageRequest, totalCount int) Pagination {
	totalPages := (totalCount + req.Size - 1) / req.Size

	p := Pagination{
		TotalCount:  totalCount,
		CurrentPage: req.Page,
		PageSize:    req.Size,
		TotalPages:  totalPages,
		HasNext:     req.Page < totalPages,
		HasPrevious: req.Page > 1 && totalCount > 0,
	}

	if p.HasNext {
		next := req.Page + 1
		p.NextPage = &next
	}

	if p.HasPrevious {
		prev := req.Page - 1
		p.PreviousPage = &prev
	}

	return p
}

// PageEnvelope is the success envelope for paginated listings.
type PageEnvelope struct {
	Status     string     `json:"status"`
	Message    string     `json:"message"`
	Pagination Pagination `json:"pagination"`
	Data       any        `json:"data"`
	Error      any        `json:"error"`
}

// Page writes a 200 success envelope with pagination metadata.
func Page(c *fiber.Ctx, message string, meta Pagination, data any) error {
	return c.JSON(PageEnvelope{
		Status:     StatusSuccess,
		Message:    message,
		Pagination: meta,
		Data:       data,
	})
}
