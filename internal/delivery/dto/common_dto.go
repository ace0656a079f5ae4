package dto

// ListRequest carries page-based pagination. Page starts at 1.
type ListRequest struct {
	Page  int `json:"page" validate:"gte=1"`
	Limit int `json:"limit" validate:"gte=1,lte=500"`
}

func DefaultListRequest() ListRequest {
	return ListRequest{Page: 1, Limit: 50}
}

func (r ListRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// ListResponse is a page of items with the total row count.
type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// MutationResult reports how many rows a bulk mutation touched.
type MutationResult struct {
	Affected int64 `json:"affected"`
}
