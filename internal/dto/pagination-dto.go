package dto

import (
	"fmt"
	"net/url"
	"strconv"
)

type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) Normalize(defaultSize int) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

type Page[T any] struct {
	PageSize          int     `json:"page_size"`
	TotalObjects      int64   `json:"total_objects"`
	TotalPages        int     `json:"total_pages"`
	CurrentPageNumber int     `json:"current_page_number"`
	Next              *string `json:"next"`
	Previous          *string `json:"previous"`
	Results           []T     `json:"results"`
}

// NewPage builds the envelope. base is the request URL whose page query
// parameter is rewritten for the next/previous links.
func NewPage[T any](results []T, total int64, req PageRequest, base *url.URL) Page[T] {
	if results == nil {
		results = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}

	page := Page[T]{
		PageSize:          req.Size,
		TotalObjects:      total,
		TotalPages:        pages,
		CurrentPageNumber: req.Page,
		Results:           results,
	}
	if req.Page < pages {
		page.Next = pageLink(base, req.Page+1)
	}
	if req.Page > 1 && pages > 0 {
		page.Previous = pageLink(base, req.Page-1)
	}
	return page
}

func pageLink(base *url.URL, n int) *string {
	if base == nil {
		s := fmt.Sprintf("?page=%d", n)
		return &s
	}
	u := *base
	q := u.Query()
	q.Set("page", strconv.Itoa(n))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
