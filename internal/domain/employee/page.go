package employee

import (
	"fmt"
	"math"
)

// PageRequest selects a zero-based page of a given size
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest validates page and size
func NewPageRequest(page, size int) (PageRequest, error) {
	req := PageRequest{Page: page, Size: size}
	if err := req.Validate(); err != nil {
		return PageRequest{}, err
	}
	return req, nil
}

// Validate rejects negative pages, empty sizes and offsets that overflow int
func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("%w: page index must not be less than zero", ErrInvalidPageRequest)
	}
	if p.Size < 1 {
		return fmt.Errorf("%w: page size must not be less than one", ErrInvalidPageRequest)
	}
	if p.Page > math.MaxInt/p.Size {
		return fmt.Errorf("%w: page %d of size %d is out of range", ErrInvalidPageRequest, p.Page, p.Size)
	}
	return nil
}

// Offset is the number of rows to skip
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one slice of a paged query together with its position in the full result
type Page struct {
	Content          []EmployeeDto `json:"content"`
	Number           int           `json:"number"`
	Size             int           `json:"size"`
	TotalElements    int64         `json:"totalElements"`
	TotalPages       int           `json:"totalPages"`
	NumberOfElements int           `json:"numberOfElements"`
	First            bool          `json:"first"`
	Last             bool          `json:"last"`
	Empty            bool          `json:"empty"`
}

// NewPage assembles page metadata from the content and the total row count
func NewPage(content []EmployeeDto, req PageRequest, total int64) *Page {
	if content == nil {
		content = []EmployeeDto{}
	}

	totalPages := 0
	if req.Size > 0 {
		size := int64(req.Size)
		totalPages = int(total / size)
		if total%size != 0 {
			totalPages++
		}
	}

	return &Page{
		Content:          content,
		Number:           req.Page,
		Size:             req.Size,
		TotalElements:    total,
		TotalPages:       totalPages,
		NumberOfElements: len(content),
		First:            req.Page == 0,
		Last:             req.Page >= totalPages-1,
		Empty:            len(content) == 0,
	}
}

// HasNext reports whether more pages follow this one
func (p *Page) HasNext() bool {
	return !p.Last
}
