package services

import (
	"fmt"
	"math"

	"github.com/votabien/votabien-engine/pkg/apperrors"
	"github.com/votabien/votabien-engine/pkg/models"
	"github.com/votabien/votabien-engine/pkg/validation"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is a 1-based page of a deterministically ordered list.
type PageRequest struct {
	Page int `query:"page" validate:"min=1"`
	Size int `query:"size" validate:"min=1,max=100"`
}

// DefaultPage is the first page at the default size.
func DefaultPage() PageRequest {
	return PageRequest{Page: 1, Size: DefaultPageSize}
}

// Validate returns an apperrors.ErrValidation error for out-of-range values.
func (p PageRequest) Validate() error {
	if err := validation.ValidateStruct(&p); err != nil {
		return err
	}
	if p.Page-1 > math.MaxInt/p.Size {
		return fmt.Errorf("%w: page %d is too large for size %d", apperrors.ErrValidation, p.Page, p.Size)
	}
	return nil
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// PageCount returns ceil(total/size), or 0 when there are no rows.
func PageCount(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// NewPage wraps one page of items with its metadata.
func NewPage[T any](items []T, total int64, req PageRequest) *models.Page[T] {
	if items == nil {
		items = []T{}
	}
	return &models.Page[T]{
		Items: items,
		Total: total,
		Page:  req.Page,
		Size:  req.Size,
		Pages: PageCount(total, req.Size),
	}
}
