// Package models holds the shared result types of the base layer.
package models

// PaginateResult is one page of items.
type PaginateResult[T any] struct {
	// 1-based page number
	Page int64 `json:"page" bson:"page"`
	// Page size
	Limit int64 `json:"limit" bson:"limit"`
	// Number of items on this page
	ItemCount int64 `json:"itemCount" bson:"itemCount"`
	Items     []T   `json:"items" bson:"items"`
	// Total number of matching items
	Total     int64 `json:"total" bson:"total"`
	TotalPage int64 `json:"totalPage" bson:"totalPage"`
}

// NewPaginateResult fills the derived fields from items and total.
func NewPaginateResult[T any](items []T, page, limit, total int64) *PaginateResult[T] {
	if items == nil {
		items = []T{}
	}
	var totalPage int64
	if total > 0 && limit > 0 {
		totalPage = (total + limit - 1) / limit
	}
	return &PaginateResult[T]{
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Items:     items,
		Total:     total,
		TotalPage: totalPage,
	}
}
