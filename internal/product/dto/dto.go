package dto

type ProductFilters struct {
	SearchQuery string // matched against name and description
	InStockOnly bool
	Page        int
	PageSize    int
}
