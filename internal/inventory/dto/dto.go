package dto

type UpdateFilters struct {
	ProductID string
	Page      int
	PageSize  int
}
