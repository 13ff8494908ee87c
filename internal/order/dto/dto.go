package dto

import "github.com/fekuna/omnipos-storefront-service/internal/model"

type OrderFilters struct {
	SearchQuery string            // order id or item product name, case-insensitive
	Status      model.OrderStatus // empty for all
	Page        int
	PageSize    int
}
