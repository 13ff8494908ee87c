// Package catalog holds the fixed product and order records the storefront
// starts with.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/shopspring/decimal"
)

func ptr(s string) *string { return &s }

// Products returns a fresh copy of the seed catalog.
func Products() []model.Product {
	return []model.Product{
		{
			BaseModel:   model.BaseModel{ID: "1"},
			Name:        "Wireless Bluetooth Headphones",
			Price:       decimal.RequireFromString("79.99"),
			ImageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=300&fit=crop",
			Stock:       25,
			Description: ptr("Premium wireless headphones with noise cancellation"),
		},
		{
			BaseModel:   model.BaseModel{ID: "2"},
			Name:        "Smart Watch Series 5",
			Price:       decimal.RequireFromString("299.99"),
			ImageURL:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400&h=300&fit=crop",
			Stock:       12,
			Description: ptr("Advanced fitness tracking and health monitoring"),
		},
		{
			BaseModel:   model.BaseModel{ID: "3"},
			Name:        "Portable Power Bank",
			Price:       decimal.RequireFromString("39.99"),
			ImageURL:    "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=400&h=300&fit=crop",
			Stock:       45,
			Description: ptr("20,000mAh fast charging power bank"),
		},
		{
			BaseModel:   model.BaseModel{ID: "4"},
			Name:        "USB-C Hub Adapter",
			Price:       decimal.RequireFromString("49.99"),
			ImageURL:    "https://images.unsplash.com/photo-1625842268584-8f3296236761?w=400&h=300&fit=crop",
			Stock:       8,
			Description: ptr("Multi-port USB-C hub with HDMI and ethernet"),
		},
		{
			BaseModel:   model.BaseModel{ID: "5"},
			Name:        "Wireless Charging Pad",
			Price:       decimal.RequireFromString("24.99"),
			ImageURL:    "https://images.unsplash.com/photo-1586953208448-b95a79798f07?w=400&h=300&fit=crop",
			Stock:       33,
			Description: ptr("15W fast wireless charging pad"),
		},
		{
			BaseModel:   model.BaseModel{ID: "6"},
			Name:        "Bluetooth Speaker",
			Price:       decimal.RequireFromString("89.99"),
			ImageURL:    "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=400&h=300&fit=crop",
			Stock:       19,
			Description: ptr("Waterproof portable bluetooth speaker"),
		},
	}
}

// Orders returns the historical orders, oldest first. Their status is fixed
// data; nothing transitions it.
func Orders() []model.Order {
	p := Products()
	day := func(s string) time.Time {
		t, _ := time.Parse(time.DateOnly, s)
		return t
	}

	return []model.Order{
		{
			ID: "ORD-001",
			Items: []model.CartLine{
				{Product: p[0], Quantity: 2},
				{Product: p[2], Quantity: 1},
			},
			Total:         decimal.RequireFromString("199.97"),
			Status:        model.OrderStatusCompleted,
			Date:          day("2024-03-15"),
			PaymentMethod: "**** 1234",
		},
		{
			ID:            "ORD-002",
			Items:         []model.CartLine{{Product: p[1], Quantity: 1}},
			Total:         decimal.RequireFromString("299.99"),
			Status:        model.OrderStatusProcessing,
			Date:          day("2024-03-20"),
			PaymentMethod: "**** 5678",
		},
		{
			ID: "ORD-003",
			Items: []model.CartLine{
				{Product: p[3], Quantity: 1},
				{Product: p[4], Quantity: 2},
			},
			Total:         decimal.RequireFromString("99.97"),
			Status:        model.OrderStatusPending,
			Date:          day("2024-03-22"),
			PaymentMethod: "**** 9012",
		},
	}
}

// Seed loads the catalog and order history. It runs once at startup.
func Seed(ctx context.Context, products product.Repository, orders order.Repository) error {
	now := time.Now()
	for _, p := range Products() {
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := products.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	for _, o := range Orders() {
		if err := orders.Create(ctx, &o); err != nil {
			return fmt.Errorf("seed order %s: %w", o.ID, err)
		}
	}
	return nil
}
